package cmd

import (
	"context"

	"github.com/ardnew/strargs/arg"
	"github.com/ardnew/strargs/cli/cmd/repl"
	"github.com/ardnew/strargs/log"
)

// Repl starts an interactive session that parses each entered line into
// one long-lived expression.
type Repl struct {
	Format string `default:"json" enum:"${formatEnum}" help:"Output format for listed arguments (${enum})." short:"o"`

	Expr []string `arg:"" help:"Argument expressions parsed before the session starts." name:"expr" optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := arg.ParseFormat(r.Format)
	if err != nil {
		return err
	}

	expr := newExpression(ctx)

	// Stdin belongs to the terminal session, so it is never read implicitly.
	srcs := sourceFilesFrom(ctx)
	if len(r.Expr) > 0 || (srcs != nil && !srcs.IsZero()) {
		if _, err := parseAll(ctx, expr, r.Expr); err != nil {
			return err
		}
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, expr, cacheDir, log.Default(), repl.WithFormat(format))
}
