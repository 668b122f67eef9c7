package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/strargs/arg"
	"github.com/ardnew/strargs/log"
)

// Parse interprets argument expressions and prints the resulting arguments.
type Parse struct {
	Format string `default:"json" enum:"${formatEnum}" help:"Output format (${enum})." short:"o"`
	Indent int    `default:"0"                         help:"Indent width, 0 for compact output." short:"i"`

	Expr []string `arg:"" help:"Argument expressions, read from sources or stdin if omitted." name:"expr" optional:""`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := arg.ParseFormat(p.Format)
	if err != nil {
		return err
	}

	args, err := parseAll(ctx, newExpression(ctx), p.Expr)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "parsed arguments",
		slog.Int("argument_count", args.Len()),
		slog.String("format", format.String()),
	)

	err = arg.Write(ctx, outputFrom(ctx), args, format, p.Indent)
	if err != nil {
		return ErrWriteOutput.With(slog.String("format", format.String())).Wrap(err)
	}

	return nil
}
