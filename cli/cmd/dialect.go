package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/strargs/arg"
)

// Dialect prints the detected dialect of each argument expression.
type Dialect struct {
	Expr []string `arg:"" help:"Argument expressions, read from sources or stdin if omitted." name:"expr" optional:""`
}

// Run executes the dialect command.
func (d *Dialect) Run(ctx context.Context) error {
	w := outputFrom(ctx)

	for s, err := range expressions(ctx, d.Expr) {
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w, arg.Detect(s)); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
