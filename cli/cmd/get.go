package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions limits the names offered when a lookup misses.
const maxSuggestions = 3

// Get prints the value of one argument.
type Get struct {
	Name string `arg:"" help:"Argument name." name:"name"`

	Expr []string `arg:"" help:"Argument expressions, read from sources or stdin if omitted." name:"expr" optional:""`
}

// Run executes the get command.
func (g *Get) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	args, err := parseAll(ctx, newExpression(ctx), g.Expr)
	if err != nil {
		return err
	}

	value, ok := args.Get(g.Name)
	if !ok {
		similar := suggest(g.Name, args.Names())

		return ErrArgumentNotFound.
			With(slog.String("name", g.Name), slog.Any("suggestions", similar)).
			Wrap(notFound(g.Name, similar))
	}

	if _, err := fmt.Fprintln(outputFrom(ctx), value); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// suggest returns up to maxSuggestions of names ranked by how well they
// fuzzy-match name.
func suggest(name string, names []string) []string {
	matches := fuzzy.Find(name, names)

	similar := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches[:min(len(matches), maxSuggestions)] {
		similar = append(similar, m.Str)
	}

	return similar
}

func notFound(name string, similar []string) error {
	if len(similar) == 0 {
		return fmt.Errorf("%q", name)
	}

	quoted := make([]string, len(similar))
	for i, s := range similar {
		quoted[i] = strconv.Quote(s)
	}

	return fmt.Errorf("%q (did you mean %s?)", name, strings.Join(quoted, ", "))
}
