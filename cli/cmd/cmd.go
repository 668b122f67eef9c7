package cmd

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/strargs/arg"
	"github.com/ardnew/strargs/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	configKey struct{}
	outputKey struct{}
	inputKey  struct{}
)

// WithConfig returns a new context.Context carrying the naming policy used by
// every command that parses expressions.
func WithConfig(ctx context.Context, cfg arg.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) arg.Config {
	cfg, _ := ctx.Value(configKey{}).(arg.Config)

	return cfg
}

// WithOutput returns a new context.Context whose commands write their
// results to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

// outputFrom returns the writer stored by WithOutput, or os.Stdout.
func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// WithInput returns a new context.Context whose commands read standard input
// from r.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

// inputFrom returns the reader stored by WithInput, or os.Stdin.
func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// newExpression returns an [arg.Expression] configured from ctx.
func newExpression(ctx context.Context) *arg.Expression {
	return arg.New(
		arg.WithConfig(configFrom(ctx)),
		arg.WithLogger(log.Default()),
	)
}

type (
	sourceFilesKey struct{}
	sourceFiles    struct {
		paths    []string
		hasStdin bool
	}

	// SourceFiles is the set of files holding one argument expression each.
	SourceFiles interface {
		IsZero() bool
		Stdin() bool
		Paths() []string
	}
)

// IsZero reports whether there are no source files.
func (s *sourceFiles) IsZero() bool { return len(s.paths) == 0 && !s.hasStdin }

// Stdin reports whether stdin was included as a source.
func (s *sourceFiles) Stdin() bool { return s.hasStdin }

// Paths returns the resolved paths of the regular source files in order.
func (s *sourceFiles) Paths() []string { return append([]string(nil), s.paths...) }

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context containing the given source
// files.
//
// The function deduplicates files by resolving symlinks and comparing device/
// inode pairs. All occurrences of "-" are replaced with a single stdin source
// which is read after all regular files.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, buildSourceFiles(sources))
}

func buildSourceFiles(sources []string) SourceFiles {
	if len(sources) == 0 {
		return nil
	}

	var srcs sourceFiles

	srcs.paths = make([]string, 0, len(sources))
	seen := make(map[fileKey]struct{})

	stdinKey, stdinOK := statFileKey(os.Stdin.Stat())

	for _, src := range sources {
		if src == stdinSource {
			srcs.hasStdin = true

			continue
		}

		path, key, ok := resolveFile(src)
		if !ok {
			log.Debug("skipping source file", slog.String("path", src))

			continue
		}

		if stdinOK && key == stdinKey {
			srcs.hasStdin = true

			continue
		}

		if _, exists := seen[key]; exists {
			continue
		}

		seen[key] = struct{}{}
		srcs.paths = append(srcs.paths, path)
	}

	if srcs.IsZero() {
		return nil
	}

	return &srcs
}

// resolveFile returns the symlink-free absolute path of path and its
// identity, or false if path cannot be resolved.
func resolveFile(path string) (string, fileKey, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fileKey{}, false
	}

	key, ok := statFileKey(os.Stat(resolved))
	if !ok {
		return "", fileKey{}, false
	}

	return resolved, key, true
}

// statFileKey creates a fileKey from the result of a stat call.
// Returns false if stat failed or the underlying Sys() data is not of type
// *syscall.Stat_t.
func statFileKey(info os.FileInfo, err error) (key fileKey, ok bool) {
	if err != nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}

// sourceFilesFrom retrieves the SourceFiles stored in ctx by WithSourceFiles.
// Returns nil if none were stored.
func sourceFilesFrom(ctx context.Context) SourceFiles {
	r, _ := ctx.Value(sourceFilesKey{}).(SourceFiles)

	return r
}

// expressions yields every argument expression a command operates on: first
// the command-line arguments, then each source file, then stdin if it was
// named as a source. When there are neither arguments nor source files,
// stdin is read as the only expression.
//
// A read failure is yielded once with an error matching [ErrReadInput] and
// ends the sequence.
func expressions(ctx context.Context, args []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, s := range args {
			if !yield(s, nil) {
				return
			}
		}

		srcs := sourceFilesFrom(ctx)
		if srcs == nil || srcs.IsZero() {
			if len(args) == 0 {
				s, err := readAll(inputFrom(ctx), stdinSource)
				yield(s, err)
			}

			return
		}

		for _, path := range srcs.Paths() {
			data, err := os.ReadFile(path)
			if err != nil {
				yield("", ErrReadInput.With(slog.String("source", path)).Wrap(err))

				return
			}

			if !yield(string(data), nil) {
				return
			}
		}

		if srcs.Stdin() {
			yield(readAll(inputFrom(ctx), stdinSource))
		}
	}
}

func readAll(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", ErrReadInput.With(slog.String("source", name)).Wrap(err)
	}

	return string(data), nil
}

// parseAll parses every expression of args into expr and returns the
// resulting arguments.
func parseAll(
	ctx context.Context,
	expr *arg.Expression,
	args []string,
) (arg.Arguments, error) {
	i := 0

	for s, err := range expressions(ctx, args) {
		if err != nil {
			return arg.Arguments{}, err
		}

		if _, err := expr.Parse(ctx, s); err != nil {
			return arg.Arguments{}, ErrParseExpression.
				With(slog.Int("index", i)).
				Wrap(err)
		}

		i++
	}

	return expr.Arguments(), nil
}
