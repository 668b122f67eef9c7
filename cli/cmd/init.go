package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/strargs/arg"
	"github.com/ardnew/strargs/log"
	"github.com/ardnew/strargs/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
//
// The file is an array expression that the configuration resolver parses
// back with [arg.Expression].
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	args := i.buildArguments(ctx)

	err = arg.Write(ctx, file, args, arg.FormatArray, defaultConfigIndent)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
		slog.Int("flag_count", args.Len()),
	)

	return nil
}

// buildArguments collects the current value of every configurable flag.
func (i *Init) buildArguments(ctx context.Context) arg.Arguments {
	ktx := kongContextFrom(ctx)

	var args arg.Arguments

	prefixIgnore := []string{"help", "version", "source", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		if val, ok := flagValue(ktx, flag); ok {
			args.Set(flag.Name, val)
		}
	}

	return args
}

// flagValue returns the text form of a flag's value, or false if unset.
func flagValue(ktx *kong.Context, flag *kong.Flag) (string, bool) {
	val := ktx.FlagValue(flag)
	if val == nil {
		return "", false
	}

	switch v := val.(type) {
	case bool:
		return strconv.FormatBool(v), true

	case string:
		return v, v != ""

	case []string:
		return strings.Join(v, ","), len(v) > 0

	case fmt.Stringer:
		s := v.String()

		return s, s != ""

	default:
		s := fmt.Sprint(v)

		return s, s != ""
	}
}
