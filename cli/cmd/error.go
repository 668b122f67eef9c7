package cmd

import "github.com/ardnew/strargs/arg"

// Errors returned by the commands. They share [arg.Error], so every wrapped
// or annotated copy still matches its sentinel with errors.Is and logs its
// attributes through slog.
var (
	ErrArgumentNotFound = arg.NewError("argument not found")
	ErrParseExpression  = arg.NewError("parse expression")
	ErrReadInput        = arg.NewError("read input")
	ErrWriteOutput      = arg.NewError("write output")
	ErrWriteConfig      = arg.NewError("write configuration file")
	ErrFileExists       = arg.NewError("file exists (use --force to overwrite)")
)
