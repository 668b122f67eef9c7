// Package cmd implements the strargs subcommands.
//
// Every command that reads argument expressions takes them from its
// positional arguments, then from the files named with --source, then from
// stdin. All expressions of one invocation are parsed into a single
// [arg.Expression], so the append policy spans them.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the argument expression configuration file.
	ConfigIdentifier = "config"

	// FormatEnumIdentifier is the kong variable identifier containing the
	// comma-separated list of output formats.
	FormatEnumIdentifier = "formatEnum"
)
