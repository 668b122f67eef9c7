// Package cli contains the command line interface for strargs.
//
// # Usage
//
//	strargs [flags] [parse] EXPR...
//	strargs dialect EXPR...
//	strargs get NAME EXPR...
//	strargs repl
//	strargs init
//
// Expressions are read from the positional arguments, then from each
// --source file, then from stdin.
//
//	$ strargs -d tag,class -a class 'div, btn' "['class' => 'active']"
//	{"tag":"div","class":"btn active"}
//
//	$ echo '{"id": 7}' | strargs -o yaml
//	id: "7"
//
// # Configuration
//
// Flag defaults are read from two files in the user config directory
// ($XDG_CONFIG_HOME/strargs on Linux):
//
//   - config.json: a JSON object of flag names to values
//   - config: an argument expression in any dialect, see [resolve]
//
// Run "strargs init" to write the current flags to the config file.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
// The build adds these flags:
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/strargs/pprof)
package cli
