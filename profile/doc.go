// Package profile provides optional runtime profiling for the strargs
// command.
//
// # Overview
//
// This package integrates [github.com/pkg/profile] to provide runtime profiling
// capabilities with conditional compilation support. Profiling is optional and
// must be enabled at build time using the "pprof" build tag:
//
//	go build -tags pprof .
//
// When built without the tag, [Modes] is empty and [Profiler.Start] returns
// a no-op.
//
// # Available Profiling Modes
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// # Usage
//
//	p := profile.Make(
//	    profile.WithMode("cpu"),
//	    profile.WithPath("/tmp/profiles"),
//	)
//	defer p.Start().Stop()
//
// Profile files are written to the given directory with names matching the
// profiling mode (e.g., cpu.pprof, mem.pprof).
//
// # Command-Line Usage
//
//	# CPU profile of a large parse, written to the cache directory
//	strargs --pprof-mode cpu parse --source big.txt
//
//	# Heap profile with custom output directory
//	strargs --pprof-mode heap --pprof-dir ./profiles parse 'a, b'
//
// The default output directory is:
//
//	$XDG_CACHE_HOME/strargs/pprof   (Linux/Unix)
//	~/Library/Caches/strargs/pprof  (macOS)
//	%LocalAppData%\strargs\pprof    (Windows)
//
// # Analyzing Profile Data
//
//	go tool pprof ./strargs /tmp/profiles/cpu.pprof
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//	go tool pprof -base=old.pprof new.pprof
//
// The pprof build also imports [net/http/pprof], which registers its
// handlers on [net/http.DefaultServeMux] for programs that serve it.
package profile
