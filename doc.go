// Package ulox provides an embeddable interpreter for a small dynamically
// typed scripting language with numbers, strings, booleans, nil, block
// scoping, loops and first-class functions with lexical closures.
//
// Programs are scanned, parsed and then executed directly by walking the
// syntax tree; there is no bytecode stage.
//
// # Quick Start
//
// For simple one-off execution:
//
//	output, err := ulox.Run(`print 1 + 2 * 3;`, nil)
//	// output: "7\n"
//
// With configuration:
//
//	output, err := ulox.Run(`print "hello " + name;`, &ulox.Config{
//	    Variables: map[string]string{"name": "world"},
//	})
//
// # Compiled Programs
//
// A compiled [Program] can be run any number of times; every run starts
// with fresh globals:
//
//	prog, err := ulox.Compile(`fun fib(n) { if (n < 2) return n; return fib(n - 1) + fib(n - 2); } print fib(20);`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	output, err := prog.Run(nil)
//
// # Interactive Use
//
// A [Session] keeps its globals between calls to [Session.Eval], which is
// what a read-eval-print loop needs.
//
// # Native Functions
//
// Every run defines these globals:
//   - clock() returns seconds since the Unix epoch
//   - matches(text, pattern) reports whether a regular expression matches
//   - replace(text, pattern, replacement) replaces every match
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [CompileError]: every lexical and syntax error found in the source
//   - [RuntimeError]: the first error raised during execution
//
// [ExitCode] maps an error to the conventional process exit status.
//
// # Thread Safety
//
// Compiled [Program] objects are safe for concurrent use.
// Each call to [Program.Run] creates an independent interpreter.
// A [Session] is not safe for concurrent use.
package ulox
