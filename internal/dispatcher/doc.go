// Package dispatcher routes named commands to handlers.
//
// Every engine operation is registered under a command name by
// RegisterEngine:
//
//	split-lines    split one text layer into one layer per line
//	split-words    split one text layer into one layer per word
//	join           merge text layers with no separator
//	join-space     merge text layers separated by a space
//	join-newline   merge text layers separated by a line break
//	strip-bullets  remove bullet glyphs in place
//
// # Handler Execution
//
// When a command is dispatched:
//
//  1. Pre-dispatch hooks are called (can modify or cancel the command)
//  2. The registry finds the highest priority handler
//  3. The handler is executed (with optional panic recovery and timeout)
//  4. Post-dispatch hooks are called
//  5. Metrics are recorded (if enabled)
//
// Dispatch never returns an error value. Failures, including unknown
// commands and handler panics, are reported as results with StatusError and
// a user-facing Message.
//
// # Usage
//
//	d := dispatcher.NewWithDefaults()
//	dispatcher.RegisterEngine(d, cutter.New(doc))
//	d.RegisterPostHook(dispatcher.NewLoggingHook(logger))
//
//	result := d.Run(ctx, "split-lines", doc.Selection())
//	fmt.Println(result.Message)
package dispatcher
