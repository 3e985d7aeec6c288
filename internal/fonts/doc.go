// Package fonts resolves and loads the fonts a request depends on.
//
// Writing styled text with a font the host has not loaded is rejected, so
// every request first collects the distinct font keys used by all the
// characters it will write, then loads them once through a Scheduler before
// the first mutation:
//
//	keys, _ := fonts.Collect(node, 0, n)
//	keys.Add(fonts.Key{Family: "Roboto", Style: "Regular"})
//	if err := sched.EnsureLoaded(ctx, keys); err != nil {
//	    // errors.Is(err, fonts.ErrUnavailable)
//	}
//
// Collection is per character. A host reports MIXED for the aggregate font
// of a multi-font span, but every single character has a concrete font.
package fonts
