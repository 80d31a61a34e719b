// Package errors provides structured, actionable error messages for Toastify.
//
// Errors carry a unique code, a category, a short message and optional
// detail, suggestion and wrapped cause. The code maps to a registered
// template so callers only need to supply the context that varies.
//
// # Error Categories
//
//   - options: untyped toast options that cannot be applied (unknown key, bad enum)
//   - config: configuration file problems
//   - protocol: malformed client messages
//   - assets: icon markup that cannot be loaded
//   - cli: command line misuse
//
// # Usage
//
//	err := errors.New("T002").
//	    WithField("position").
//	    WithDetail(`"middle" is not a position`).
//	    WithSuggestion("Use one of top-left, top-right, top-center, bottom-left, bottom-right, bottom-center")
//
//	fmt.Println(err.Format())
package errors
