// Package toast implements the Toastify notification widget.
//
// A Toast owns one element in a dom.Document. It inserts itself into a shared
// per-position container (created on demand and removed once empty), drives
// its auto-close countdown and progress indicator from a frame.Scheduler,
// and detaches itself after its exit transition completes.
//
// # Construction
//
//	t := toast.New(host,
//	    toast.WithMessage("Project deleted"),
//	    toast.WithType(toast.TypeSuccess),
//	    toast.WithPosition(toast.BottomCenter),
//	    toast.WithOnClose(func() { log.Println("closed") }),
//	)
//
// Options are merged over the defaults and applied in a fixed key order.
// Every option is a side-effecting assignment: applying it again through
// Update re-runs the same behaviour, so any subset can be changed later:
//
//	t.Update(toast.WithType(toast.TypeError), toast.WithAutoClose(0))
//
// # Untyped Input
//
// ParseOptions and ParseOptionsJSON build options from decoded JSON or
// configuration maps using the wire names ("position", "toastMsg",
// "autoCloseTime", ...). autoCloseTime is expressed in milliseconds there.
//
// # Styling Contract
//
// The widget writes these custom properties, which the stylesheet consumes:
// --light_bg, --dark_bg, --light-border, --light_color, --dark_color and
// --progress. Classes: toast, show, can-close, progress, one of the type
// classes (default, info, success, warning, error) and, for the default type,
// one of light or dark.
//
// # Threading
//
// A Toast is not safe for concurrent use. All calls, frame callbacks and
// event listeners must run on the goroutine that owns the document.
package toast
