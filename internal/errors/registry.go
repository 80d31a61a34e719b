package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Option Errors (T001-T099)
	// ============================================

	"T001": {
		Category: CategoryOptions,
		Message:  "Unknown toast option",
	},
	"T002": {
		Category: CategoryOptions,
		Message:  "Invalid position",
	},
	"T003": {
		Category: CategoryOptions,
		Message:  "Invalid toast type",
	},
	"T004": {
		Category: CategoryOptions,
		Message:  "Invalid theme",
	},
	"T005": {
		Category: CategoryOptions,
		Message:  "Option has the wrong value type",
	},
	"T006": {
		Category: CategoryOptions,
		Message:  "Option cannot be set from untyped input",
		Detail:   "Callbacks such as onClose can only be supplied from Go code.",
	},
	"T007": {
		Category: CategoryOptions,
		Message:  "Malformed options document",
	},

	// ============================================
	// Config Errors (T100-T199)
	// ============================================

	"T100": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},
	"T101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
	},
	"T102": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},
	"T103": {
		Category: CategoryConfig,
		Message:  "Configuration watcher failed",
	},

	// ============================================
	// Protocol Errors (T200-T299)
	// ============================================

	"T200": {
		Category: CategoryProtocol,
		Message:  "Malformed client message",
	},
	"T201": {
		Category: CategoryProtocol,
		Message:  "Unknown message type",
	},
	"T202": {
		Category: CategoryProtocol,
		Message:  "Toast not found",
		Detail:   "The toast may already have been removed.",
	},
	"T203": {
		Category: CategoryProtocol,
		Message:  "Element not found",
	},
	"T204": {
		Category: CategoryProtocol,
		Message:  "Session is closed",
	},
	"T205": {
		Category: CategoryProtocol,
		Message:  "Session limit reached",
		Detail:   "The server is at its configured maximum number of sessions.",
	},

	// ============================================
	// Asset Errors (T300-T399)
	// ============================================

	"T300": {
		Category: CategoryAssets,
		Message:  "Icon could not be read",
	},
	"T301": {
		Category: CategoryAssets,
		Message:  "Icon source misconfigured",
	},

	// ============================================
	// CLI Errors (T400-T499)
	// ============================================

	"T400": {
		Category: CategoryCLI,
		Message:  "Invalid command line flag",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a custom error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
