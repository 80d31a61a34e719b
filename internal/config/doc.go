// Package config loads the toastify.json (or toastify.yaml) configuration.
//
// The file configures the demo server, logging, observability, the icon
// source and the default options applied to every toast:
//
//	{
//	  "server": { "host": "localhost", "port": 4000, "frameRate": "16ms" },
//	  "log": { "level": "info", "format": "text" },
//	  "icons": { "dir": "assets/icons" },
//	  "toast": {
//	    "defaults": { "position": "bottom-right", "autoCloseTime": 8000 }
//	  }
//	}
//
// Missing fields fall back to the values from New. A Watcher reloads the
// file when it changes and notifies registered callbacks.
package config
