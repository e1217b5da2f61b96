// Package manifest reads extension manifests from disk.
//
// A manifest is an HCL file with one or more extension blocks:
//
//	extension "tizen.time" {
//	  source       = "time.js"
//	  entry_points = ["tizen.TZDate"]
//	  settings     = { zone = "UTC" }
//	}
//
// source is resolved relative to the manifest file. entry_points and
// settings are optional.
package manifest
