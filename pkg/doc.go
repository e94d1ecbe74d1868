// Package pkg provides shared utilities for the ubootfs tool.
//
// It contains the structured logging layer used by every other package,
// built on Go's standard [log/slog]:
//
//   - Component identifiers for log filtering
//   - Package-level logging helpers that tag records with their component
//   - Text and JSON output selection
//
// The default logger writes text to os.Stderr at level Warn; the tool's
// command line raises the level and switches the format:
//
//	pkg.SetLogLevel(slog.LevelInfo)
//	pkg.LogInfo(pkg.ComponentUBoot, "mmc block size", "bytes", 512)
package pkg
