// Package watch re-runs the filter pipeline when its inputs change. It
// monitors the dataset directory and the user's watched lists, debounces
// rapid events, and reports how the export row counts moved.
package watch
