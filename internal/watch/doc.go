// Package watch calls a function when any of a set of files changes.
//
// Directories are watched instead of the files themselves so editors that
// save by rename-and-replace are still seen. Bursts of events are
// debounced into a single call.
package watch
