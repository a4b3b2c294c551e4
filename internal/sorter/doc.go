// Package sorter drives a sorting run: it validates the run parameters,
// prepares the destination, enumerates candidate media files under the source
// root, and hands each one to the date resolver and placement engine strictly
// in enumeration order.
//
// Per-file problems are reported through events and the run Summary and never
// stop the run. Only configuration problems and destination initialization
// failures are returned as errors, both before any file is touched.
package sorter
