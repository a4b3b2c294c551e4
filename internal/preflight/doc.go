// Package preflight provides readiness checks for the folders a sorting run
// touches.
//
// These checks run in two contexts:
//   - The sort command calls RunAll once the destination exists and warns
//     about failures without aborting; the run itself reports per-file errors.
//   - The CLI "photosort check" command prints every result as a status list.
package preflight
