// Package placement files a single media item into its year-month folder.
//
// Place computes <dest>/<YYYY>-<MM>, creates it on demand, picks the lowest
// free "name_N.ext" variant when the base name is taken, and moves the file.
// Same-filesystem moves are a single rename. Cross-device moves copy into an
// exclusively created temporary file in the target folder, verify it, and
// rename it into place before the source is removed, so an interrupted move
// never loses or truncates data. Failures are reported per file; the caller
// decides whether to continue.
package placement
