// Package dateresolve derives the capture date used to file a media item.
//
// Images are probed for the EXIF DateTimeOriginal tag; everything else, and
// every image whose metadata cannot be used, falls back to the filesystem
// modification time in local time. Metadata problems never surface as errors:
// they are reported through the typed MetadataResult attached to the returned
// Date so callers can tell "no metadata" from "unreadable file" for
// diagnostics.
package dateresolve
