// Package matcher validates filename patterns and buckets the files of a
// source directory into groups keyed by the matched substring.
//
// Matching is case-sensitive, Unicode-aware, and unanchored: the leftmost
// substring of the base filename that matches the pattern becomes the group
// identifier. Identifiers double as destination folder names, so the scan
// rejects any match that could escape the destination directory before the
// caller mutates anything.
package matcher
