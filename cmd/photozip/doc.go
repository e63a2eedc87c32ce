// Command photozip groups files by a name pattern, copies each group into
// its own folder, and writes one zip archive per folder.
package main
