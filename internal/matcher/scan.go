package matcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"photozip/internal/errkind"
)

// Scan enumerates the direct entries of dir, applies re to each regular
// file's name, and buckets matching files into groups. Subdirectories are
// skipped, not descended into. Files that do not match are silently
// excluded; zero groups is a successful no-op, not an error.
//
// Groups come back in order of first appearance of each identifier. The
// iteration order of entries themselves is whatever os.ReadDir yields and is
// not part of the contract.
func Scan(dir string, re *regexp.Regexp) ([]Group, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errkind.Wrap(errkind.ErrValidation, "matcher", "scan", fmt.Sprintf("resolve %q", dir), err)
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errkind.Wrap(errkind.ErrNotFound, "matcher", "scan", fmt.Sprintf("source directory %s", absDir), err)
		}
		return nil, errkind.Wrap(errkind.ErrIO, "matcher", "scan", fmt.Sprintf("read source directory %s", absDir), err)
	}

	var (
		groups []Group
		index  = map[string]int{}
		// canonical tracks NFC-normalized identifiers so two byte-distinct
		// names that a normalizing filesystem would collapse are caught
		// before any folder is created.
		canonical = map[string]string{}
	)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, errkind.Wrap(errkind.ErrIO, "matcher", "scan", fmt.Sprintf("stat %s", entry.Name()), err)
		}
		if !info.Mode().IsRegular() {
			continue
		}

		name := entry.Name()
		ident, ok := ExtractGroup(name, re)
		if !ok {
			continue
		}
		if err := checkIdentifier(ident, name); err != nil {
			return nil, err
		}

		nfc := norm.NFC.String(ident)
		if prior, seen := canonical[nfc]; seen && prior != ident {
			return nil, errkind.Wrap(errkind.ErrValidation, "matcher", "scan",
				fmt.Sprintf("identifiers %q and %q normalize to the same folder name", prior, ident), nil)
		}
		canonical[nfc] = ident

		i, seen := index[ident]
		if !seen {
			i = len(groups)
			index[ident] = i
			groups = append(groups, Group{Name: ident})
		}
		groups[i].Files = append(groups[i].Files, SourceFile{
			Path:    filepath.Join(absDir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Group:   ident,
		})
	}

	return groups, nil
}

// checkIdentifier rejects matched substrings that cannot serve as a folder
// name without escaping the destination directory.
func checkIdentifier(ident, filename string) error {
	reject := func(reason string) error {
		return errkind.Wrap(errkind.ErrValidation, "matcher", "scan",
			fmt.Sprintf("identifier %q from %q %s", ident, filename, reason), nil)
	}
	switch {
	case ident == "":
		return reject("is empty")
	case ident == "." || ident == "..":
		return reject("is a reserved path component")
	case strings.ContainsRune(ident, os.PathSeparator) || strings.ContainsRune(ident, '/'):
		return reject("contains a path separator")
	case strings.ContainsRune(ident, 0):
		return reject("contains a NUL byte")
	case filepath.Clean(ident) != ident:
		return reject("is not a clean path component")
	}
	return nil
}
