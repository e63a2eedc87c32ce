// Package archive packages a group folder's direct file contents into a flat
// ZIP archive.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"

	"photozip/internal/errkind"
)

// Create writes a ZIP archive at zipPath containing every regular file
// directly inside folderPath. Entries are stored flat under their base
// names, compressed with deflate at the given level. Subdirectories are not
// descended into. An empty folder yields a valid archive with zero entries.
//
// An existing archive at zipPath is overwritten wholesale, so the archive
// always reflects the folder contents at creation time.
func Create(folderPath, zipPath string, level int) error {
	entries, err := os.ReadDir(folderPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errkind.Wrap(errkind.ErrNotFound, "archive", "create", fmt.Sprintf("folder %s", folderPath), err)
		}
		return errkind.Wrap(errkind.ErrIO, "archive", "create", fmt.Sprintf("read folder %s", folderPath), err)
	}

	out, err := os.Create(zipPath)
	if err != nil {
		return errkind.Wrap(errkind.ErrIO, "archive", "create", fmt.Sprintf("open %s", zipPath), err)
	}
	defer func() {
		_ = out.Close()
	}()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return errkind.Wrap(errkind.ErrIO, "archive", "create", fmt.Sprintf("stat %s", entry.Name()), err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if err := addEntry(zw, filepath.Join(folderPath, entry.Name()), info); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return errkind.Wrap(errkind.ErrIO, "archive", "create", fmt.Sprintf("finalize %s", zipPath), err)
	}
	if err := out.Close(); err != nil {
		return errkind.Wrap(errkind.ErrIO, "archive", "create", fmt.Sprintf("close %s", zipPath), err)
	}
	return nil
}

func addEntry(zw *zip.Writer, path string, info fs.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return errkind.Wrap(errkind.ErrIO, "archive", "add entry", info.Name(), err)
	}
	// Flat archive: the entry name is the base filename regardless of the
	// folder's location. archive/zip flags non-ASCII names as UTF-8.
	header.Name = info.Name()
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return errkind.Wrap(errkind.ErrIO, "archive", "add entry", info.Name(), err)
	}

	in, err := os.Open(path)
	if err != nil {
		return errkind.Wrap(errkind.ErrIO, "archive", "add entry", info.Name(), err)
	}
	defer in.Close()

	if _, err := io.Copy(w, in); err != nil {
		return errkind.Wrap(errkind.ErrIO, "archive", "add entry", info.Name(), err)
	}
	return nil
}
