// Package search locates EDF recordings to convert.
package search

import (
	"os"
	"path/filepath"
	"strings"
)

// FindEdf lists the .edf files directly within dir, non-recursively
// (spec §6.2: "-d directory of EDFs (non-recursive, extension .edf
// only)"). This is a de-recursed adaptation of the teacher's
// search.FindGsf, which trawled a TileDB VFS tree looking for *.gsf;
// here there is exactly one directory level and one filesystem, so a
// single os.ReadDir pass replaces the recursive VFS walk.
func FindEdf(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	items := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".edf") {
			items = append(items, filepath.Join(dir, e.Name()))
		}
	}

	return items, nil
}
