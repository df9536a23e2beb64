package formats

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/FocuswithJustin/cdlconvert/core/errors"
	"github.com/FocuswithJustin/cdlconvert/internal/logging"
)

// Expand replaces every directory in paths with the files below it whose
// extension names a known format, in lexical order. Plain files are kept
// as given, whatever their extension.
func Expand(paths []string) ([]string, error) {
	var out []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.NewIO("stat", path, err)
		}
		if !info.IsDir() {
			out = append(out, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if _, err := FromPath(p); err != nil {
				logging.Debug("skipping file with unknown extension", "path", p)
				return nil
			}
			out = append(out, p)
			return nil
		})
		if err != nil {
			return nil, errors.NewIO("walk", path, err)
		}
	}
	return out, nil
}
