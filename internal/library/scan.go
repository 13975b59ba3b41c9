package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/samber/lo"
)

// ExpandPaths turns a mix of files and directories into the list of audio files to import.
//
// Directories are walked recursively in lexical order. Files without a supported extension are skipped,
// and a path named twice is returned once.
//
// A path that cannot be read is skipped; the files found elsewhere are still returned alongside a
// [shared.Warning] naming every skipped path.
func ExpandPaths(paths []string) ([]string, error) {
	var (
		files []string
		errs  []error
	)

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to stat %s: %w", p, err))
			continue
		}

		if !info.IsDir() {
			if shared.IsAudioFile(p) {
				files = append(files, p)
			}
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && shared.IsAudioFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to walk %s: %w", p, err))
		}
	}

	return lo.Uniq(files), shared.NewWarning("expand paths", errors.Join(errs...))
}
