package storage

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hyperjump/notegraph/internal/models"
)

// PathUsage is the on-disk size of one storage path.
type PathUsage = models.PathUsage

// DiskUsage reports the size of each non-empty path. Directories are summed
// recursively; missing paths report zero.
func DiskUsage(paths ...string) ([]PathUsage, int64, error) {
	var out []PathUsage
	var total int64
	for _, p := range paths {
		if p == "" {
			continue
		}
		n, err := pathSize(p)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, PathUsage{Path: p, Bytes: n})
		total += n
	}
	return out, total, nil
}

func pathSize(p string) (int64, error) {
	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	if !info.IsDir() {
		return info.Size(), nil
	}
	var total int64
	err = filepath.WalkDir(p, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		total += fi.Size()
		return nil
	})
	return total, err
}
