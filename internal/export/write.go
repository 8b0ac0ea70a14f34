package export

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/Tiliavir/schedule-planner/internal/model"
)

// WriteFile encodes records in format f and atomically writes the result to
// dir/f.FileName(). It returns the written path.
func WriteFile(dir string, f Format, records []model.Record) (string, error) {
	data, err := Encode(f, records)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "creating output directory")
	}

	path := filepath.Join(dir, f.FileName())
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", errors.Wrapf(err, "renaming %s", tmpPath)
	}
	return path, nil
}
