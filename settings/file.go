package settings

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/truemediaorg/postgrab/model"
)

// FileStore keeps the blob in <Dir>/xhs_manager_config.json.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) Path() string {
	return filepath.Join(s.Dir, StorageKey+".json")
}

func (s *FileStore) Load(ctx context.Context) (model.Settings, error) {
	blob, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			// first start, nothing saved yet
			return model.DefaultSettings(), nil
		}
		return model.DefaultSettings(), errors.Wrapf(err, "reading %s", s.Path())
	}
	return decode(blob), nil
}

// Save replaces the stored blob atomically.
func (s *FileStore) Save(ctx context.Context, settings model.Settings) error {
	blob, err := encode(settings)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0700); err != nil {
		return errors.Wrapf(err, "creating settings directory %s", s.Dir)
	}

	tmp, err := os.CreateTemp(s.Dir, StorageKey+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temporary settings file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing settings")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "writing settings")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.Path()), "replacing settings file")
}
