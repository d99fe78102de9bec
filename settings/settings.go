// Package settings persists the user-editable resolver settings as a single
// JSON blob under a fixed key. The blob is read once at startup and always
// rewritten as a whole; it is never patched field by field.
package settings

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/truemediaorg/postgrab/model"
)

// StorageKey is the fixed key the settings blob lives under.
const StorageKey = "xhs_manager_config"

type Store interface {
	Load(ctx context.Context) (model.Settings, error)
	Save(ctx context.Context, s model.Settings) error
}

// decode parses a stored blob. A corrupt blob is logged and replaced by the
// defaults rather than failing startup.
func decode(blob []byte) model.Settings {
	s := model.DefaultSettings()
	if err := json.Unmarshal(blob, &s); err != nil {
		log.WithField("key", StorageKey).Warnf("failed to parse stored settings, using defaults: %v", err)
		return model.DefaultSettings()
	}
	if s.Language == "" {
		s.Language = model.DefaultLanguage
	}
	return s
}

func encode(s model.Settings) ([]byte, error) {
	blob, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "encoding settings")
	}
	return blob, nil
}

// Open returns the Redis store when redisAddr is set and the file store in
// dir otherwise.
func Open(ctx context.Context, dir string, redisAddr string, redisPassword string) (Store, error) {
	if redisAddr != "" {
		log.WithField("address", redisAddr).Info("using redis settings store")
		store, err := NewRedisStore(ctx, redisAddr, redisPassword)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	log.WithField("dir", dir).Debug("using file settings store")
	return NewFileStore(dir), nil
}
