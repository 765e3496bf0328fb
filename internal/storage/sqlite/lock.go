package sqlite

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another process holds the database lock.
var ErrLocked = errors.New("database is in use by another process")

// Lock takes the single-writer lock kept next to dbPath. The caller releases
// it with Unlock once the store is closed.
func Lock(dbPath string) (*flock.Flock, error) {
	if err := ensureDir(dbPath); err != nil {
		return nil, fmt.Errorf("prepare lock dir: %w", err)
	}

	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	return lock, nil
}
