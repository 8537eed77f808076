package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Tiliavir/punch/internal/model"
)

// cachedStatus is the on-disk form of the last fetched clock status.
type cachedStatus struct {
	Status  model.Status `json:"status"`
	Expires time.Time    `json:"expires"`
}

// StatusFile keeps the last fetched clock status in <Base>/status.json so it
// survives between command runs.
type StatusFile struct {
	Base string
}

func (f StatusFile) path() string {
	return filepath.Join(f.Base, "status.json")
}

// LoadStatus returns the stored status and its expiry. ok is false when no
// status is stored. A corrupt file is removed and reported as missing.
func (f StatusFile) LoadStatus() (s model.Status, expires time.Time, ok bool, err error) {
	data, err := os.ReadFile(f.path())
	if os.IsNotExist(err) {
		return model.Status{}, time.Time{}, false, nil
	}
	if err != nil {
		return model.Status{}, time.Time{}, false, fmt.Errorf("storage error reading %s: %w", f.path(), err)
	}

	var c cachedStatus
	if err := json.Unmarshal(data, &c); err != nil {
		_ = os.Remove(f.path())
		return model.Status{}, time.Time{}, false, nil
	}
	return c.Status, c.Expires, true, nil
}

// SaveStatus atomically writes s with its expiry.
func (f StatusFile) SaveStatus(s model.Status, expires time.Time) error {
	return writeJSON(f.path(), cachedStatus{Status: s, Expires: expires})
}

// ClearStatus removes the stored status. A missing file is not an error.
func (f StatusFile) ClearStatus() error {
	if err := os.Remove(f.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage error removing %s: %w", f.path(), err)
	}
	return nil
}
