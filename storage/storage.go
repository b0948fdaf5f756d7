package storage

// go generate: mockery --name KV

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// Collection keys, one durable cell per top-level collection. Cells are
// independent; there is no cross-key transactionality.
const (
	KeyMembers        = "members"
	KeyEvents         = "events"
	KeyTithes         = "tithes"
	KeyDues           = "dues"
	KeyCommunications = "communications"
)

// ErrNotFound is returned when a record with the requested identity does
// not exist in its collection.
var ErrNotFound = errors.New("record not found")

// KV is the durable string-keyed text store the cells persist through.
// Get reports ok=false when no value has ever been stored for the key.
// Callers never assume Set succeeds.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

type fileKV struct {
	dir string
}

// NewFileKV returns a KV that stores each key as <dir>/<key>.json
func NewFileKV(dir string) (KV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &fileKV{dir: dir}, nil
}

func (f *fileKV) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *fileKV) Get(ctx context.Context, key string) (string, bool, error) {
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

func (f *fileKV) Set(ctx context.Context, key, value string) error {
	// write-then-rename so a failed write never corrupts the stored value
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path(key))
}
