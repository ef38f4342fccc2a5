// Package cas implements the bundle info store.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BundleInfoStore = (*Store)(nil)

// Store implements ports.BundleInfoStore using a file-per-bundle strategy.
// Records are keyed by the public URI of the bundle.
type Store struct {
	dir string
}

// NewStore creates a new BundleInfoStore under the default store path of the working directory.
func NewStore() (*Store, error) {
	return NewStoreWithPath(domain.DefaultStorePath())
}

// NewStoreWithPath creates a new BundleInfoStore backed by the directory at the given path.
// The directory is created on the first Put.
func NewStoreWithPath(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}
	return &Store{dir: abs}, nil
}

// Get retrieves the bundle info of the bundle served at uri.
// It returns nil, nil when no record exists.
func (s *Store) Get(uri string) (*domain.BundleInfo, error) {
	filename := s.getFilename(uri)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var info domain.BundleInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}

	return &info, nil
}

// Put stores the bundle info, replacing any previous record of the same URI.
func (s *Store) Put(info domain.BundleInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(s.getFilename(info.URI), data, domain.PrivateFilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

func (s *Store) getFilename(uri string) string {
	hash := sha256.Sum256([]byte(uri))
	return filepath.Join(s.dir, hex.EncodeToString(hash[:])+".json")
}
