package lockfile

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ControlDir is the hidden directory holding project control files.
const ControlDir = ".stagegate"

// LockFileName is the lock document file name inside ControlDir.
const LockFileName = "spec.lock"

// Store manages persistence of the lock document at a fixed path.
type Store struct {
	Path string // Full path to the lock document
}

// NewStore creates a store for the given document path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// DefaultPath returns the lock document path for a project root
// (<root>/.stagegate/spec.lock).
func DefaultPath(root string) string {
	return filepath.Join(root, ControlDir, LockFileName)
}

// Save writes the record, creating missing parent directories. The document
// is written to a temp file and renamed into place so readers never observe
// a partially written document.
func (s *Store) Save(rec Record) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(toDocument(rec))
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".spec.lock-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, s.Path)
}

// Load reads the persisted record. The second return value reports presence:
// an absent document returns (zero, false, nil), and a corrupt document is
// treated identically to absent — verification must never be stricter than
// having no lock. Only real I/O failures surface as errors.
func (s *Store) Load() (Record, bool, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Record{}, false, nil
	}
	rec, err := fromDocument(doc)
	if err != nil {
		return Record{}, false, nil
	}
	return rec, true, nil
}

// Exists checks whether a lock document is present, without parsing it.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Delete removes the lock document. Idempotent: returns whether anything
// was actually deleted.
func (s *Store) Delete() (bool, error) {
	err := os.Remove(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
