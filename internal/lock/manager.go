// Package lock orchestrates spec locking and tamper verification. A lock
// snapshots content digests for a set of files; verification recomputes
// digests from current disk state and diffs them against the snapshot.
package lock

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"stagegate/internal/digest"
	"stagegate/internal/lockfile"
)

// ErrNoFiles is returned when a lock is requested for an empty file list.
var ErrNoFiles = errors.New("no files to lock")

// Subject identifies what a lock covers. Raw strings satisfy it via
// SubjectID; structured identifiers (e.g. uuid.UUID) satisfy it directly.
type Subject interface {
	String() string
}

// SubjectID adapts a raw string to the Subject interface.
type SubjectID string

// String returns the raw identifier.
func (s SubjectID) String() string { return string(s) }

// Manager orchestrates locking and verification for one project root.
// It holds no state between calls beyond the persisted lock document.
type Manager struct {
	Root  string           // Project root; lock entries resolve against it
	Store *lockfile.Store  // Lock document persistence
	Now   func() time.Time // Clock override for tests; nil means time.Now
}

// NewManager creates a manager for the given project root, with the lock
// document at its default location under the control directory.
func NewManager(root string) *Manager {
	return &Manager{
		Root:  root,
		Store: lockfile.NewStore(lockfile.DefaultPath(root)),
	}
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// resolve cleans a path into its relative entry key and the full on-disk
// path. Absolute paths are taken as-is and keyed relative to the root.
func (m *Manager) resolve(path string) (key string, full string, err error) {
	if filepath.IsAbs(path) {
		rel, err := filepath.Rel(m.Root, path)
		if err != nil {
			return "", "", fmt.Errorf("path %s is outside project root: %w", path, err)
		}
		return filepath.ToSlash(rel), path, nil
	}
	key = filepath.ToSlash(filepath.Clean(path))
	return key, filepath.Join(m.Root, key), nil
}

// Lock computes digests for every file, then persists a single new record
// stamped with the current UTC time. All hashing happens before any
// persistence: if any file is missing, no record is written.
func (m *Manager) Lock(subject Subject, paths []string) (lockfile.Record, error) {
	if len(paths) == 0 {
		return lockfile.Record{}, ErrNoFiles
	}

	entries := make(map[string]string, len(paths))
	for _, p := range paths {
		key, full, err := m.resolve(p)
		if err != nil {
			return lockfile.Record{}, err
		}
		d, err := digest.HashFile(full)
		if err != nil {
			return lockfile.Record{}, err
		}
		entries[key] = d.String()
	}

	rec := lockfile.Record{
		SubjectID: subject.String(),
		LockedAt:  m.now().UTC(),
		Entries:   entries,
	}
	if err := m.Store.Save(rec); err != nil {
		return lockfile.Record{}, err
	}
	return rec, nil
}

// IsLocked reports whether a lock document exists. Existence check only.
func (m *Manager) IsLocked() bool {
	return m.Store.Exists()
}

// Get loads the current lock record, if any.
func (m *Manager) Get() (lockfile.Record, bool, error) {
	return m.Store.Load()
}

// Unlock deletes the lock document if present. Idempotent; reports whether
// anything was deleted.
func (m *Manager) Unlock() (bool, error) {
	return m.Store.Delete()
}

// Verify recomputes digests from current disk state and diffs them against
// the persisted record. Absence of a lock is not a violation: with no record
// the outcome is valid with empty findings. Strictly read-only.
func (m *Manager) Verify() (Outcome, error) {
	rec, ok, err := m.Store.Load()
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return emptyOutcome(), nil
	}

	outcome := Outcome{
		SubjectID: rec.SubjectID,
		Modified:  []string{},
		Missing:   []string{},
		Expected:  make(map[string]string, len(rec.Entries)),
		Actual:    make(map[string]string, len(rec.Entries)),
	}

	for path, want := range rec.Entries {
		outcome.Expected[path] = want

		_, full, err := m.resolve(path)
		if err != nil {
			return Outcome{}, err
		}
		d, err := digest.HashFile(full)
		if errors.Is(err, digest.ErrNotFound) {
			outcome.Missing = append(outcome.Missing, path)
			outcome.Actual[path] = MissingDigest
			continue
		}
		if err != nil {
			return Outcome{}, err
		}
		outcome.Actual[path] = d.String()
		if d.String() != want {
			outcome.Modified = append(outcome.Modified, path)
		}
	}

	sort.Strings(outcome.Modified)
	sort.Strings(outcome.Missing)
	outcome.Valid = len(outcome.Modified) == 0 && len(outcome.Missing) == 0
	return outcome, nil
}
