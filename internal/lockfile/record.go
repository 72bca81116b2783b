// Package lockfile persists the spec lock document: a snapshot of content
// digests for a set of files under a subject identifier, stored as a
// human-diffable YAML document in the project's control directory.
package lockfile

import "time"

// Record is the persisted lock document. It is logically immutable: a new
// lock replaces the whole record, it is never edited in place.
type Record struct {
	SubjectID string            // Opaque identifier for what the lock covers
	LockedAt  time.Time         // UTC timestamp of when the lock was taken
	Entries   map[string]string // Relative path -> "<algorithm>:<hex>" digest
}

// timeLayout writes RFC 3339 with an explicit +00:00 offset. Reads accept
// both this form and the Z suffix.
const timeLayout = "2006-01-02T15:04:05.999999999+00:00"

// document is the YAML wire form of a Record.
type document struct {
	SubjectID string            `yaml:"subject_id"`
	LockedAt  string            `yaml:"locked_at"`
	Entries   map[string]string `yaml:"entries"`
}

func toDocument(rec Record) document {
	return document{
		SubjectID: rec.SubjectID,
		LockedAt:  rec.LockedAt.UTC().Format(timeLayout),
		Entries:   rec.Entries,
	}
}

func fromDocument(doc document) (Record, error) {
	lockedAt, err := time.Parse(time.RFC3339Nano, doc.LockedAt)
	if err != nil {
		return Record{}, err
	}
	entries := doc.Entries
	if entries == nil {
		entries = map[string]string{}
	}
	return Record{
		SubjectID: doc.SubjectID,
		LockedAt:  lockedAt.UTC(),
		Entries:   entries,
	}, nil
}
