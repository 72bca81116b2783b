package lockfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(DefaultPath(t.TempDir()))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := testStore(t)

	lockedAt := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	rec := Record{
		SubjectID: "feature-auth",
		LockedAt:  lockedAt,
		Entries: map[string]string{
			"tests/auth_test.md":  "sha256:aaaa",
			"tests/login_test.md": "sha256:bbbb",
		},
	}

	if err := s.Save(rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, ok, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("expected record to be present")
	}
	if loaded.SubjectID != rec.SubjectID {
		t.Errorf("subject mismatch: %s != %s", loaded.SubjectID, rec.SubjectID)
	}
	if !loaded.LockedAt.Equal(lockedAt) {
		t.Errorf("lockedAt not preserved: %v != %v", loaded.LockedAt, lockedAt)
	}
	if len(loaded.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(loaded.Entries))
	}
	for path, want := range rec.Entries {
		if loaded.Entries[path] != want {
			t.Errorf("entry %s: %s != %s", path, loaded.Entries[path], want)
		}
	}
}

func TestSave_WritesExplicitOffset(t *testing.T) {
	s := testStore(t)

	rec := Record{
		SubjectID: "s",
		LockedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Entries:   map[string]string{"a.md": "sha256:aa"},
	}
	if err := s.Save(rec); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "2026-01-02T03:04:05+00:00") {
		t.Errorf("expected explicit +00:00 offset in document, got:\n%s", data)
	}
}

func TestLoad_AcceptsZSuffix(t *testing.T) {
	s := testStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		t.Fatal(err)
	}

	doc := "subject_id: s\nlocked_at: \"2026-01-02T03:04:05Z\"\nentries:\n  a.md: sha256:aa\n"
	if err := os.WriteFile(s.Path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	rec, ok, err := s.Load()
	if err != nil || !ok {
		t.Fatalf("Load failed: ok=%v err=%v", ok, err)
	}
	want := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if !rec.LockedAt.Equal(want) {
		t.Errorf("expected %v, got %v", want, rec.LockedAt)
	}
}

func TestLoad_Absent(t *testing.T) {
	s := testStore(t)

	_, ok, err := s.Load()
	if err != nil {
		t.Fatalf("absent document should not error: %v", err)
	}
	if ok {
		t.Error("expected absent")
	}
}

func TestLoad_CorruptTreatedAsAbsent(t *testing.T) {
	s := testStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		t.Fatal(err)
	}

	for name, content := range map[string]string{
		"not yaml":      "{{{{ not a document",
		"bad timestamp": "subject_id: s\nlocked_at: yesterday\nentries: {}\n",
	} {
		if err := os.WriteFile(s.Path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		_, ok, err := s.Load()
		if err != nil {
			t.Errorf("%s: corrupt document should not error: %v", name, err)
		}
		if ok {
			t.Errorf("%s: corrupt document should read as absent", name)
		}
	}
}

func TestLoad_IgnoresUnknownFields(t *testing.T) {
	s := testStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		t.Fatal(err)
	}

	doc := "subject_id: s\nlocked_at: \"2026-01-02T03:04:05+00:00\"\nfuture_field: 7\nentries:\n  a.md: sha256:aa\n"
	if err := os.WriteFile(s.Path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	rec, ok, err := s.Load()
	if err != nil || !ok {
		t.Fatalf("Load failed: ok=%v err=%v", ok, err)
	}
	if rec.Entries["a.md"] != "sha256:aa" {
		t.Errorf("entries not preserved alongside unknown field")
	}
}

func TestExists(t *testing.T) {
	s := testStore(t)

	if s.Exists() {
		t.Error("expected no document")
	}
	rec := Record{SubjectID: "s", LockedAt: time.Now().UTC(), Entries: map[string]string{}}
	if err := s.Save(rec); err != nil {
		t.Fatal(err)
	}
	if !s.Exists() {
		t.Error("expected document after save")
	}
}

func TestDelete_Idempotent(t *testing.T) {
	s := testStore(t)

	deleted, err := s.Delete()
	if err != nil {
		t.Fatalf("Delete on absent document should not error: %v", err)
	}
	if deleted {
		t.Error("nothing to delete yet")
	}

	rec := Record{SubjectID: "s", LockedAt: time.Now().UTC(), Entries: map[string]string{}}
	if err := s.Save(rec); err != nil {
		t.Fatal(err)
	}

	deleted, err = s.Delete()
	if err != nil || !deleted {
		t.Fatalf("expected deletion: deleted=%v err=%v", deleted, err)
	}

	deleted, err = s.Delete()
	if err != nil || deleted {
		t.Fatalf("second delete should be a no-op: deleted=%v err=%v", deleted, err)
	}
}

func TestSave_NoLeftoverTempFiles(t *testing.T) {
	s := testStore(t)
	rec := Record{SubjectID: "s", LockedAt: time.Now().UTC(), Entries: map[string]string{"a.md": "sha256:aa"}}
	if err := s.Save(rec); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(filepath.Dir(s.Path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != LockFileName {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only %s, got %v", LockFileName, names)
	}
}
