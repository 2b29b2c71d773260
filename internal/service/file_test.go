package service

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ljy0221/spring-board/internal/models"
)

type upload struct {
	name    string
	content string
}

func buildFileHeaders(t *testing.T, uploads []upload) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, u := range uploads {
		fw, err := w.CreateFormFile("uploadFiles", u.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte(u.content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["uploadFiles"]
}

func TestSaveAll(t *testing.T) {
	db := setupTestDB(t)
	dir := t.TempDir()
	svc := NewFileService(db, dir)
	alice := createTestUser(t, db, "alice", "Alice")
	post := createTestPost(t, db, alice, "Hello", "World")

	headers := buildFileHeaders(t, []upload{
		{"report.txt", "some text"},
		{"empty.txt", ""}, // must be skipped
		{"data.bin", "\x00\x01\x02"},
	})

	saved := svc.SaveAll(headers, post)
	if len(saved) != 2 {
		t.Fatalf("saved %d files, want 2 (empty one skipped)", len(saved))
	}

	for _, att := range saved {
		if !strings.HasSuffix(att.StoredName, "_"+att.OriginalName) {
			t.Errorf("stored name %q does not keep the original %q", att.StoredName, att.OriginalName)
		}
		if att.StoredName == att.OriginalName {
			t.Errorf("stored name %q lacks a unique prefix", att.StoredName)
		}
		info, err := os.Stat(att.Path)
		if err != nil {
			t.Errorf("stat %s: %v", att.Path, err)
			continue
		}
		if info.Size() != att.Size {
			t.Errorf("size on disk %d, row says %d", info.Size(), att.Size)
		}
	}

	rows, err := svc.ListByPost(post.ID)
	if err != nil {
		t.Fatalf("ListByPost failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("ListByPost = %d rows, want 2", len(rows))
	}
}

// An unwritable directory must not turn into an error for the caller; the
// post stays, the files are just gone.
func TestSaveAll_BestEffort(t *testing.T) {
	db := setupTestDB(t)
	dir := filepath.Join(t.TempDir(), "missing", "sub")
	svc := NewFileService(db, dir)
	alice := createTestUser(t, db, "alice", "Alice")
	post := createTestPost(t, db, alice, "Hello", "World")

	// break the upload dir after MkdirAll by replacing it with a file
	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(dir, []byte("not a dir"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	headers := buildFileHeaders(t, []upload{{"report.txt", "some text"}})
	saved := svc.SaveAll(headers, post)
	if len(saved) != 0 {
		t.Errorf("saved %d files into a broken dir", len(saved))
	}

	var count int64
	db.Model(&models.Attachment{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 0 {
		t.Errorf("%d orphan attachment rows", count)
	}
}

func TestFileDelete_ToleratesMissingObject(t *testing.T) {
	db := setupTestDB(t)
	dir := t.TempDir()
	svc := NewFileService(db, dir)
	alice := createTestUser(t, db, "alice", "Alice")
	post := createTestPost(t, db, alice, "Hello", "World")

	headers := buildFileHeaders(t, []upload{{"report.txt", "some text"}})
	saved := svc.SaveAll(headers, post)
	if len(saved) != 1 {
		t.Fatalf("saved %d files, want 1", len(saved))
	}

	// object vanishes out of band
	if err := os.Remove(saved[0].Path); err != nil {
		t.Fatalf("remove object: %v", err)
	}

	if err := svc.Delete(saved[0].ID); err != nil {
		t.Fatalf("Delete with missing object failed: %v", err)
	}
	if _, err := svc.Get(saved[0].ID); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Get after delete error = %v, want ErrFileNotFound", err)
	}
}

func TestFileDelete_RemovesObjectAndRow(t *testing.T) {
	db := setupTestDB(t)
	dir := t.TempDir()
	svc := NewFileService(db, dir)
	alice := createTestUser(t, db, "alice", "Alice")
	post := createTestPost(t, db, alice, "Hello", "World")

	headers := buildFileHeaders(t, []upload{{"report.txt", "some text"}})
	saved := svc.SaveAll(headers, post)
	if len(saved) != 1 {
		t.Fatalf("saved %d files, want 1", len(saved))
	}

	if err := svc.Delete(saved[0].ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(saved[0].Path); !os.IsNotExist(err) {
		t.Errorf("object still on disk after delete")
	}
}
