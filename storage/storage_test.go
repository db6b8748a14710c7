package storage

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestDocumentPath(t *testing.T) {
	fileID := uuid.New()
	path := documentPath(fileID, "Crew RFP draft/v2.pdf")

	if !strings.HasPrefix(path, "tenders/") {
		t.Errorf("path %q does not start with tenders/", path)
	}
	if !strings.Contains(path, fileID.String()) {
		t.Errorf("path %q does not contain the file ID", path)
	}
	if !strings.HasSuffix(path, ".pdf") {
		t.Errorf("path %q lost the extension", path)
	}
	if strings.Contains(path, " ") {
		t.Errorf("path %q contains spaces", path)
	}
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"tender.pdf", "application/pdf"},
		{"notes.txt", "text/plain"},
		{"spec.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"legacy.doc", "application/msword"},
		{"data.bin", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := contentTypeFor(tt.filename); got != tt.want {
			t.Errorf("contentTypeFor(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	if _, err := s.Download(t.Context(), "../../etc/passwd"); err == nil {
		t.Error("Download with traversal path succeeded, want error")
	}
}
