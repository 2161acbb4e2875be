package pkg

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "includer" {
		t.Errorf("Expected Name to be %q, got %q", "includer", Name)
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("Failed to read VERSION file: %v", err)
	}

	if content := strings.TrimSpace(string(buf)); Version() != content {
		t.Errorf("Expected Version to be %q, got %q", content, Version())
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew" && a.Email == "andrew@ardnew.com"
	}) {
		t.Errorf("Expected Author to contain %q", "ardnew")
	}
}

func TestConfigDirEndsWithPrefix(t *testing.T) {
	if got := filepath.Base(ConfigDir()); got != Prefix() {
		t.Errorf("ConfigDir() base = %q, want %q", got, Prefix())
	}

	if got := filepath.Base(CacheDir()); got != Prefix() {
		t.Errorf("CacheDir() base = %q, want %q", got, Prefix())
	}
}
