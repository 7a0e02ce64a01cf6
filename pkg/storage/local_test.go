package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestNewLocal tests the Local backend constructor
func TestNewLocal(t *testing.T) {
	t.Run("ValidDirectory", func(t *testing.T) {
		local, err := NewLocal(t.TempDir())
		if err != nil {
			t.Fatalf("NewLocal() error = %v", err)
		}
		if local == nil {
			t.Fatal("NewLocal() returned nil")
		}
		defer local.Close()

		if !filepath.IsAbs(local.Root()) {
			t.Errorf("Root() = %s, want absolute path", local.Root())
		}
	})

	t.Run("NonExistentPath", func(t *testing.T) {
		_, err := NewLocal("/nonexistent/path/that/does/not/exist")
		if err == nil {
			t.Error("NewLocal() should fail for non-existent path")
		}
	})

	t.Run("FileNotDirectory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.txt")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}

		_, err := NewLocal(path)
		if err == nil {
			t.Error("NewLocal() should fail for file path (not directory)")
		}
	})
}

// TestLocalList tests the non-recursive List method
func TestLocalList(t *testing.T) {
	tempDir := t.TempDir()

	files := map[string][]byte{
		"file1.txt":        []byte("content1"),
		"file 2.txt":       []byte("content2"),
		"subdir/file3.txt": []byte("content3"),
	}
	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(fullPath, content, 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	ctx := context.Background()

	t.Run("ImmediateEntriesOnly", func(t *testing.T) {
		entries, err := local.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}

		if len(entries) != 3 {
			t.Fatalf("List() returned %d entries, want 3", len(entries))
		}

		regular := 0
		for _, e := range entries {
			if strings.Contains(e.Name, string(filepath.Separator)) {
				t.Errorf("entry name %q contains a separator", e.Name)
			}
			if e.Name == "subdir" {
				if !e.IsDir || e.IsRegular {
					t.Errorf("subdir: IsDir=%v IsRegular=%v", e.IsDir, e.IsRegular)
				}
				continue
			}
			if !e.IsRegular {
				t.Errorf("%s should be regular", e.Name)
			}
			regular++
		}
		if regular != 2 {
			t.Errorf("List() found %d regular files, want 2", regular)
		}
	})

	t.Run("Symlinks", func(t *testing.T) {
		linkDir := t.TempDir()
		if err := os.WriteFile(filepath.Join(linkDir, "target.txt"), []byte("t"), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
		if err := os.Mkdir(filepath.Join(linkDir, "dir"), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		links := map[string]string{
			"to-file":  "target.txt",
			"to-dir":   "dir",
			"dangling": "missing.txt",
		}
		for name, target := range links {
			if err := os.Symlink(target, filepath.Join(linkDir, name)); err != nil {
				t.Skipf("symlinks not supported: %v", err)
			}
		}

		l, err := NewLocal(linkDir)
		if err != nil {
			t.Fatalf("NewLocal() error = %v", err)
		}

		entries, err := l.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}

		got := make(map[string]bool)
		for _, e := range entries {
			got[e.Name] = e.IsRegular
		}
		want := map[string]bool{
			"target.txt": true,
			"dir":        false,
			"to-file":    true,
			"to-dir":     false,
			"dangling":   false,
		}
		for name, regular := range want {
			if got[name] != regular {
				t.Errorf("%s: IsRegular = %v, want %v", name, got[name], regular)
			}
		}
	})

	t.Run("ContextCancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := local.List(ctx)
		if err == nil {
			t.Error("List() should return error on cancelled context")
		}
	})
}

// TestLocalRead tests the Read method
func TestLocalRead(t *testing.T) {
	tempDir := t.TempDir()

	content := []byte("test content for reading")
	if err := os.WriteFile(filepath.Join(tempDir, "test.txt"), content, 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	ctx := context.Background()

	t.Run("ReadExistingFile", func(t *testing.T) {
		reader, err := local.Read(ctx, "test.txt")
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}

		if !bytes.Equal(data, content) {
			t.Errorf("Read() content = %s, want %s", string(data), string(content))
		}
	})

	t.Run("ReadNonExistentFile", func(t *testing.T) {
		_, err := local.Read(ctx, "nonexistent.txt")
		if err == nil {
			t.Error("Read() should fail for non-existent file")
		}
	})
}

// TestLocalWrite tests the Write method
func TestLocalWrite(t *testing.T) {
	tempDir := t.TempDir()

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	ctx := context.Background()

	t.Run("WriteNewFile", func(t *testing.T) {
		content := []byte("new file content")

		err := local.Write(ctx, "new.txt", bytes.NewReader(content), int64(len(content)), nil)
		if err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		data, err := os.ReadFile(filepath.Join(tempDir, "new.txt"))
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if !bytes.Equal(data, content) {
			t.Errorf("File content = %s, want %s", string(data), string(content))
		}
	})

	t.Run("WriteWithMetadata", func(t *testing.T) {
		content := []byte("metadata file content")
		modTime := time.Now().Add(-24 * time.Hour).Truncate(time.Second)

		metadata := &FileInfo{
			ModTime:     modTime,
			Permissions: 0600,
		}

		err := local.Write(ctx, "meta.txt", bytes.NewReader(content), int64(len(content)), metadata)
		if err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		info, err := os.Stat(filepath.Join(tempDir, "meta.txt"))
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}

		if !info.ModTime().Equal(modTime) {
			t.Errorf("ModTime = %v, want %v", info.ModTime(), modTime)
		}
		if info.Mode().Perm() != os.FileMode(0600) {
			t.Errorf("Permissions = %v, want %v", info.Mode().Perm(), os.FileMode(0600))
		}
	})

	t.Run("OverwriteFile", func(t *testing.T) {
		content1 := []byte("initial content")
		if err := local.Write(ctx, "overwrite.txt", bytes.NewReader(content1), int64(len(content1)), nil); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		content2 := []byte("new content")
		if err := local.Write(ctx, "overwrite.txt", bytes.NewReader(content2), int64(len(content2)), nil); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		data, err := os.ReadFile(filepath.Join(tempDir, "overwrite.txt"))
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if !bytes.Equal(data, content2) {
			t.Errorf("File content = %s, want %s", string(data), string(content2))
		}
	})

	t.Run("IncompleteWriteKeepsOriginal", func(t *testing.T) {
		original := []byte("original content")
		if err := os.WriteFile(filepath.Join(tempDir, "keep.txt"), original, 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}

		replacement := []byte("short")
		err := local.Write(ctx, "keep.txt", bytes.NewReader(replacement), 100, nil)
		if err == nil {
			t.Fatal("Write() should fail when fewer bytes than size are written")
		}

		data, err := os.ReadFile(filepath.Join(tempDir, "keep.txt"))
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if !bytes.Equal(data, original) {
			t.Errorf("File content = %s, want %s", string(data), string(original))
		}
	})

	t.Run("NoTemporaryFilesLeft", func(t *testing.T) {
		entries, err := os.ReadDir(tempDir)
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), tempPrefix) {
				t.Errorf("temporary file %s left behind", e.Name())
			}
		}
	})
}

// TestLocalExistsAndStat tests the Exists and Stat methods
func TestLocalExistsAndStat(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "exists.txt"), []byte("12345"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	local, err := NewLocal(tempDir)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}
	defer local.Close()

	ctx := context.Background()

	exists, err := local.Exists(ctx, "exists.txt")
	if err != nil || !exists {
		t.Errorf("Exists(exists.txt) = %v, %v; want true, nil", exists, err)
	}

	exists, err = local.Exists(ctx, "missing.txt")
	if err != nil || exists {
		t.Errorf("Exists(missing.txt) = %v, %v; want false, nil", exists, err)
	}

	info, err := local.Stat(ctx, "exists.txt")
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size != 5 || !info.IsRegular || info.Name != "exists.txt" {
		t.Errorf("Stat() = %+v", info)
	}

	if _, err := local.Stat(ctx, "missing.txt"); err == nil {
		t.Error("Stat() should fail for missing file")
	}
}
