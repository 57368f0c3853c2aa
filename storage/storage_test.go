// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// uploadHeader builds a real multipart.FileHeader by round-tripping a
// multipart body through the standard request parser.
func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("photo", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("Failed to parse multipart form: %v", err)
	}
	return req.MultipartForm.File["photo"][0]
}

func TestSaveSignPhoto(t *testing.T) {
	dir := t.TempDir()
	fh := uploadHeader(t, "front-yard.JPG", []byte("jpeg bytes"))

	url, err := SaveSignPhoto(dir, "sign-1", fh)
	if err != nil {
		t.Fatalf("SaveSignPhoto failed: %v", err)
	}

	if !strings.HasPrefix(url, "/uploads/signs/sign-1/photo_") {
		t.Errorf("Unexpected URL path %q", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Errorf("Expected lowercased .jpg extension, got %q", url)
	}

	onDisk := filepath.Join(dir, "signs", "sign-1", filepath.Base(url))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("Photo not written to disk: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("Photo content mismatch: %q", data)
	}
}

func TestSaveSignPhotoFreshURLPerUpload(t *testing.T) {
	dir := t.TempDir()

	first, err := SaveSignPhoto(dir, "sign-1", uploadHeader(t, "a.png", []byte("one")))
	if err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	second, err := SaveSignPhoto(dir, "sign-1", uploadHeader(t, "a.png", []byte("two")))
	if err != nil {
		t.Fatalf("Second save failed: %v", err)
	}
	if first == second {
		t.Errorf("Replaced photo must get a fresh URL, both were %q", first)
	}
}

func TestSaveSignPhotoRejectsBadType(t *testing.T) {
	for _, filename := range []string{"notes.txt", "photo.gif", "photo", "photo.jpg.exe"} {
		fh := uploadHeader(t, filename, []byte("content"))
		if _, err := SaveSignPhoto(t.TempDir(), "sign-1", fh); !errors.Is(err, ErrPhotoBadType) {
			t.Errorf("SaveSignPhoto(%q) = %v, want ErrPhotoBadType", filename, err)
		}
	}
}

func TestSaveSignPhotoRejectsOversize(t *testing.T) {
	fh := uploadHeader(t, "huge.jpg", bytes.Repeat([]byte("x"), MaxPhotoSize+1))
	if _, err := SaveSignPhoto(t.TempDir(), "sign-1", fh); !errors.Is(err, ErrPhotoTooLarge) {
		t.Errorf("Expected ErrPhotoTooLarge, got %v", err)
	}
}
