// Copyright (c) 2025 The Sign Tracker Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package storage saves uploaded sign photos to local disk and hands back
// the public URL path they are served under.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const MaxPhotoSize = 5 * 1024 * 1024

var (
	ErrPhotoTooLarge = errors.New("photo exceeds the maximum size of 5MB")
	ErrPhotoBadType  = errors.New("photo must be a JPG or PNG file")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// SaveSignPhoto writes an uploaded photo under dir/signs/{signID}/ and
// returns the URL path it will be served from ("/uploads/signs/...").
// Filenames carry a random component so a replaced photo gets a fresh URL.
func SaveSignPhoto(dir, signID string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxPhotoSize {
		return "", ErrPhotoTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", ErrPhotoBadType
	}

	photoDir := filepath.Join(dir, "signs", signID)
	if err := os.MkdirAll(photoDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create photo directory: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded photo: %w", err)
	}
	defer src.Close()

	name := "photo_" + uuid.NewString()[:8] + ext
	dst, err := os.Create(filepath.Join(photoDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create photo file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}

	return "/uploads/signs/" + signID + "/" + name, nil
}
