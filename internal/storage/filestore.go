// Package storage provides filesystem storage for uploaded recipe images.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Register decoders for upload validation.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

// recipeImageDir is the directory for recipe images under the base dir.
// Stored paths follow the convention uploads/recipe/<uuid>.<ext>.
const recipeImageDir = "recipe"

var (
	// ErrNotAnImage indicates the payload could not be decoded as an image.
	ErrNotAnImage = errors.New("payload is not a decodable image")
	// ErrInvalidPath indicates a stored path escaping the base directory.
	ErrInvalidPath = errors.New("invalid stored file path")
)

// FileStore stores uploaded files on the local filesystem.
type FileStore struct {
	baseDir string
}

// NewFileStore creates a FileStore rooted at baseDir.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: filepath.Clean(baseDir)}
}

// ValidateImage checks that data decodes as a supported image and returns
// the detected format ("jpeg", "png", "gif").
func ValidateImage(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrNotAnImage
	}
	return format, nil
}

// SaveRecipeImage validates and writes an image payload, returning its
// stored reference relative to the base dir, e.g. recipe/<uuid>.jpg.
// Nothing is written when validation fails.
func (s *FileStore) SaveRecipeImage(data []byte) (string, error) {
	format, err := ValidateImage(data)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.baseDir, recipeImageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	name := uuid.New().String() + "." + extensionFor(format)
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return filepath.ToSlash(filepath.Join(recipeImageDir, name)), nil
}

// Remove deletes a stored file by its reference.
// A missing file is not an error.
func (s *FileStore) Remove(ref string) error {
	path, err := s.resolve(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stored file: %w", err)
	}

	return nil
}

// Exists reports whether a stored reference resolves to a file on disk.
func (s *FileStore) Exists(ref string) bool {
	path, err := s.resolve(ref)
	if err != nil {
		return false
	}

	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// resolve maps a stored reference to an absolute path, rejecting
// references that escape the base directory.
func (s *FileStore) resolve(ref string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(ref))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.baseDir, cleaned), nil
}

// extensionFor maps a decoded format name to a file extension.
func extensionFor(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}
