package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Path prefixes communicate which entity owns a stored file.
const (
	PrefixCategories    = "categories"
	PrefixSubcategories = "subcategories"
	PrefixProducts      = "products"
	PrefixGallery       = "products/gallery"
	PrefixBanners       = "banners"
	PrefixLanding       = "landing"
)

// MaxImageSize is the per-file upload limit.
const MaxImageSize = 5 << 20 // 5MB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store writes uploaded files under a base directory and addresses them by
// web path ("/uploads/<prefix>/<name>").
type Store struct {
	BaseDir string
}

func New(baseDir string) *Store {
	return &Store{BaseDir: baseDir}
}

// ValidateImage checks extension and size without touching the disk.
func ValidateImage(file *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("unsupported file type %q", ext)
	}
	if file.Size > MaxImageSize {
		return fmt.Errorf("file %s exceeds the 5MB limit", file.Filename)
	}
	return nil
}

// Save stores an uploaded file under prefix with a generated name and
// returns its web path.
func (s *Store) Save(file *multipart.FileHeader, prefix string) (string, error) {
	if err := ValidateImage(file); err != nil {
		return "", err
	}

	dir := filepath.Join(s.BaseDir, filepath.FromSlash(prefix))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filename := uuid.New().String() + ext

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/uploads/" + prefix + "/" + filename, nil
}

// Delete removes the stored bytes behind a web path. Unknown paths are
// ignored so entity deletion never fails on a missing file.
func (s *Store) Delete(webPath string) {
	rel, ok := strings.CutPrefix(webPath, "/uploads/")
	if !ok || rel == "" {
		return
	}
	_ = os.Remove(filepath.Join(s.BaseDir, filepath.FromSlash(rel)))
}
