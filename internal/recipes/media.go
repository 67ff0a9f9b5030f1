package recipes

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaStore writes uploaded files under a media root. Stored paths are
// slash-separated and relative, e.g. uploads/recipe/<uuid>.jpg.
type MediaStore struct {
	root string
}

func NewMediaStore(root string) *MediaStore {
	return &MediaStore{root: root}
}

// SaveRecipeImage writes the bytes under a freshly generated name, keeping
// only the extension from the client filename. format is the decoded image
// format, used when the filename has no extension at all.
func (m *MediaStore) SaveRecipeImage(originalName string, format string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = "." + format
	}
	rel := path.Join("uploads", "recipe", uuid.New().String()+ext)

	full := filepath.Join(m.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return rel, nil
}

// Remove deletes a stored file; a path that is already gone is not an error.
func (m *MediaStore) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	err := os.Remove(filepath.Join(m.root, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Exists reports whether a stored path is still on disk.
func (m *MediaStore) Exists(rel string) bool {
	_, err := os.Stat(filepath.Join(m.root, filepath.FromSlash(rel)))
	return err == nil
}
