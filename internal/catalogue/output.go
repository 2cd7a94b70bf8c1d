package catalogue

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/msquare-lighting/msquare-api/internal/models"
	"github.com/msquare-lighting/msquare-api/pkg/logger"
	"go.uber.org/zap"
)

const (
	// JSONName is the catalogue file written to the output directory
	JSONName = "catalogue.json"
	// ImagesDirName is the subdirectory holding product images
	ImagesDirName = "catalogue-images"
)

// WriteJSON writes items to path as an indented JSON array
func WriteJSON(path string, items []models.CatalogueItem) error {
	if items == nil {
		items = []models.CatalogueItem{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalogue: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadJSON loads a catalogue written by WriteJSON
func ReadJSON(path string) ([]models.CatalogueItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var items []models.CatalogueItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return items, nil
}

// FileSource feeds the API's catalogue cache from a catalogue.json on disk
type FileSource struct {
	Path string
}

func (s FileSource) Load(_ context.Context) ([]models.CatalogueItem, error) {
	return ReadJSON(s.Path)
}

// CopyImages copies the regular files in src into dst and returns how many
// were copied. A missing src is not an error.
func CopyImages(src, dst string) (int, error) {
	entries, err := os.ReadDir(src)
	if os.IsNotExist(err) {
		logger.Warn("Images source not found", zap.String("dir", src))
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", src, err)
	}

	if err := os.MkdirAll(dst, 0o755); err != nil {
		return 0, fmt.Errorf("create %s: %w", dst, err)
	}

	copied := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := copyFile(filepath.Join(src, e.Name()), filepath.Join(dst, e.Name())); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
