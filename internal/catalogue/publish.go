package catalogue

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/msquare-lighting/msquare-api/pkg/logger"
	"go.uber.org/zap"
)

// Uploader stores a local file in object storage under name
type Uploader interface {
	UploadFile(ctx context.Context, localPath, name string) (string, error)
}

// Publish uploads the generated catalogue.json and every image under
// outDir/catalogue-images. Images go first so the JSON never references an
// object that is not there yet.
func Publish(ctx context.Context, up Uploader, outDir string) (int, error) {
	uploaded := 0

	imagesDir := filepath.Join(outDir, ImagesDirName)
	entries, err := os.ReadDir(imagesDir)
	if err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("read %s: %w", imagesDir, err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return uploaded, err
		}
		if _, err := up.UploadFile(ctx, filepath.Join(imagesDir, e.Name()), path.Join(ImagesDirName, e.Name())); err != nil {
			return uploaded, err
		}
		uploaded++
	}

	url, err := up.UploadFile(ctx, filepath.Join(outDir, JSONName), JSONName)
	if err != nil {
		return uploaded, err
	}
	uploaded++

	logger.Info("Catalogue published", zap.String("url", url), zap.Int("objects", uploaded))
	return uploaded, nil
}
