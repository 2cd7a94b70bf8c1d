package catalogue

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/msquare-lighting/msquare-api/pkg/logger"
	"go.uber.org/zap"
)

// Options for a generate run
type Options struct {
	WorkbookPath string
	ImagesDir    string // product photos copied verbatim; optional
	OutDir       string
	// ExtractEmbedded names items lacking an image after the picture
	// anchored in their Image cell.
	ExtractEmbedded bool
}

// Result summarises a generate run
type Result struct {
	JSONPath  string
	Items     int
	Copied    int
	Extracted int
}

// Generate writes <OutDir>/catalogue.json from the workbook and fills
// <OutDir>/catalogue-images.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	if opts.OutDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	wb, err := OpenWorkbook(opts.WorkbookPath)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	imagesOut := filepath.Join(opts.OutDir, ImagesDirName)
	res := &Result{JSONPath: filepath.Join(opts.OutDir, JSONName)}

	if opts.ImagesDir != "" {
		if res.Copied, err = CopyImages(opts.ImagesDir, imagesOut); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items, err := wb.Items()
	if opts.ExtractEmbedded && err == nil {
		items, res.Extracted, err = wb.ItemsWithPictures(imagesOut)
	}
	if err != nil {
		return nil, err
	}
	res.Items = len(items)

	if err := WriteJSON(res.JSONPath, items); err != nil {
		return nil, err
	}

	logger.Info("Catalogue generated",
		zap.String("path", res.JSONPath),
		zap.Int("models", res.Items),
		zap.Int("images_copied", res.Copied),
		zap.Int("images_extracted", res.Extracted))
	return res, nil
}
