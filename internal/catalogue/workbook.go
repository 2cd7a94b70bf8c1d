package catalogue

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/msquare-lighting/msquare-api/internal/models"
	"github.com/msquare-lighting/msquare-api/pkg/logger"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Workbook is the dimensions spreadsheet. Only the first sheet is read.
type Workbook struct {
	file  *excelize.File
	sheet string
}

// OpenWorkbook opens the XLSX at path
func OpenWorkbook(path string) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("workbook not found at %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	return &Workbook{file: f, sheet: sheets[0]}, nil
}

func (w *Workbook) Close() error {
	return w.file.Close()
}

func (w *Workbook) rows() ([][]string, error) {
	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", w.sheet, err)
	}
	return rows, nil
}

// Items parses the sheet into catalogue items
func (w *Workbook) Items() ([]models.CatalogueItem, error) {
	rows, err := w.rows()
	if err != nil {
		return nil, err
	}
	return ParseRows(rows), nil
}

// ItemsWithPictures parses the sheet and, for items without an image name,
// saves the picture anchored in their Image cell to dir as product_<n><ext>.
// It returns the items and how many pictures were written.
func (w *Workbook) ItemsWithPictures(dir string) ([]models.CatalogueItem, int, error) {
	rows, err := w.rows()
	if err != nil {
		return nil, 0, err
	}

	parsed, imageCol := parse(rows)
	if imageCol < 0 {
		return flatten(parsed), 0, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, 0, fmt.Errorf("create %s: %w", dir, err)
	}

	written := 0
	for _, p := range parsed {
		if p.item.ImageName != "" {
			continue
		}

		ref, err := excelize.CoordinatesToCellName(imageCol+1, p.row)
		if err != nil {
			return nil, written, err
		}
		pics, err := w.file.GetPictures(w.sheet, ref)
		if err != nil {
			return nil, written, fmt.Errorf("read picture at %s: %w", ref, err)
		}
		if len(pics) == 0 {
			continue
		}

		ext := strings.ToLower(pics[0].Extension)
		if ext == "" {
			ext = ".png"
		}
		name := fmt.Sprintf("product_%d%s", written+1, ext)
		if err := os.WriteFile(filepath.Join(dir, name), pics[0].File, 0o644); err != nil {
			return nil, written, fmt.Errorf("write %s: %w", name, err)
		}
		p.item.ImageName = name
		written++
	}

	logger.Debug("Extracted embedded pictures", zap.Int("count", written), zap.String("dir", dir))
	return flatten(parsed), written, nil
}
