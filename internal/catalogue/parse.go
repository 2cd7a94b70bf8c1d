// Package catalogue turns the product dimensions workbook into the JSON
// catalogue served by the API and shown on the site.
package catalogue

import (
	"strings"

	"github.com/msquare-lighting/msquare-api/internal/models"
)

const (
	modelHeader = "Model Name"
	imageHeader = "Image"
)

// columns locates the fields in the header row. Each model spans several
// rows; its specs sit in the first two unnamed columns as label and value.
type columns struct {
	model, image, label, value int
}

// locateColumns scans width columns; header cells past the end of the
// header row count as empty.
func locateColumns(header []string, width int) columns {
	cols := columns{model: -1, image: -1, label: -1, value: -1}
	for i := 0; i < width; i++ {
		h := cell(header, i)
		switch {
		case strings.EqualFold(h, modelHeader):
			if cols.model < 0 {
				cols.model = i
			}
		case strings.EqualFold(h, imageHeader):
			if cols.image < 0 {
				cols.image = i
			}
		case h == "":
			if cols.label < 0 {
				cols.label = i
			} else if cols.value < 0 {
				cols.value = i
			}
		}
	}
	return cols
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// setSpec stores value under the field named by label. Unknown labels are
// ignored.
func setSpec(item *models.CatalogueItem, label, value string) {
	switch label {
	case "WATTAGE", "WATT":
		item.Wattage = value
	case "DIAMETER", "DIA":
		item.Diameter = value
	case "HEIGHT", "HT":
		item.Height = value
	case "CUTOUT", "CUT OUT":
		item.Cutout = value
	}
}

// parsedItem keeps the 1-based sheet row an item started on, for locating
// pictures anchored next to it.
type parsedItem struct {
	item *models.CatalogueItem
	row  int
}

func parse(rows [][]string) (items []parsedItem, imageCol int) {
	if len(rows) == 0 {
		return nil, -1
	}
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	cols := locateColumns(rows[0], width)

	var current *models.CatalogueItem
	for i, row := range rows[1:] {
		if name := cell(row, cols.model); name != "" {
			current = &models.CatalogueItem{
				Model:     name,
				ImageName: cell(row, cols.image),
			}
			items = append(items, parsedItem{item: current, row: i + 2})
		}

		label := strings.ToUpper(cell(row, cols.label))
		value := cell(row, cols.value)
		if current != nil && label != "" && value != "" {
			setSpec(current, label, value)
		}
	}
	return items, cols.image
}

// ParseRows groups sheet rows (header first) into catalogue items in sheet
// order. Spec rows before the first model are dropped.
func ParseRows(rows [][]string) []models.CatalogueItem {
	parsed, _ := parse(rows)
	return flatten(parsed)
}

func flatten(parsed []parsedItem) []models.CatalogueItem {
	items := make([]models.CatalogueItem, 0, len(parsed))
	for _, p := range parsed {
		items = append(items, *p.item)
	}
	return items
}
