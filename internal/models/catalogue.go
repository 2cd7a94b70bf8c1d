package models

// CatalogueItem is one product model from the dimensions spreadsheet. Field
// names match what the site's catalogue page reads.
type CatalogueItem struct {
	Model     string `json:"MODEL"`
	ImageName string `json:"IMAGE_NAME,omitempty"`
	Wattage   string `json:"WATTAGE,omitempty"`
	Diameter  string `json:"DIAMETER,omitempty"`
	Height    string `json:"HEIGHT,omitempty"`
	Cutout    string `json:"CUTOUT,omitempty"`
}
