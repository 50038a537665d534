package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"storefront-server/models"
	"storefront-server/utils"
)

const CatalogSheet = "Sheet1"

var catalogHeader = []interface{}{
	"ID", "Slug", "Name", "Price", "Description", "Image", "Colors", "Sizes", "Ratings", "Average",
}

// ExportCatalog writes the catalog as an XLSX workbook, one product per row.
func ExportCatalog(w io.Writer, products []models.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(CatalogSheet, "A1", &catalogHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range products {
		opts := p.Opts()
		colors := make([]string, 0, len(opts.Colors))
		for _, c := range opts.Colors {
			colors = append(colors, c.Value)
		}
		sizes := make([]string, 0, len(opts.Sizes))
		for _, s := range opts.Sizes {
			sizes = append(sizes, s.Value)
		}

		row := []interface{}{
			p.ID, p.Slug, p.Name, p.Price, utils.StripHTML(p.Description), p.Image,
			strings.Join(colors, ", "), strings.Join(sizes, ", "),
			p.RatingCount, p.RatingAverage,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(CatalogSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write product %s: %w", p.ID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
