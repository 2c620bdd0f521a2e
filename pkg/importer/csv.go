// Package importer parses product CSV exports into store records.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/gerobakjogja/site-functions/models"
)

// Columns in order: id, name, slug, image, price. The image column may hold
// several URLs separated by "|".
const minColumns = 5

// ParseProducts reads a CSV with a header row. Invalid rows are logged and
// skipped; rows without an ID get a generated one.
func ParseProducts(data []byte) ([]models.Product, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // short rows are skipped below, not fatal
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV is empty or has only headers")
	}

	var products []models.Product
	for i, row := range records[1:] {
		line := i + 2
		if len(row) < minColumns {
			log.Printf("Skipping row %d due to insufficient columns: %v", line, row)
			continue
		}

		productCSV := models.ProductCSV{
			ID:    strings.TrimSpace(row[0]),
			Name:  strings.TrimSpace(row[1]),
			Slug:  strings.TrimSpace(row[2]),
			Image: strings.TrimSpace(row[3]),
		}
		if productCSV.Name == "" {
			log.Printf("Skipping row %d: empty name", line)
			continue
		}
		productCSV.Price, err = strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		if err != nil {
			log.Printf("Skipping row %d: Invalid price '%s': %v", line, row[4], err)
			continue
		}

		if productCSV.ID == "" {
			productCSV.ID = uuid.New().String()
		}

		product := models.Product{
			ID:    productCSV.ID,
			Name:  productCSV.Name,
			Slug:  productCSV.Slug,
			Price: productCSV.Price,
		}
		for _, img := range strings.Split(productCSV.Image, "|") {
			if img = strings.TrimSpace(img); img != "" {
				product.Images = append(product.Images, img)
			}
		}
		products = append(products, product)
	}
	return products, nil
}
