// Package batchfile decodes uploaded product files into import rows.
package batchfile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bazaarline/importer/internal/core/domain"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoHeader          = errors.New("file has no header row")
)

// knownColumns maps accepted header spellings, Persian included, to
// canonical row keys.
var knownColumns = map[string]string{
	"name":           "name",
	"نام":            "name",
	"نام محصول":      "name",
	"price":          "price",
	"قیمت":           "price",
	"description":    "description",
	"توضیحات":        "description",
	"category":       "category",
	"دسته بندی":      "category",
	"دسته‌بندی":      "category",
	"stock":          "stock",
	"stock_quantity": "stock",
	"موجودی":         "stock",
	"sku":            "sku",
	"کد محصول":       "sku",
	"image_url":      "image_url",
	"تصویر":          "image_url",
	"slug":           "slug",
	"is_active":      "is_active",
	"فعال":           "is_active",
}

// Parse decodes the named upload into rows keyed by canonical column
// names. The format is picked by file extension; only .csv and .xlsx
// are accepted.
func Parse(filename string, r io.Reader) ([]domain.ImportRow, error) {
	const op = "batchfile.Parse"

	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		records, err = readCSV(r)
	case ".xlsx":
		records, err = readXLSX(r)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := toRows(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)

	// Spreadsheet exports commonly prepend a UTF-8 BOM.
	if b, err := br.Peek(3); err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}
	return f.GetRows(sheets[0])
}

func toRows(records [][]string) ([]domain.ImportRow, error) {
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := knownColumns[key]; ok {
			key = canonical
		}
		header[i] = key
	}

	rows := make([]domain.ImportRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		row := make(domain.ImportRow, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
