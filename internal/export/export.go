// Package export writes a recipe list to spreadsheet files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/xuri/excelize/v2"

	"github.com/glabrego/recipe-cli/internal/recipes"
	"github.com/glabrego/recipe-cli/internal/render/text"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const sheetName = "Recipes"

var header = []string{"id", "name", "cuisine", "tags", "difficulty", "servings", "prep_minutes", "cook_minutes", "rating", "image", "ingredients", "instructions"}

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export extension %q: use .csv or .xlsx", filepath.Ext(path))
	}
}

// WriteFile replaces path with list encoded as format. The file is swapped in
// atomically so a failed export never leaves a partial file behind.
func WriteFile(path string, format Format, list []recipes.Recipe) error {
	var (
		buf *bytes.Buffer
		err error
	)
	switch format {
	case FormatCSV:
		buf, err = encodeCSV(list)
	case FormatXLSX:
		buf, err = encodeXLSX(list)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func Row(r recipes.Recipe) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		text.Plain(r.Name),
		text.Plain(r.Cuisine),
		strings.Join(r.Tags, ", "),
		r.Difficulty,
		optionalInt(r.Servings),
		optionalInt(r.PrepTimeMinutes),
		optionalInt(r.CookTimeMinutes),
		optionalFloat(r.Rating),
		r.Image,
		strings.Join(text.PlainAll(r.Ingredients), "\n"),
		numbered(text.PlainAll(r.Instructions)),
	}
}

func encodeCSV(list []recipes.Recipe) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range list {
		if err := w.Write(Row(r)); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return &buf, nil
}

func encodeXLSX(list []recipes.Recipe) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return nil, fmt.Errorf("open stream writer: %w", err)
	}
	if err := sw.SetRow("A1", toCells(header)); err != nil {
		return nil, fmt.Errorf("write xlsx header: %w", err)
	}
	for i, r := range list {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("cell name for row %d: %w", i+2, err)
		}
		if err := sw.SetRow(cell, toCells(Row(r))); err != nil {
			return nil, fmt.Errorf("write xlsx row %d: %w", r.ID, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("flush xlsx: %w", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode xlsx: %w", err)
	}
	return buf, nil
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func numbered(steps []string) string {
	lines := make([]string, len(steps))
	for i, step := range steps {
		lines[i] = strings.TrimRight(fmt.Sprintf("%d. %s", i+1, step), " ")
	}
	return strings.Join(lines, "\n")
}

func optionalInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func optionalFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
