// Package export writes artist query results to CSV and XLSX files.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ademuri/spotify-history-tools/internal/analysis"
)

// SheetName is the worksheet that holds an XLSX export.
const SheetName = "Listening History"

// ErrNothingToExport is returned when a query produced no rows.
var ErrNothingToExport = errors.New("no query results to export")

// Header is the first row of every export.
var Header = []string{"Track", "Hours Played"}

// Filename returns the export file name for artist with the given extension,
// e.g. "Radiohead_listening_history.csv".
func Filename(artist, ext string) string {
	clean := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == filepath.Separator {
			return '_'
		}
		return r
	}, strings.TrimSpace(artist))
	return fmt.Sprintf("%s_listening_history.%s", clean, strings.TrimPrefix(ext, "."))
}

// FormatHours renders hours with the fewest digits that round-trip.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// CSV writes result as a two-column CSV table.
func CSV(w io.Writer, result *analysis.QueryResult) error {
	if result == nil || result.Empty() {
		return ErrNothingToExport
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range result.Rows {
		if err := writer.Write([]string{row.Track, FormatHours(row.Hours)}); err != nil {
			return fmt.Errorf("writing row for %q: %w", row.Track, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// XLSX writes result as a workbook with a single sheet.
func XLSX(w io.Writer, result *analysis.QueryResult) error {
	if result == nil || result.Empty() {
		return ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for i, header := range Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, row := range result.Rows {
		line := i + 2
		if err := f.SetCellValue(SheetName, fmt.Sprintf("A%d", line), row.Track); err != nil {
			return fmt.Errorf("writing row for %q: %w", row.Track, err)
		}
		if err := f.SetCellValue(SheetName, fmt.Sprintf("B%d", line), row.Hours); err != nil {
			return fmt.Errorf("writing row for %q: %w", row.Track, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetCellStyle(SheetName, "A1", "B1", headerStyle)
	}
	f.SetColWidth(SheetName, "A", "A", 40)
	f.SetColWidth(SheetName, "B", "B", 15)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// WriteCSV saves result under dir and returns the file path.
func WriteCSV(dir, artist string, result *analysis.QueryResult) (string, error) {
	return writeFile(dir, Filename(artist, "csv"), result, CSV)
}

// WriteXLSX saves result under dir and returns the file path.
func WriteXLSX(dir, artist string, result *analysis.QueryResult) (string, error) {
	return writeFile(dir, Filename(artist, "xlsx"), result, XLSX)
}

// Write saves result in format ("csv" or "xlsx") and returns the file path.
func Write(dir, artist, format string, result *analysis.QueryResult) (string, error) {
	switch strings.ToLower(format) {
	case "", "csv":
		return WriteCSV(dir, artist, result)
	case "xlsx":
		return WriteXLSX(dir, artist, result)
	}
	return "", fmt.Errorf("unknown export format %q", format)
}

func writeFile(dir, name string, result *analysis.QueryResult, encode func(io.Writer, *analysis.QueryResult) error) (string, error) {
	if result == nil || result.Empty() {
		return "", ErrNothingToExport
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	if err := encode(file, result); err != nil {
		file.Close()
		os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}
