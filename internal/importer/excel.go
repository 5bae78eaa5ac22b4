package importer

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// sheet — первый лист книги, разобранный в заголовок и строки данных.
type sheet struct {
	header map[string]int
	rows   [][]string
}

func openSheet(path string, withHeader bool) (*sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}

	sh := &sheet{header: make(map[string]int)}
	if !withHeader {
		sh.rows = rows
		return sh, nil
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("файл %s пуст", path)
	}
	for i, name := range rows[0] {
		sh.header[strings.TrimSpace(name)] = i
	}
	sh.rows = rows[1:]
	return sh, nil
}

// cell returns the trimmed value of a named column, empty string when the
// column is absent or the row is shorter (excelize drops trailing cells).
func (s *sheet) cell(row []string, name string) string {
	idx, ok := s.header[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// parseDecimal понимает и запятую, и точку как десятичный разделитель.
func parseDecimal(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
}

// parseInt accepts plain integers and the "5.0" shape spreadsheets produce
// for numeric cells.
func parseInt(raw string) (int, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
