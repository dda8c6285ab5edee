package tabular

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ovc/insights/internal/platform/apperr"
)

// DecodeXLSX parses an Excel workbook into a canonical Table. The first sheet
// is read, with its first row as the header. Same FORMAT-abort contract as
// DecodeCSV.
func DecodeXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindFormat, err, "open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.New(apperr.KindFormat, "workbook has no sheets")
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperr.Wrap(apperr.KindFormat, err, "read sheet %q", sheets[0])
	}
	if len(all) == 0 {
		return nil, apperr.New(apperr.KindFormat, "sheet %q is empty: no header row", sheets[0])
	}

	var rows [][]string
	for _, rec := range all[1:] {
		empty := true
		for _, cell := range rec {
			if cell != "" {
				empty = false
				break
			}
		}
		if !empty {
			rows = append(rows, rec)
		}
	}

	return newTable(all[0], rows), nil
}
