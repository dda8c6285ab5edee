package tabular

import (
	"bufio"
	"encoding/csv"
	"io"

	"github.com/ovc/insights/internal/platform/apperr"
)

// DecodeCSV parses CSV bytes into a canonical Table. The first record is the
// header row. A parse failure aborts the whole decode with a FORMAT error —
// no partial table is returned.
func DecodeCSV(r io.Reader) (*Table, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	// Skip UTF-8 BOM if present.
	if bom, err := br.Peek(3); err == nil && len(bom) == 3 &&
		bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, apperr.New(apperr.KindFormat, "empty file: no header row")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindFormat, err, "read header row")
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperr.Wrap(apperr.KindFormat, err, "read row %d", len(rows)+2)
		}
		if len(rec) == 0 || (len(rec) == 1 && rec[0] == "") {
			continue
		}
		rows = append(rows, rec)
	}

	return newTable(header, rows), nil
}
