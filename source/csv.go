package source

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"fomezero/models"
)

// CSV reads a comma-separated file with a header row.
type CSV struct {
	Path string
}

func (c CSV) Describe() string { return "csv " + c.Path }

func (c CSV) Read(ctx context.Context) (models.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return models.RawTable{}, err
	}
	f, err := os.Open(c.Path)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("failed to open %s: %w", c.Path, err)
	}
	defer f.Close()

	raw, err := ReadCSV(f)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("%s: %w", c.Path, err)
	}
	return raw, nil
}

// ReadCSV reads a header row followed by data rows. A UTF-8 byte order mark
// is skipped. Rows may be shorter or longer than the header.
func ReadCSV(r io.Reader) (models.RawTable, error) {
	// 256KB buffer
	bufReader := bufio.NewReaderSize(r, 256*1024)

	bom, err := bufReader.Peek(3)
	if err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return models.RawTable{}, errors.New("missing header row")
	}
	if err != nil {
		return models.RawTable{}, fmt.Errorf("failed to read header row: %w", err)
	}

	raw := models.RawTable{Columns: header}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.RawTable{}, fmt.Errorf("failed to read row %d: %w", len(raw.Rows)+1, err)
		}
		raw.Rows = append(raw.Rows, rec)
	}
	return raw, nil
}
