package reader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/opsfoundry/tickethouse/internal/source/domain"
	"go.uber.org/zap"
)

// CSV reads header-mapped rows from a delimited export file.
type CSV struct {
	path string
	log  *zap.Logger
}

func NewCSV(path string, log *zap.Logger) *CSV {
	return &CSV{path: path, log: log.Named("source.csv")}
}

func (r *CSV) Read(ctx context.Context) ([]domain.Record, int, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Record{}, 0, nil
		}
		return nil, 0, fmt.Errorf("read header of %s: %w", r.path, err)
	}
	// Exports from Windows tooling may carry a UTF-8 BOM.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var (
		records []domain.Record
		skipped int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, skipped, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if len(row) != len(header) {
			skipped++
			continue
		}
		rec := make(domain.Record, len(header))
		for i, name := range header {
			rec[name] = row[i]
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		r.log.Warn("skipped malformed rows",
			zap.String("file", r.path),
			zap.Int("skipped", skipped),
		)
	}
	return records, skipped, nil
}
