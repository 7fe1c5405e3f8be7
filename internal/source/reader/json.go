package reader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/opsfoundry/tickethouse/internal/source/domain"
	"go.uber.org/zap"
)

// JSON reads semi-structured records from a JSON export. The payload
// may be a bare array, a single object, or a {"records": [...]} wrapper.
type JSON struct {
	path string
	log  *zap.Logger
}

func NewJSON(path string, log *zap.Logger) *JSON {
	return &JSON{path: path, log: log.Named("source.json")}
}

func (r *JSON) Read(ctx context.Context) ([]domain.Record, int, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", r.path, err)
	}
	body := strings.TrimSpace(strings.TrimPrefix(string(raw), "\ufeff"))
	if body == "" {
		return []domain.Record{}, 0, nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil, 0, fmt.Errorf("parse %s: %w", r.path, err)
	}

	var items []any
	switch v := parsed.(type) {
	case map[string]any:
		if wrapped, ok := v["records"].([]any); ok {
			items = wrapped
		} else {
			items = []any{v}
		}
	case []any:
		items = v
	default:
		return nil, 1, nil
	}

	var (
		records []domain.Record
		skipped int
	)
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, skipped, err
		}
		obj, ok := item.(map[string]any)
		if !ok {
			skipped++
			continue
		}
		rec := make(domain.Record, len(obj))
		for key, value := range obj {
			rec[key] = coerce(value)
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		r.log.Warn("skipped malformed records",
			zap.String("file", r.path),
			zap.Int("skipped", skipped),
		)
	}
	return records, skipped, nil
}

func coerce(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		raw, _ := json.Marshal(t)
		return string(raw)
	}
}
