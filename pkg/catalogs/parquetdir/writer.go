package parquetdir

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// WriteFile writes rows to a parquet file at path with the given column
// order. The schema is built dynamically from the first non-nil value seen
// per column; columns with no values default to strings. All fields are
// written optional so nil values are preserved.
func WriteFile(path string, columns []string, rows []map[string]any) error {
	group := parquet.Group{}
	for _, col := range columns {
		group[col] = parquet.Optional(nodeFor(sample(rows, col)))
	}
	schema := parquet.NewSchema("snapshot", group)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := parquet.NewGenericWriter[map[string]any](f, schema)
	if len(rows) > 0 {
		normalized := make([]map[string]any, len(rows))
		for i, row := range rows {
			m := make(map[string]any, len(columns))
			for _, col := range columns {
				if v := normalize(row[col]); v != nil {
					m[col] = v
				}
			}
			normalized[i] = m
		}
		if _, err := w.Write(normalized); err != nil {
			_ = w.Close()
			_ = f.Close()
			return fmt.Errorf("writing rows to %s: %w", path, err)
		}
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("closing parquet writer for %s: %w", path, err)
	}
	return f.Close()
}

// sample returns the first non-nil value of a column, or nil.
func sample(rows []map[string]any, col string) any {
	for _, row := range rows {
		if v := row[col]; v != nil {
			return v
		}
	}
	return nil
}

// nodeFor maps a sampled Go value to a parquet leaf node.
func nodeFor(v any) parquet.Node {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return parquet.Int(64)
	case float32, float64:
		return parquet.Leaf(parquet.DoubleType)
	case bool:
		return parquet.Leaf(parquet.BooleanType)
	default:
		return parquet.String()
	}
}

// normalize coerces values to the canonical types the schema leaves expect.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return float64(x)
	case nil:
		return nil
	case int64, float64, bool, string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}
