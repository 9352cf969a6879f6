package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string     `json:"db_path" yaml:"db_path"`
	DBSizeBytes int64      `json:"db_size_bytes" yaml:"db_size_bytes"`
	TotalKeys   int        `json:"total_keys" yaml:"total_keys"`
	Keys        []KeyStats `json:"keys" yaml:"keys"`
}

// KeyStats describes one stored blob.
type KeyStats struct {
	Key       string `json:"key" yaml:"key"`
	Bytes     int    `json:"bytes" yaml:"bytes"`
	UpdatedAt string `json:"updated_at" yaml:"updated_at"`
}

// Stats returns database statistics for keys starting with prefix.
func (s *SQLiteStore) Stats(ctx context.Context, prefix string) (*Stats, error) {
	st := &Stats{DBPath: s.path}

	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT key, LENGTH(blob), updated_at FROM kv WHERE substr(key, 1, ?) = ? ORDER BY key`,
		len(prefix), prefix)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var k KeyStats
		if err := rows.Scan(&k.Key, &k.Bytes, &k.UpdatedAt); err != nil {
			return st, err
		}
		st.Keys = append(st.Keys, k)
	}
	st.TotalKeys = len(st.Keys)

	return st, rows.Err()
}
