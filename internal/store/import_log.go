package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ma202004gh/jp-wage-dashboard/internal/datastore"
)

// IngestionLog 加载记录（查询结果）
type IngestionLog struct {
	ID           int64     `json:"id"`
	RunID        string    `json:"runId"`
	Kind         string    `json:"kind"`
	FileName     string    `json:"fileName"`
	FilePath     string    `json:"filePath"`
	FileSize     int64     `json:"fileSize"`
	FileHash     string    `json:"fileHash"`
	Rows         int       `json:"rows"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RecordIngestion 写入一条源文件加载记录
func (s *Store) RecordIngestion(ctx context.Context, rec datastore.IngestionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingestion_logs (run_id, table_kind, filename, file_path, file_size, file_hash, row_count, status, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.RunID, string(rec.Kind), rec.FileName, rec.FilePath, rec.FileSize, rec.FileHash, rec.Rows, rec.Status, rec.ErrorMessage)
	if err != nil {
		return fmt.Errorf("failed to create ingestion log: %w", err)
	}
	return nil
}

// ListIngestions 最近的加载记录，按写入顺序倒序
func (s *Store) ListIngestions(ctx context.Context, limit int) ([]IngestionLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, table_kind, filename, file_path, file_size, file_hash, row_count, status, error_message, created_at
		FROM ingestion_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingestion logs: %w", err)
	}
	defer rows.Close()

	out := make([]IngestionLog, 0)
	for rows.Next() {
		var l IngestionLog
		if err := rows.Scan(&l.ID, &l.RunID, &l.Kind, &l.FileName, &l.FilePath, &l.FileSize, &l.FileHash, &l.Rows, &l.Status, &l.ErrorMessage, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
