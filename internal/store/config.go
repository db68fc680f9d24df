package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/ma202004gh/jp-wage-dashboard/internal/model"
	"github.com/ma202004gh/jp-wage-dashboard/internal/presentation"
)

// ErrConfigNotFound 配置项不存在
var ErrConfigNotFound = errors.New("config key not found")

// 界面选择的配置键
const (
	keyPrefecture = "selection.prefecture"
	keyYear       = "selection.year"
	keyMetric     = "selection.metric"
	keyGeoYear    = "selection.geo_year"
	keyShowTable  = "selection.show_table"
)

// GetConfig 获取配置项
func (s *Store) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, key)
		}
		return "", err
	}
	return value, nil
}

// SetConfig 设置配置项
func (s *Store) SetConfig(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	return err
}

// GetAllConfig 获取所有配置项
func (s *Store) GetAllConfig(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM config")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	config := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		config[key] = value
	}
	return config, rows.Err()
}

// LoadSelection 读取上次保存的界面选择；未保存的字段沿用 def
func (s *Store) LoadSelection(ctx context.Context, def presentation.Selection) (presentation.Selection, error) {
	all, err := s.GetAllConfig(ctx)
	if err != nil {
		return def, fmt.Errorf("failed to load selection: %w", err)
	}

	sel := def
	if v, ok := all[keyPrefecture]; ok && v != "" {
		sel.Prefecture = v
	}
	if v, ok := all[keyYear]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			sel.Year = n
		}
	}
	if v, ok := all[keyMetric]; ok {
		if m := model.MetricKind(v); m.Valid() {
			sel.Metric = m
		}
	}
	if v, ok := all[keyGeoYear]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			sel.GeoYear = n
		}
	}
	if v, ok := all[keyShowTable]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			sel.ShowTable = b
		}
	}
	return sel, nil
}

// SaveSelection 保存界面选择（单事务）
func (s *Store) SaveSelection(ctx context.Context, sel presentation.Selection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	values := map[string]string{
		keyPrefecture: sel.Prefecture,
		keyYear:       strconv.Itoa(sel.Year),
		keyMetric:     string(sel.Metric),
		keyGeoYear:    strconv.Itoa(sel.GeoYear),
		keyShowTable:  strconv.FormatBool(sel.ShowTable),
	}
	for key, value := range values {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO config (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
		`, key, value, value); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}
	return tx.Commit()
}
