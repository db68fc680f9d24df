package datastore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/text/encoding/japanese"

	"github.com/ma202004gh/jp-wage-dashboard/internal/parser"
)

const (
	nationalCSV = `集計年,年齢,一人当たり賃金（万円）,所定内給与額（万円）,年間賞与その他特別給与額（万円）
2018,年齢計,480.1,330.2,90.3
2018,20-24歳,250,200,30
2019,年齢計,490.5,335,95
2019,20-24歳,255,205,31
`
	categoryCSV = `集計年,産業大分類コード,産業大分類名,年齢,一人当たり賃金（万円）,所定内給与額（万円）,年間賞与その他特別給与額（万円）
2019,D,建設業,年齢計,560,380,100
2019,E,製造業,年齢計,520,350,110
2018,D,建設業,年齢計,550,375,98
`
	prefectureCSV = `集計年,都道府県コード,都道府県名,年齢,一人当たり賃金（万円）
2019,13,東京都,年齢計,620
2019,27,大阪府,年齢計,540
2019,13,東京都,20-24歳,280
`
	coordCSV = `pref_name,lat,lon
東京都,35.69,139.69
大阪府,34.69,135.52
`
)

type memRecorder struct {
	mu   sync.Mutex
	recs []IngestionRecord
}

func (m *memRecorder) RecordIngestion(_ context.Context, rec IngestionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, rec)
	return nil
}

func writeSJIS(t *testing.T, dir, name, content string) string {
	t.Helper()
	encoded, err := japanese.ShiftJIS.NewEncoder().String(content)
	if err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	return writeFile(t, dir, name, encoded)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func fixtureSources(t *testing.T) Sources {
	t.Helper()
	dir := t.TempDir()
	return Sources{
		NationalByIndustry:   SourceFile{Path: writeSJIS(t, dir, "national.csv", nationalCSV), Encoding: "shift_jis"},
		NationalByCategory:   SourceFile{Path: writeSJIS(t, dir, "category.csv", categoryCSV), Encoding: "shift_jis"},
		PrefectureByIndustry: SourceFile{Path: writeSJIS(t, dir, "prefecture.csv", prefectureCSV), Encoding: "shift_jis"},
		Coordinates:          SourceFile{Path: writeFile(t, dir, "pref_lat_lon.csv", coordCSV), Encoding: "utf-8"},
	}
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	rec := &memRecorder{}
	ds, err := NewLoader(nil, WithRecorder(rec)).Load(context.Background(), fixtureSources(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	s := ds.Summary()
	if s.NationalByIndustry != 4 || s.NationalByCategory != 3 || s.PrefectureByIndustry != 3 || s.Coordinates != 2 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if !ds.HasPrefecture("東京都") || ds.HasPrefecture("UnknownPlace") {
		t.Fatalf("unexpected coordinate domain")
	}
	if c, ok := ds.Coordinate("大阪府"); !ok || c.Longitude != 135.52 || c.Latitude != 34.69 {
		t.Fatalf("unexpected coordinate: %+v", c)
	}

	if len(rec.recs) != 4 {
		t.Fatalf("expected 4 ingestion records, got %d", len(rec.recs))
	}
	runID := rec.recs[0].RunID
	for _, r := range rec.recs {
		if r.Status != "imported" {
			t.Fatalf("unexpected status: %+v", r)
		}
		if r.RunID != runID || r.FileHash == "" {
			t.Fatalf("record missing run id or hash: %+v", r)
		}
	}
}

func TestLoader_MissingFile(t *testing.T) {
	t.Parallel()

	src := fixtureSources(t)
	src.NationalByCategory.Path = filepath.Join(t.TempDir(), "missing.csv")

	rec := &memRecorder{}
	_, err := NewLoader(nil, WithRecorder(rec)).Load(context.Background(), src)
	var ie *IngestionError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IngestionError, got %v", err)
	}
	if ie.Source != string(parser.TableNationalByCategory) {
		t.Fatalf("unexpected source: %s", ie.Source)
	}
	last := rec.recs[len(rec.recs)-1]
	if last.Status != "error" || last.ErrorMessage == "" {
		t.Fatalf("failure not recorded: %+v", last)
	}
}

func TestLoader_SchemaMismatch(t *testing.T) {
	t.Parallel()

	src := fixtureSources(t)
	src.Coordinates.Path = writeFile(t, t.TempDir(), "coords.csv", "pref_name,lat\n東京都,35.69\n")

	_, err := NewLoader(nil).Load(context.Background(), src)
	var ie *IngestionError
	if !errors.As(err, &ie) {
		t.Fatalf("expected IngestionError, got %v", err)
	}
	var se *parser.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected wrapped SchemaError, got %v", err)
	}
}

func TestLoader_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader(nil).Load(ctx, fixtureSources(t)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
