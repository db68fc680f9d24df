package datastore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ma202004gh/jp-wage-dashboard/internal/logger"
	"github.com/ma202004gh/jp-wage-dashboard/internal/parser"
)

// IngestionError 源文件不可读或列不匹配；启动阶段致命
type IngestionError struct {
	Source string
	Path   string
	Err    error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("加载源数据 %s (%s) 失败: %v", e.Source, e.Path, e.Err)
}

func (e *IngestionError) Unwrap() error { return e.Err }

// SourceFile 单个源文件
type SourceFile struct {
	Path     string
	Encoding string
}

// Sources 四个源文件
type Sources struct {
	NationalByIndustry   SourceFile
	NationalByCategory   SourceFile
	PrefectureByIndustry SourceFile
	Coordinates          SourceFile
}

// IngestionRecord 一次源文件加载的记录
type IngestionRecord struct {
	RunID        string
	Kind         parser.TableKind
	FileName     string
	FilePath     string
	FileSize     int64
	FileHash     string
	Rows         int
	Status       string // imported/error
	ErrorMessage string
}

// IngestionRecorder 记录加载结果（由 SQLite store 实现）
type IngestionRecorder interface {
	RecordIngestion(ctx context.Context, rec IngestionRecord) error
}

// Loader 源数据加载器
type Loader struct {
	log        *logger.Logger
	recorder   IngestionRecorder
	recognizer *parser.TableRecognizer
	delimiter  rune
}

// LoaderOption 加载器选项
type LoaderOption func(*Loader)

// WithRecorder 设置加载记录器
func WithRecorder(r IngestionRecorder) LoaderOption {
	return func(l *Loader) { l.recorder = r }
}

// WithDelimiter 设置 CSV 分隔符
func WithDelimiter(d rune) LoaderOption {
	return func(l *Loader) { l.delimiter = d }
}

// NewLoader 创建加载器
func NewLoader(log *logger.Logger, opts ...LoaderOption) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	l := &Loader{
		log:        log,
		recognizer: parser.NewTableRecognizer(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load 加载四张源表，任一失败返回 *IngestionError
func (l *Loader) Load(ctx context.Context, src Sources) (*DataStore, error) {
	runID := uuid.New().String()
	log := l.log.With("run_id", runID)
	log.Info("开始加载源数据")

	nationalTab, err := l.readTable(ctx, runID, parser.TableNationalByIndustry, src.NationalByIndustry)
	if err != nil {
		return nil, err
	}
	national, err := parser.DecodeNationalByIndustry(nationalTab)
	if err := l.finish(ctx, runID, parser.TableNationalByIndustry, src.NationalByIndustry, len(national), err); err != nil {
		return nil, err
	}

	categoryTab, err := l.readTable(ctx, runID, parser.TableNationalByCategory, src.NationalByCategory)
	if err != nil {
		return nil, err
	}
	category, err := parser.DecodeNationalByCategory(categoryTab)
	if err := l.finish(ctx, runID, parser.TableNationalByCategory, src.NationalByCategory, len(category), err); err != nil {
		return nil, err
	}

	prefTab, err := l.readTable(ctx, runID, parser.TablePrefectureByIndustry, src.PrefectureByIndustry)
	if err != nil {
		return nil, err
	}
	prefecture, err := parser.DecodePrefectureByIndustry(prefTab)
	if err := l.finish(ctx, runID, parser.TablePrefectureByIndustry, src.PrefectureByIndustry, len(prefecture), err); err != nil {
		return nil, err
	}

	coordTab, err := l.readTable(ctx, runID, parser.TableCoordinates, src.Coordinates)
	if err != nil {
		return nil, err
	}
	coords, err := parser.DecodeCoordinates(coordTab)
	if err := l.finish(ctx, runID, parser.TableCoordinates, src.Coordinates, len(coords), err); err != nil {
		return nil, err
	}

	ds := New(national, category, prefecture, coords)
	s := ds.Summary()
	log.Info("源数据加载完成",
		"national_by_industry", s.NationalByIndustry,
		"national_by_category", s.NationalByCategory,
		"prefecture_by_industry", s.PrefectureByIndustry,
		"coordinates", s.Coordinates,
	)
	return ds, nil
}

// readTable 读取文件并校验表类型
func (l *Loader) readTable(ctx context.Context, runID string, kind parser.TableKind, f SourceFile) (*parser.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tab, err := parser.ReadFile(f.Path, parser.ReadOptions{Encoding: f.Encoding, Delimiter: l.delimiter})
	if err != nil {
		return nil, l.fail(ctx, runID, kind, f, err)
	}

	res := l.recognizer.Recognize(tab.Name, tab.Headers)
	if res.Kind != kind {
		l.log.Warn("源表类型识别不一致",
			"file", tab.Name, "expected", kind, "recognized", res.Kind, "confidence", res.Confidence)
	}
	return tab, nil
}

// finish 记录解码结果
func (l *Loader) finish(ctx context.Context, runID string, kind parser.TableKind, f SourceFile, rows int, decodeErr error) error {
	if decodeErr != nil {
		return l.fail(ctx, runID, kind, f, decodeErr)
	}
	rec := l.baseRecord(runID, kind, f)
	rec.Rows = rows
	rec.Status = "imported"
	l.record(ctx, rec)
	l.log.Debug("源表已加载", "kind", kind, "file", rec.FileName, "rows", rows)
	return nil
}

func (l *Loader) fail(ctx context.Context, runID string, kind parser.TableKind, f SourceFile, err error) error {
	rec := l.baseRecord(runID, kind, f)
	rec.Status = "error"
	rec.ErrorMessage = err.Error()
	l.record(ctx, rec)
	l.log.Error("源表加载失败", "kind", kind, "file", f.Path, "error", err)
	return &IngestionError{Source: string(kind), Path: f.Path, Err: err}
}

func (l *Loader) baseRecord(runID string, kind parser.TableKind, f SourceFile) IngestionRecord {
	rec := IngestionRecord{
		RunID:    runID,
		Kind:     kind,
		FileName: filepath.Base(f.Path),
		FilePath: f.Path,
	}
	if size, hash, err := fileDigest(f.Path); err == nil {
		rec.FileSize = size
		rec.FileHash = hash
	}
	return rec
}

func (l *Loader) record(ctx context.Context, rec IngestionRecord) {
	if l.recorder == nil {
		return
	}
	if err := l.recorder.RecordIngestion(ctx, rec); err != nil {
		l.log.Warn("写入加载记录失败", "file", rec.FileName, "error", err)
	}
}

func fileDigest(path string) (int64, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return 0, "", err
	}
	return n, hex.EncodeToString(h.Sum(nil)), nil
}
