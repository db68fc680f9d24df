package exporter

// Stage 导出阶段
type Stage string

const (
	StageAggregate Stage = "aggregate" // 计算派生表
	StageWrite     Stage = "write"     // 写入工作表
	StageDone      Stage = "done"
)

// ProgressEvent 导出进度；Rows 为已确定的数据行数
type ProgressEvent struct {
	Table   string
	Stage   Stage
	Rows    int
	Warning string // 键不一致时导出的是部分结果
}

// ProgressFunc 导出进度回调，可为 nil
type ProgressFunc func(ProgressEvent)

func (fn ProgressFunc) emit(ev ProgressEvent) {
	if fn == nil {
		return
	}
	fn(ev)
}
