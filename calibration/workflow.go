package calibration

import (
	"github.com/ByLCY/truescale/model"
	"github.com/ByLCY/truescale/store"
)

// Workflow 把校准流程绑定到 Store：打开、拖动控件、完成。
type Workflow struct {
	store *store.Store
}

func NewWorkflow(s *store.Store) *Workflow {
	return &Workflow{store: s}
}

// Open 打开校准面板。
func (w *Workflow) Open() { w.store.ToggleCalibration(true) }

// Close 关闭校准面板，保留当前值。
func (w *Workflow) Close() { w.store.ToggleCalibration(false) }

// IsOpen 报告校准面板是否打开。
func (w *Workflow) IsOpen() bool { return w.store.Snapshot().CalibrationOpen }

// SetPixelsPerInch 按控件规则取值后立即写入 Store，并返回新的参照物。
func (w *Workflow) SetPixelsPerInch(ppi float64) Sheet {
	v := Snap(ppi)
	w.store.SetCalibration(model.CalibrationPatch{PixelsPerInch: &v})
	return w.Sheet()
}

// Adjust 在当前值上增减若干步。
func (w *Workflow) Adjust(steps int) Sheet {
	cur := w.store.Snapshot().Document.Calibration.PixelsPerInch
	return w.SetPixelsPerInch(cur + float64(steps)*Step)
}

// Sheet 返回当前文档的参照物。
func (w *Workflow) Sheet() Sheet {
	doc := w.store.Document()
	return References(doc.Page, doc.Calibration)
}
