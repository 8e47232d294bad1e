// Package store 持有进程内唯一的一份文档状态与面板开关。
package store

import (
	"sync"

	"github.com/ByLCY/truescale/model"
)

// State 是某一时刻的完整状态快照。
type State struct {
	Document         model.Document `json:"document"`
	CalibrationOpen  bool           `json:"calibrationOpen"`
	ControlPanelOpen bool           `json:"controlPanelOpen"`
}

// Listener 在每次变更后以新快照同步调用。
type Listener func(State)

// Store 用合并式 setter 更新状态。每个 setter 是一次原子合并，读者总能拿到一致的快照。
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners []Listener
}

// New 返回以 doc 为初始文档的 Store：校准面板关闭，控制面板打开。
func New(doc model.Document) *Store {
	return &Store{state: State{
		Document:         doc.Clone(),
		CalibrationOpen:  false,
		ControlPanelOpen: true,
	}}
}

// Snapshot 返回当前状态的副本。
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

// Document 返回当前文档的副本。
func (s *Store) Document() model.Document {
	return s.Snapshot().Document
}

// Subscribe 注册监听器，返回取消函数。
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.listeners) {
			s.listeners[idx] = nil
		}
	}
}

// SetPageConfig 合并页面补丁。结果栏数小于 1 时返回 model.ErrInvalidColumns，状态不变。
func (s *Store) SetPageConfig(patch model.PagePatch) error {
	var err error
	s.update(func(st *State) bool {
		next := model.ApplyPagePatch(st.Document.Page, patch)
		if err = next.Validate(); err != nil {
			return false
		}
		st.Document.Page = next
		return true
	})
	return err
}

func (s *Store) SetFrame1Style(patch model.FramePatch) {
	s.update(func(st *State) bool {
		st.Document.Frame1 = model.ApplyFramePatch(st.Document.Frame1, patch)
		return true
	})
}

func (s *Store) SetFrame2Style(patch model.FramePatch) {
	s.update(func(st *State) bool {
		st.Document.Frame2 = model.ApplyFramePatch(st.Document.Frame2, patch)
		return true
	})
}

func (s *Store) SetContent1(text string) {
	s.update(func(st *State) bool {
		st.Document.Content1 = text
		return true
	})
}

func (s *Store) SetContent2(text string) {
	s.update(func(st *State) bool {
		st.Document.Content2 = text
		return true
	})
}

// SetCalibration 合并校准补丁，不做范围检查。
func (s *Store) SetCalibration(patch model.CalibrationPatch) {
	s.update(func(st *State) bool {
		st.Document.Calibration = model.ApplyCalibrationPatch(st.Document.Calibration, patch)
		return true
	})
}

func (s *Store) SetView(patch model.ViewPatch) {
	s.update(func(st *State) bool {
		st.Document.View = model.ApplyViewPatch(st.Document.View, patch)
		return true
	})
}

func (s *Store) ToggleCalibration(open bool) {
	s.update(func(st *State) bool {
		st.CalibrationOpen = open
		return true
	})
}

// ToggleControlPanel 设置控制面板开关；open 为 nil 时取反。
func (s *Store) ToggleControlPanel(open *bool) {
	s.update(func(st *State) bool {
		if open != nil {
			st.ControlPanelOpen = *open
		} else {
			st.ControlPanelOpen = !st.ControlPanelOpen
		}
		return true
	})
}

// update 在写锁内执行 fn，fn 返回 false 表示放弃变更。监听器在释放锁后调用。
func (s *Store) update(fn func(*State) bool) {
	s.mu.Lock()
	if !fn(&s.state) {
		s.mu.Unlock()
		return
	}
	snap := s.copyLocked()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		if l != nil {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func (s *Store) copyLocked() State {
	out := s.state
	out.Document = s.state.Document.Clone()
	return out
}
