package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ByLCY/truescale/export"
	"github.com/ByLCY/truescale/layout"
	"github.com/ByLCY/truescale/model"
	"github.com/ByLCY/truescale/renderer"
)

// handleState returns the document together with the panel flags.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// handleGeometry returns the computed preview. ?debug=raw adds the source units.
func (s *Server) handleGeometry(w http.ResponseWriter, r *http.Request) {
	opts := layout.ComposeOptions{}
	opts.Debug.RawUnits = r.URL.Query().Get("debug") == "raw"
	writeJSON(w, http.StatusOK, layout.Compose(s.store.Document(), opts))
}

func (s *Server) handlePatchPage(w http.ResponseWriter, r *http.Request) {
	var patch model.PagePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		jsonError(w, "invalid page patch: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.store.SetPageConfig(patch); err != nil {
		if errors.Is(err, model.ErrInvalidColumns) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, "failed to update page: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handlePatchFrame(w http.ResponseWriter, r *http.Request) {
	frame, ok := frameIndex(chi.URLParam(r, "frame"))
	if !ok {
		jsonError(w, "unknown frame "+chi.URLParam(r, "frame"), http.StatusNotFound)
		return
	}
	var patch model.FramePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		jsonError(w, "invalid frame patch: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := normalizeFramePatch(&patch); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	switch frame {
	case 1:
		s.store.SetFrame1Style(patch)
	case 2:
		// 正文框高度由内容区剩余部分决定
		if patch.HeightMm != nil {
			jsonError(w, "frame2 height is derived from the content area", http.StatusBadRequest)
			return
		}
		s.store.SetFrame2Style(patch)
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// handlePutContent accepts either a raw text body or {"text": "..."}.
func (s *Server) handlePutContent(w http.ResponseWriter, r *http.Request) {
	frame, ok := frameIndex(chi.URLParam(r, "frame"))
	if !ok {
		jsonError(w, "unknown frame "+chi.URLParam(r, "frame"), http.StatusNotFound)
		return
	}
	var text string
	if isJSON(r) {
		var body struct {
			Text string `json:"text"`
		}
		if err := decodeJSON(w, r, &body); err != nil {
			jsonError(w, "invalid content body: "+err.Error(), http.StatusBadRequest)
			return
		}
		text = body.Text
	} else {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			jsonError(w, "failed to read body: "+err.Error(), http.StatusBadRequest)
			return
		}
		text = string(data)
	}
	if frame == 1 {
		s.store.SetContent1(text)
	} else {
		s.store.SetContent2(text)
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handlePatchCalibration(w http.ResponseWriter, r *http.Request) {
	var patch model.CalibrationPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		jsonError(w, "invalid calibration patch: "+err.Error(), http.StatusBadRequest)
		return
	}
	if patch.PixelsPerInch != nil && *patch.PixelsPerInch <= 0 {
		jsonError(w, "pixelsPerInch must be positive", http.StatusBadRequest)
		return
	}
	s.store.SetCalibration(patch)
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handlePatchView(w http.ResponseWriter, r *http.Request) {
	var patch model.ViewPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		jsonError(w, "invalid view patch: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.store.SetView(patch)
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

type panelRequest struct {
	Open *bool `json:"open"`
}

// handleCalibrationPanel opens or closes the calibration panel. An empty body toggles it.
func (s *Server) handleCalibrationPanel(w http.ResponseWriter, r *http.Request) {
	var req panelRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, "invalid panel request: "+err.Error(), http.StatusBadRequest)
		return
	}
	open := !s.calibration.IsOpen()
	if req.Open != nil {
		open = *req.Open
	}
	if open {
		s.calibration.Open()
	} else {
		s.calibration.Close()
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleControlPanel(w http.ResponseWriter, r *http.Request) {
	var req panelRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, "invalid panel request: "+err.Error(), http.StatusBadRequest)
		return
	}
	s.store.ToggleControlPanel(req.Open)
	writeJSON(w, http.StatusOK, s.store.Snapshot())
}

// handleCalibrationAdjust drives the density control: either an absolute value or a
// number of steps. Both are snapped to the control range.
func (s *Server) handleCalibrationAdjust(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PixelsPerInch *float64 `json:"pixelsPerInch"`
		Steps         int      `json:"steps"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, "invalid adjust request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.PixelsPerInch != nil {
		writeJSON(w, http.StatusOK, s.calibration.SetPixelsPerInch(*req.PixelsPerInch))
		return
	}
	writeJSON(w, http.StatusOK, s.calibration.Adjust(req.Steps))
}

func (s *Server) handleCalibrationReferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.calibration.Sheet())
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	format, err := renderer.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	p := layout.Compose(s.store.Document(), layout.ComposeOptions{})
	for _, warning := range p.Warnings {
		s.log.Warn("layout warning", "warning", warning)
	}
	data, err := s.renderer.RenderPreview(p, format)
	if err != nil {
		s.log.Error("render preview failed", "format", format, "error", err)
		jsonError(w, "failed to render preview: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeBytes(w, format.ContentType(), data)
}

func (s *Server) handleCalibrationImage(w http.ResponseWriter, r *http.Request) {
	format, err := renderer.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	sheet := s.calibration.Sheet()
	data, err := s.renderer.RenderCalibration(&sheet, format)
	if err != nil {
		s.log.Error("render calibration failed", "format", format, "error", err)
		jsonError(w, "failed to render calibration: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeBytes(w, format.ContentType(), data)
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := export.JSON(s.store.Document())
	if err != nil {
		jsonError(w, "failed to export settings: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.DefaultFilename))
	writeBytes(w, "application/json", data)
}

func (s *Server) handleExportText(w http.ResponseWriter, r *http.Request) {
	writeBytes(w, "text/plain; charset=utf-8", []byte(export.Text(s.store.Document())))
}

// frameIndex 把路径中的文本框名称映射为 1 或 2。
func frameIndex(name string) (int, bool) {
	switch strings.ToLower(name) {
	case layout.Frame1Name, "header":
		return 1, true
	case layout.Frame2Name, "body":
		return 2, true
	}
	return 0, false
}

// normalizeFramePatch 校验枚举字段并替换为规范取值。
func normalizeFramePatch(p *model.FramePatch) error {
	if p.FontFamily != nil {
		v, err := model.ParseFontFamily(string(*p.FontFamily))
		if err != nil {
			return err
		}
		p.FontFamily = &v
	}
	if p.FontWeight != nil {
		v, err := model.ParseFontWeight(string(*p.FontWeight))
		if err != nil {
			return err
		}
		p.FontWeight = &v
	}
	if p.FontStyle != nil {
		v, err := model.ParseFontStyle(string(*p.FontStyle))
		if err != nil {
			return err
		}
		p.FontStyle = &v
	}
	if p.TextCase != nil {
		v, err := model.ParseTextCase(string(*p.TextCase))
		if err != nil {
			return err
		}
		p.TextCase = &v
	}
	if p.Alignment != nil {
		v, err := model.ParseTextAlign(string(*p.Alignment))
		if err != nil {
			return err
		}
		p.Alignment = &v
	}
	if p.FontSizePt != nil && *p.FontSizePt <= 0 {
		return fmt.Errorf("fontSizePt must be positive")
	}
	return nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
