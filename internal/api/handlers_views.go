package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clive/milestones/internal/measure"
	"github.com/clive/milestones/internal/milestone"
	"github.com/clive/milestones/internal/render"
	"github.com/clive/milestones/internal/view"
)

// Frames configures how views are laid out and drawn for HTTP clients.
type Frames struct {
	// Viewport is the default pixel viewport. Its width can be overridden
	// per request with ?width=.
	Viewport milestone.Viewport
	Theme    render.Theme
	FontSize float64
	Ascent   float64
	// Measurer sizes labels. Nil estimates widths from FontSize.
	Measurer milestone.LabelMeasurer
	MaxWidth int
	// Duration is used by animate requests that leave duration_ms out.
	Duration time.Duration
}

type ViewHandler struct {
	reg    *view.Registry
	frames Frames
}

func NewViewHandler(reg *view.Registry, frames Frames) *ViewHandler {
	if frames.Measurer == nil {
		frames.Measurer = measure.Estimate{FontSize: frames.FontSize}
	}
	if frames.MaxWidth <= 0 {
		frames.MaxWidth = 4096
	}
	return &ViewHandler{reg: reg, frames: frames}
}

type createViewRequest struct {
	Milestones []milestone.Milestone `json:"milestones"`
	Progress   *float64              `json:"progress"`
}

type milestonesRequest struct {
	Milestones []milestone.Milestone `json:"milestones"`
}

type progressRequest struct {
	Progress *float64 `json:"progress"`
}

// maxDurationMs caps duration_ms so the conversion to time.Duration cannot overflow.
const maxDurationMs = int64(time.Hour / time.Millisecond)

type animateRequest struct {
	Target     *float64 `json:"target"`
	DurationMs *int64   `json:"duration_ms"`
}

type animateResponse struct {
	SessionID  uint64      `json:"session_id"`
	DurationMs int64       `json:"duration_ms"`
	Status     view.Status `json:"status"`
}

type viewResponse struct {
	view.Status
	Frame milestone.Frame `json:"frame"`
}

type listResponse struct {
	Views []string `json:"views"`
}

// List handles GET /views
func (h *ViewHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse{Views: h.reg.IDs()})
}

// Create handles POST /views
func (h *ViewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createViewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}

	v, err := h.reg.Create(req.Milestones, req.Progress)
	if err != nil {
		h.viewError(w, err)
		return
	}

	slog.Info("view created", "id", v.ID, "milestones", len(req.Milestones), "request_id", requestIDFrom(r.Context()))
	w.Header().Set("Location", "/views/"+v.ID)
	writeJSON(w, http.StatusCreated, v.Status())
}

// Get handles GET /views/{id}
func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, ok := h.lookup(w, r)
	if !ok {
		return
	}
	vp, err := h.viewport(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	st := v.Status()
	writeJSON(w, http.StatusOK, viewResponse{
		Status: st,
		Frame:  milestone.ComputeFrame(st.Snapshot, vp, h.frames.Measurer),
	})
}

// SetMilestones handles PUT /views/{id}/milestones
func (h *ViewHandler) SetMilestones(w http.ResponseWriter, r *http.Request) {
	v, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req milestonesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}

	v.SetMilestones(req.Milestones)
	writeJSON(w, http.StatusOK, v.Status())
}

// SetProgress handles PUT /views/{id}/progress
func (h *ViewHandler) SetProgress(w http.ResponseWriter, r *http.Request) {
	v, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req progressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if req.Progress == nil {
		writeError(w, http.StatusBadRequest, "progress is required")
		return
	}

	v.SetProgress(*req.Progress)
	writeJSON(w, http.StatusOK, v.Status())
}

// Animate handles POST /views/{id}/animate
func (h *ViewHandler) Animate(w http.ResponseWriter, r *http.Request) {
	v, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req animateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if req.Target == nil {
		writeError(w, http.StatusBadRequest, "target is required")
		return
	}

	d := h.frames.Duration
	if req.DurationMs != nil {
		if *req.DurationMs > maxDurationMs {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("duration_ms must be at most %d", maxDurationMs))
			return
		}
		d = time.Duration(*req.DurationMs) * time.Millisecond
	}

	s := v.Animate(*req.Target, d)
	writeJSON(w, http.StatusAccepted, animateResponse{
		SessionID:  s.ID,
		DurationMs: s.Duration.Milliseconds(),
		Status:     v.Status(),
	})
}

// SVG handles GET /views/{id}/frame.svg
func (h *ViewHandler) SVG(w http.ResponseWriter, r *http.Request) {
	h.image(w, r, "image/svg+xml", render.SVG)
}

// PNG handles GET /views/{id}/frame.png
func (h *ViewHandler) PNG(w http.ResponseWriter, r *http.Request) {
	h.image(w, r, "image/png", render.PNG)
}

// Delete handles DELETE /views/{id}
func (h *ViewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.reg.Delete(id); err != nil {
		h.viewError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type renderFunc func(w io.Writer, frame milestone.Frame, o render.Options) error

func (h *ViewHandler) image(w http.ResponseWriter, r *http.Request, contentType string, draw renderFunc) {
	v, ok := h.lookup(w, r)
	if !ok {
		return
	}
	vp, err := h.viewport(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	frame := v.Frame(vp, h.frames.Measurer)
	opts := render.Options{
		Viewport: vp,
		Theme:    h.frames.Theme,
		FontSize: h.frames.FontSize,
		Ascent:   h.frames.Ascent,
	}

	// Render into a buffer so a failure can still become a JSON error.
	var buf bytes.Buffer
	if err := draw(&buf, frame, opts); err != nil {
		slog.Error("render frame", "id", v.ID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Frame-Version", strconv.FormatUint(frame.Version, 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *ViewHandler) lookup(w http.ResponseWriter, r *http.Request) (*view.View, bool) {
	v, err := h.reg.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.viewError(w, err)
		return nil, false
	}
	return v, true
}

// viewport applies the optional ?width= override to the default viewport.
func (h *ViewHandler) viewport(r *http.Request) (milestone.Viewport, error) {
	vp := h.frames.Viewport
	raw := r.URL.Query().Get("width")
	if raw == "" {
		return vp, nil
	}
	width, err := strconv.Atoi(raw)
	if err != nil || width < 1 || width > h.frames.MaxWidth {
		return vp, fmt.Errorf("width must be an integer between 1 and %d", h.frames.MaxWidth)
	}
	vp.Width = float64(width)
	return vp, nil
}

func (h *ViewHandler) viewError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, view.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, view.ErrFull):
		writeError(w, http.StatusTooManyRequests, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
