package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

var ErrNotFound = errors.New("frame not found")

// FrameSource produces the current frame of a session. Implementations
// return an error wrapping ErrNotFound for unknown sessions.
type FrameSource interface {
	Frame(ctx context.Context, sessionID string) (*image.RGBA, error)
}

type Handler struct {
	frames  FrameSource
	maxZoom int
	maxSize int // longest side of an encoded image, in pixels
}

// NewHandler serves frames from frames. Zoom factors above maxZoom are
// rejected, as is any request whose zoomed image would have a side
// longer than maxSize pixels.
func NewHandler(frames FrameSource, maxZoom, maxSize int) *Handler {
	if maxZoom < 1 {
		maxZoom = 1
	}
	if maxSize < 1 {
		maxSize = 1
	}
	return &Handler{frames: frames, maxZoom: maxZoom, maxSize: maxSize}
}

// Frame serves a snapshot of the session canvas:
// GET /sessions/{sessionId}/frame?format=png|bmp|tiff|gif&zoom=N
func (h *Handler) Frame(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	format, err := ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, "invalid format: must be png, bmp, tiff, or gif", http.StatusBadRequest)
		return
	}

	zoom := 1
	if z := r.URL.Query().Get("zoom"); z != "" {
		zoom, err = strconv.Atoi(z)
		if err != nil || zoom < 1 || zoom > h.maxZoom {
			http.Error(w, "invalid zoom: must be between 1 and "+strconv.Itoa(h.maxZoom), http.StatusBadRequest)
			return
		}
	}

	img, err := h.frames.Frame(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		slog.Error("fetch frame", "error", err, "session", sessionID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	b := img.Bounds()
	if zoom*max(b.Dx(), b.Dy()) > h.maxSize {
		http.Error(w, "export too large: zoomed image would exceed "+strconv.Itoa(h.maxSize)+" pixels per side", http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, format, zoom); err != nil {
		slog.Error("encode frame", "error", err, "session", sessionID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition", `inline; filename="frame.`+string(format)+`"`)
	w.Write(buf.Bytes())
}
