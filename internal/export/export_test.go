package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(1, 0, blue)
	img.SetRGBA(0, 1, color.RGBA{A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func sameRGB(a color.Color, b color.RGBA) bool {
	r, g, bb, _ := a.RGBA()
	return uint8(r>>8) == b.R && uint8(g>>8) == b.G && uint8(bb>>8) == b.B
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": PNG, "PNG": PNG, ".bmp": BMP, "tif": TIFF, "tiff": TIFF, "gif": GIF}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("jpeg"); err == nil {
		t.Error("ParseFormat accepted jpeg")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	decoders := map[Format]func(*bytes.Reader) (image.Image, error){
		PNG:  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		BMP:  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
		TIFF: func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
	}
	for f, decode := range decoders {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, testImage(), f, 1); err != nil {
				t.Fatal(err)
			}
			img, err := decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatal(err)
			}
			if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
				t.Fatalf("decoded size %v", img.Bounds())
			}
			if !sameRGB(img.At(0, 0), red) || !sameRGB(img.At(1, 0), blue) {
				t.Errorf("decoded pixels %v %v", img.At(0, 0), img.At(1, 0))
			}
		})
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, testImage(), Format("webp"), 1); err == nil {
		t.Error("Encode accepted an unknown format")
	}
}

func TestZoom(t *testing.T) {
	src := testImage()
	if Zoom(src, 1) != image.Image(src) {
		t.Error("Zoom(1) copied the image")
	}
	got := Zoom(src, 3)
	if b := got.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("zoomed size %v, want 6x6", b)
	}
	for y := range 6 {
		for x := range 6 {
			want := src.RGBAAt(x/3, y/3)
			if !sameRGB(got.At(x, y), want) {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got.At(x, y), want)
			}
		}
	}
}

type fakeFrames map[string]*image.RGBA

func (f fakeFrames) Frame(_ context.Context, id string) (*image.RGBA, error) {
	img, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return img, nil
}

func TestFrameHandler(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/sessions/{sessionId}/frame", NewHandler(fakeFrames{"sess_a": testImage()}, 4, 64).Frame)

	tests := []struct {
		query  string
		path   string
		status int
		ctype  string
		size   int
	}{
		{"", "sess_a", http.StatusOK, "image/png", 2},
		{"?format=bmp&zoom=4", "sess_a", http.StatusOK, "image/bmp", 8},
		{"?format=tiff&zoom=2", "sess_a", http.StatusOK, "image/tiff", 4},
		{"?format=webp", "sess_a", http.StatusBadRequest, "", 0},
		{"?zoom=5", "sess_a", http.StatusBadRequest, "", 0},
		{"?zoom=x", "sess_a", http.StatusBadRequest, "", 0},
		{"", "sess_missing", http.StatusNotFound, "", 0},
	}
	for _, tc := range tests {
		t.Run(tc.path+tc.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/sessions/"+tc.path+"/frame"+tc.query, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.status != http.StatusOK {
				return
			}
			if ct := rec.Header().Get("Content-Type"); ct != tc.ctype {
				t.Errorf("Content-Type = %q, want %q", ct, tc.ctype)
			}
			cfg, _, err := image.DecodeConfig(rec.Body)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Width != tc.size || cfg.Height != tc.size {
				t.Errorf("frame is %dx%d, want %dx%d", cfg.Width, cfg.Height, tc.size, tc.size)
			}
		})
	}
}

func TestFrameHandlerLimitsExportSize(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/sessions/{sessionId}/frame", NewHandler(fakeFrames{"sess_a": testImage()}, 8, 10).Frame)

	tests := []struct {
		zoom   string
		status int
	}{
		{"1", http.StatusOK},
		{"5", http.StatusOK},
		{"6", http.StatusBadRequest},
		{"8", http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run("zoom="+tc.zoom, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/sessions/sess_a/frame?zoom="+tc.zoom, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Errorf("status = %d, want %d", rec.Code, tc.status)
			}
		})
	}
}
