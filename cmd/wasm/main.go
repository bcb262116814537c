//go:build js && wasm

package main

import (
	"errors"
	"syscall/js"

	"github.com/rasterpad/rasterpad/internal/engine"
)

const (
	defaultWidth  = 512
	defaultHeight = 512
)

var sess *engine.Session

func main() {
	sess = engine.NewSession(defaultWidth, defaultHeight, engine.Options{})

	// Create the editor API object
	editor := js.Global().Get("Object").New()

	// --- Commands (frontend → session) ---
	editor.Set("newSession", js.FuncOf(newSession))
	editor.Set("mouseDown", js.FuncOf(mouseDown))
	editor.Set("motion", js.FuncOf(motion))
	editor.Set("key", js.FuncOf(key))
	editor.Set("setMode", js.FuncOf(setMode))
	editor.Set("resize", js.FuncOf(resize))

	// --- Queries (frontend ← session) ---
	editor.Set("render", js.FuncOf(render))
	editor.Set("isDirty", js.FuncOf(isDirty))
	editor.Set("getState", js.FuncOf(getState))
	editor.Set("getSize", js.FuncOf(getSize))

	// Register on global scope
	js.Global().Set("rasterpad", editor)

	// Signal that WASM is ready
	js.Global().Set("rasterpadWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

// newSession(width, height, reflectRefill) replaces the current session.
func newSession(this js.Value, args []js.Value) interface{} {
	w, h := defaultWidth, defaultHeight
	if len(args) >= 2 {
		w, h = args[0].Int(), args[1].Int()
	}
	if w < 1 || h < 1 {
		return js.ValueOf(map[string]interface{}{"error": "canvas size must be positive"})
	}
	opts := engine.Options{}
	if len(args) >= 3 {
		opts.ReflectRefill = args[2].Truthy()
	}
	sess = engine.NewSession(w, h, opts)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func mouseDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	sess.MouseDown(args[0].Int(), args[1].Int())
	return nil
}

func motion(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	sess.Motion(args[0].Int(), args[1].Int())
	return nil
}

func key(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	return result(sess.Key(args[0].String()))
}

func setMode(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing mode"})
	}
	return result(sess.SelectMenu(args[0].String()))
}

func resize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	w, h := args[0].Int(), args[1].Int()
	if w < 1 || h < 1 {
		return js.ValueOf(map[string]interface{}{"error": "canvas size must be positive"})
	}
	sess.Resize(w, h)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Query Handlers ---

// render redraws the canvas and returns its RGBA bytes, top row first,
// ready for ImageData.
func render(this js.Value, args []js.Value) interface{} {
	sess.Render()
	pix := sess.Canvas().Image().Pix
	arr := js.Global().Get("Uint8ClampedArray").New(len(pix))
	js.CopyBytesToJS(arr, pix)
	return arr
}

func isDirty(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(sess.Dirty())
}

func getState(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(sess.StateJSON())
}

func getSize(this js.Value, args []js.Value) interface{} {
	w, h := sess.Size()
	return js.ValueOf(map[string]interface{}{"width": w, "height": h})
}

func result(err error) interface{} {
	switch {
	case err == nil:
		return js.ValueOf(map[string]interface{}{"ok": true})
	case errors.Is(err, engine.ErrQuit):
		return js.ValueOf(map[string]interface{}{"quit": true})
	default:
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
}
