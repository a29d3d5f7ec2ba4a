//go:build !headless

// video_backend_ebiten.go - Ebiten window for the LCD canvas

/*
 ██      ██  ██████████  ██      ██    ████████  ████████    ██████████    ████████    ████████  ██      ██
 ████    ██  ██          ██      ██  ██          ██      ██  ██          ██          ██            ██  ██
 ██  ██  ██  ████████    ██  ██  ██    ██████    ████████    ████████    ██          ██              ██
 ██    ████  ██          ████  ████          ██  ██          ██          ██          ██              ██
 ██      ██  ██████████  ██      ██  ████████    ██          ██████████    ████████    ████████      ██
 ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░

(c) 2026 The newspeccy Authors
https://github.com/ashwinm76/newspeccy
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const maxPasteBytes = 4096

func init() {
	compiledFeatures = append(compiledFeatures, "video:ebiten")
}

type EbitenOutput struct {
	running     atomic.Bool
	window      *ebiten.Image
	config      DisplayConfig
	frameBuffer []byte // RGBA, converted in UpdateFrame
	bufferMutex sync.RWMutex
	frameCount  atomic.Uint64
	vsyncChan   chan struct{}
	done        chan struct{}
	doneOnce    sync.Once

	keyHandler       func(byte)
	hardResetHandler func()
	statusFunc       func() string
	resetInProgress  atomic.Bool

	clipboardOnce sync.Once
	clipboardOK   bool
	showStatusBar bool
}

func NewEbitenOutput() (VideoOutput, error) {
	return &EbitenOutput{
		config:      DefaultDisplayConfig(),
		frameBuffer: make([]byte, LCD_WIDTH*LCD_HEIGHT*4),
		vsyncChan:   make(chan struct{}, 1),
		done:        make(chan struct{}),
	}, nil
}

func (eo *EbitenOutput) Start() error {
	if eo.running.Load() {
		return nil
	}
	eo.running.Store(true)

	cfg := eo.GetDisplayConfig()
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(cfg.VSync)
	ebiten.SetFullscreen(cfg.Fullscreen)

	go func() {
		defer eo.closeDone()
		if err := ebiten.RunGame(eo); err != nil {
			Logf("video", "ebiten: %v", err)
		}
		eo.running.Store(false)
	}()

	// Wait for first Draw call, or for RunGame to fail
	select {
	case <-eo.vsyncChan:
		return nil
	case <-eo.done:
		return &VideoError{Operation: "start", Details: "ebiten window closed before first frame"}
	}
}

func (eo *EbitenOutput) closeDone() {
	eo.doneOnce.Do(func() { close(eo.done) })
}

func (eo *EbitenOutput) Stop() error {
	eo.running.Store(false)
	return nil
}

func (eo *EbitenOutput) Close() error {
	return eo.Stop()
}

func (eo *EbitenOutput) IsStarted() bool {
	return eo.running.Load()
}

func (eo *EbitenOutput) Done() <-chan struct{} {
	return eo.done
}

func (eo *EbitenOutput) UpdateFrame(frame []uint16) error {
	if len(frame) != LCD_WIDTH*LCD_HEIGHT {
		return &VideoError{Operation: "frame update", Details: fmt.Sprintf("got %d pixels", len(frame))}
	}
	eo.bufferMutex.Lock()
	RGB565ToRGBA(eo.frameBuffer, frame)
	eo.bufferMutex.Unlock()
	return nil
}

func (eo *EbitenOutput) SetDisplayConfig(config DisplayConfig) error {
	eo.bufferMutex.Lock()
	defer eo.bufferMutex.Unlock()

	// The canvas size is fixed by the controller
	config.Width = LCD_WIDTH
	config.Height = LCD_HEIGHT
	config.Scale = ClampScale(config.Scale)
	if config.Title == "" {
		config.Title = eo.config.Title
	}
	eo.config = config

	ebiten.SetFullscreen(config.Fullscreen)
	if !config.Fullscreen {
		ebiten.SetWindowSize(config.Width*config.Scale, config.Height*config.Scale)
	}
	return nil
}

func (eo *EbitenOutput) GetDisplayConfig() DisplayConfig {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	return eo.config
}

func (eo *EbitenOutput) GetFrameCount() uint64 {
	return eo.frameCount.Load()
}

func (eo *EbitenOutput) SetKeyHandler(fn func(byte)) {
	eo.bufferMutex.Lock()
	eo.keyHandler = fn
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) SetHardResetHandler(fn func()) {
	eo.bufferMutex.Lock()
	eo.hardResetHandler = fn
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) SetStatusFunc(fn func() string) {
	eo.bufferMutex.Lock()
	eo.statusFunc = fn
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) Update() error {
	if ebiten.IsWindowBeingClosed() || !eo.running.Load() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		eo.bufferMutex.Lock()
		eo.config.Fullscreen = !eo.config.Fullscreen
		ebiten.SetFullscreen(eo.config.Fullscreen)
		if !eo.config.Fullscreen {
			ebiten.SetWindowSize(eo.config.Width*eo.config.Scale, eo.config.Height*eo.config.Scale)
		}
		eo.bufferMutex.Unlock()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF10) {
		if eo.resetInProgress.CompareAndSwap(false, true) {
			eo.bufferMutex.RLock()
			handler := eo.hardResetHandler
			eo.bufferMutex.RUnlock()
			if handler != nil {
				handler()
			}
			eo.resetInProgress.Store(false)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		eo.bufferMutex.Lock()
		eo.showStatusBar = !eo.showStatusBar
		eo.bufferMutex.Unlock()
	}
	eo.handleKeyboardInput()
	return nil
}

func (eo *EbitenOutput) emitByte(b byte) {
	eo.bufferMutex.RLock()
	handler := eo.keyHandler
	eo.bufferMutex.RUnlock()
	if handler != nil {
		handler(b)
	}
}

func (eo *EbitenOutput) handleKeyboardInput() {
	eo.bufferMutex.RLock()
	hasHandler := eo.keyHandler != nil
	eo.bufferMutex.RUnlock()
	if !hasHandler {
		return
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	// Clipboard paste: Ctrl+Shift+V
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		eo.handleClipboardPaste()
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		if r > 0 && r < 0x80 {
			eo.emitByte(byte(r))
		}
	}

	// Keys that produce no input character
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		eo.emitByte('\r')
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		eo.emitByte('\t')
	}
}

// normalizePasteText maps line endings to the ENTER character and drops
// bytes the keyboard matrix cannot type.
func normalizePasteText(raw []byte) []byte {
	norm := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		switch b := raw[i]; {
		case b == '\r':
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
			norm = append(norm, '\r')
		case b == '\n':
			norm = append(norm, '\r')
		case b == '\t' || (b >= 0x20 && b < 0x7F):
			norm = append(norm, b)
		}
	}
	if len(norm) > maxPasteBytes {
		norm = norm[:maxPasteBytes]
	}
	return norm
}

func (eo *EbitenOutput) handleClipboardPaste() {
	eo.clipboardOnce.Do(func() {
		eo.clipboardOK = clipboard.Init() == nil
		if !eo.clipboardOK {
			Log("video", "clipboard unavailable")
		}
	})
	if !eo.clipboardOK {
		return
	}
	for _, b := range normalizePasteText(clipboard.Read(clipboard.FmtText)) {
		eo.emitByte(b)
	}
}

func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	if eo.window == nil {
		eo.window = ebiten.NewImage(LCD_WIDTH, LCD_HEIGHT)
	}

	eo.bufferMutex.RLock()
	eo.window.WritePixels(eo.frameBuffer)
	showStatusBar := eo.showStatusBar
	statusFunc := eo.statusFunc
	eo.bufferMutex.RUnlock()

	screen.DrawImage(eo.window, nil)
	if showStatusBar && statusFunc != nil {
		eo.drawStatusBar(screen, statusFunc())
	}

	eo.frameCount.Add(1)
	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}
}

func (eo *EbitenOutput) Layout(_, _ int) (int, int) {
	return LCD_WIDTH, LCD_HEIGHT
}

func (eo *EbitenOutput) drawStatusBar(screen *ebiten.Image, status string) {
	const barHeight = 30
	face := basicfont.Face7x13
	y := LCD_HEIGHT - barHeight
	ebitenutil.DrawRect(screen, 0, float64(y), LCD_WIDTH, barHeight, color.RGBA{0, 0, 0, 180})

	text.Draw(screen, status, face, 4, y+12, color.RGBA{0, 220, 90, 255})
	legend := "F10 Reset  F11 Full  F12 Bar"
	text.Draw(screen, legend, face, 4, y+26, color.RGBA{160, 160, 160, 255})
}
