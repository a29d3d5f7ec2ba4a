//go:build sdl && !headless

// video_backend_sdl.go - SDL2 window for the LCD canvas

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

/*
The SDL backend mirrors how the original LCD emulator drew its surface: a
320x240 RGB565 texture updated from the controller frame and stretched to
the window. SDL must be driven from the main OS thread, so main() runs the
program inside mainthread.Run and every SDL call goes through
mainthread.Call.
*/

package main

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/faiface/mainthread"
	"github.com/veandco/go-sdl2/sdl"
)

const sdlEventPollInterval = 10 * time.Millisecond

func init() {
	compiledFeatures = append(compiledFeatures, "video:sdl")
}

// hostMain hands the process main thread to mainthread and runs fn on a
// separate goroutine.
func hostMain(fn func()) {
	mainthread.Run(fn)
}

type SDLOutput struct {
	mu       sync.Mutex
	config   DisplayConfig
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	frame    []uint16

	started    atomic.Bool
	frameCount atomic.Uint64
	stop       chan struct{}
	done       chan struct{}
	doneOnce   sync.Once

	keyHandler func(byte)
}

func NewSDLOutput() (VideoOutput, error) {
	return &SDLOutput{
		config: DefaultDisplayConfig(),
		frame:  make([]uint16, LCD_WIDTH*LCD_HEIGHT),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

func (s *SDLOutput) Start() error {
	if s.started.Load() {
		return nil
	}
	cfg := s.GetDisplayConfig()

	var err error
	mainthread.Call(func() {
		err = s.create(cfg)
	})
	if err != nil {
		return err
	}
	s.started.Store(true)
	go s.eventLoop()
	return nil
}

func (s *SDLOutput) create(cfg DisplayConfig) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return &VideoError{Operation: "start", Details: "SDL_Init", Err: err}
	}
	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width*cfg.Scale), int32(cfg.Height*cfg.Scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		return &VideoError{Operation: "start", Details: "window creation", Err: err}
	}
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return &VideoError{Operation: "start", Details: "renderer creation", Err: err}
	}
	texture, err := renderer.CreateTexture(uint32(sdl.PIXELFORMAT_RGB565),
		sdl.TEXTUREACCESS_STREAMING, LCD_WIDTH, LCD_HEIGHT)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		return &VideoError{Operation: "start", Details: "texture creation", Err: err}
	}
	sdl.StartTextInput()

	s.mu.Lock()
	s.window, s.renderer, s.texture = window, renderer, texture
	s.mu.Unlock()
	return nil
}

func (s *SDLOutput) eventLoop() {
	t := time.NewTicker(sdlEventPollInterval)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
		}
		quit := false
		mainthread.Call(func() {
			quit = s.pollEvents()
		})
		if quit {
			s.doneOnce.Do(func() { close(s.done) })
			return
		}
	}
}

// pollEvents drains the SDL queue. Runs on the main thread.
func (s *SDLOutput) pollEvents() (quit bool) {
	s.mu.Lock()
	handler := s.keyHandler
	s.mu.Unlock()

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.TextInputEvent:
			if handler == nil {
				continue
			}
			for _, b := range []byte(e.GetText()) {
				if b < 0x80 {
					handler(b)
				}
			}
		case *sdl.KeyboardEvent:
			if handler == nil || e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			switch e.Keysym.Sym {
			case sdl.K_RETURN, sdl.K_KP_ENTER:
				handler('\r')
			case sdl.K_TAB:
				handler('\t')
			}
		}
	}
	return quit
}

func (s *SDLOutput) Stop() error {
	if !s.started.CompareAndSwap(true, false) {
		return nil
	}
	close(s.stop)
	return nil
}

func (s *SDLOutput) Close() error {
	_ = s.Stop()
	mainthread.Call(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.texture != nil {
			s.texture.Destroy()
			s.texture = nil
		}
		if s.renderer != nil {
			s.renderer.Destroy()
			s.renderer = nil
		}
		if s.window != nil {
			s.window.Destroy()
			s.window = nil
		}
		sdl.Quit()
	})
	s.doneOnce.Do(func() { close(s.done) })
	return nil
}

func (s *SDLOutput) IsStarted() bool {
	return s.started.Load()
}

func (s *SDLOutput) Done() <-chan struct{} {
	return s.done
}

func (s *SDLOutput) SetDisplayConfig(config DisplayConfig) error {
	config.Width = LCD_WIDTH
	config.Height = LCD_HEIGHT
	config.Scale = ClampScale(config.Scale)
	s.mu.Lock()
	s.config = config
	s.mu.Unlock()
	return nil
}

func (s *SDLOutput) GetDisplayConfig() DisplayConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

func (s *SDLOutput) SetKeyHandler(fn func(byte)) {
	s.mu.Lock()
	s.keyHandler = fn
	s.mu.Unlock()
}

// UpdateFrame uploads the frame to the texture and presents it. The
// texture is native-endian RGB565, so the words are uploaded unchanged.
func (s *SDLOutput) UpdateFrame(frame []uint16) error {
	if len(frame) != LCD_WIDTH*LCD_HEIGHT {
		return &VideoError{Operation: "frame update", Details: fmt.Sprintf("got %d pixels", len(frame))}
	}
	if !s.started.Load() {
		return nil
	}
	s.mu.Lock()
	copy(s.frame, frame)
	s.mu.Unlock()

	var err error
	mainthread.Call(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.texture == nil {
			return
		}
		pixels := unsafe.Slice((*byte)(unsafe.Pointer(&s.frame[0])), len(s.frame)*2)
		if err = s.texture.Update(nil, pixels, LCD_WIDTH*2); err != nil {
			return
		}
		if err = s.renderer.Copy(s.texture, nil, nil); err != nil {
			return
		}
		s.renderer.Present()
	})
	if err != nil {
		return &VideoError{Operation: "frame update", Details: "texture upload", Err: err}
	}
	s.frameCount.Add(1)
	return nil
}

func (s *SDLOutput) GetFrameCount() uint64 {
	return s.frameCount.Load()
}
