//go:build !sdl || headless

package main

// hostMain runs fn directly; only the SDL build needs the main thread.
func hostMain(fn func()) {
	fn()
}

func NewSDLOutput() (VideoOutput, error) {
	return nil, &VideoError{
		Operation: "backend creation",
		Details:   "SDL backend not compiled in, rebuild with -tags sdl",
	}
}
