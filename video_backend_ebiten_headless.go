//go:build headless

package main

// NewEbitenOutput is unavailable in headless builds.
func NewEbitenOutput() (VideoOutput, error) {
	return nil, &VideoError{
		Operation: "backend creation",
		Details:   "ebiten backend not compiled into headless build",
	}
}

func init() {
	compiledFeatures = append(compiledFeatures, "video:headless-only")
}
