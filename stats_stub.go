//go:build !statsview

package main

import "errors"

func launchStats() error {
	return errors.New("stats page not compiled in, rebuild with -tags statsview")
}
