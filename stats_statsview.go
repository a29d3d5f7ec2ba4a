//go:build statsview

package main

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const (
	statsAddress = "localhost:12600"
	statsURL     = "/debug/statsview"
)

func init() {
	compiledFeatures = append(compiledFeatures, "stats:statsview")
}

// launchStats starts the runtime stats page in a new goroutine.
func launchStats() error {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(statsAddress))
		mgr := statsview.New()
		mgr.Start()
	}()
	Logf("stats", "stats server available at http://%s%s", statsAddress, statsURL)
	return nil
}
