// main_test.go - Entry point banner tests

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
	"io"
	"os"
	"strings"
	"testing"
)

func TestBoilerPlate_CreditsProject(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %v", err)
	}
	stdout := os.Stdout
	os.Stdout = w
	boilerPlate()
	os.Stdout = stdout
	w.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	for _, want := range []string{"newspeccy", "(c) 2026 The newspeccy Authors", "https://github.com/ashwinm76/newspeccy", "GPLv3"} {
		if !strings.Contains(string(out), want) {
			t.Fatalf("Expected banner to contain %q, got %q", want, out)
		}
	}
}
