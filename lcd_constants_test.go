// lcd_constants_test.go - Colour table and attribute decoding tests

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

import "testing"

func TestParseLCDAttribute_AllCombinations(t *testing.T) {
	for bright := 0; bright < 2; bright++ {
		for paper := 0; paper < 8; paper++ {
			for ink := 0; ink < 8; ink++ {
				attr := byte(bright<<6 | paper<<3 | ink)
				gotInk, gotPaper := ParseLCDAttribute(attr)

				wantInk, wantPaper := ink, paper
				if bright == 1 {
					wantInk, wantPaper = 8+(ink&7), 8+(paper&7)
				}
				if gotInk != wantInk || gotPaper != wantPaper {
					t.Fatalf("Attribute 0x%02X: expected ink %d paper %d, got ink %d paper %d",
						attr, wantInk, wantPaper, gotInk, gotPaper)
				}
				if gotInk < 0 || gotInk > 15 || gotPaper < 0 || gotPaper > 15 {
					t.Fatalf("Attribute 0x%02X: index out of range", attr)
				}
			}
		}
	}
}

func TestParseLCDAttribute_FlashBitIgnored(t *testing.T) {
	ink, paper := ParseLCDAttribute(0x80 | 0x3A)
	wantInk, wantPaper := ParseLCDAttribute(0x3A)
	if ink != wantInk || paper != wantPaper {
		t.Fatalf("Expected bit 7 to be ignored, got ink %d paper %d", ink, paper)
	}
}

func TestLCDColorTable_Entries(t *testing.T) {
	tests := []struct {
		index int
		want  uint16
	}{
		{0, 0x0000},
		{1, 0x0017},
		{2, 0xB800},
		{7, 0xBDF7},
		{8, 0x0000},
		{9, 0x001F},
		{10, 0xF800},
		{12, 0x07E0},
		{15, 0xFFFF},
	}
	for _, tt := range tests {
		if got := LCDColour(tt.index); got != tt.want {
			t.Fatalf("Colour %d: expected 0x%04X, got 0x%04X", tt.index, tt.want, got)
		}
	}
}

func TestLCDColour_MasksIndex(t *testing.T) {
	if LCDColour(0x12) != LCDColour(2) {
		t.Fatalf("Expected index to be masked to 4 bits")
	}
}

func TestLCDColorTable_BrightBrighterThanNormal(t *testing.T) {
	for i := 1; i < 8; i++ {
		normal, bright := LCDColorTable[i], LCDColorTable[i+8]
		if normal&bright != normal {
			t.Fatalf("Colour %d: bright 0x%04X does not cover normal 0x%04X", i, bright, normal)
		}
		if normal == bright {
			t.Fatalf("Colour %d: bright equals normal", i)
		}
	}
}
