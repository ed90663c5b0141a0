package hal

import "testing"

// uc8151Refresh is what uc8151 DisplayRect programs and streams: an
// inclusive partial window plus the half-open columns and rows whose buffer
// bytes it sends.
type uc8151Refresh struct {
	winCol0, winCol1, winRow0, winRow1 int
	col0, col1, row0, row1             int
}

// replayDisplayRect repeats the v0.33.0 DisplayRect arithmetic for a
// 128x296 controller rotated 270 degrees.
func replayDisplayRect(x, y, width, height int16) (uc8151Refresh, bool) {
	const w, h = panelCols, panelRows
	x, y = y, h-x-1
	if x < 0 || y < 0 || x >= w || y >= h || width < 0 || height < 0 {
		return uc8151Refresh{}, false
	}
	x &= 0xF8
	width &= 0xF8
	width = x + width
	if width >= w {
		width = w
	}
	height = y + height
	if height > h {
		height = h
	}
	return uc8151Refresh{
		winCol0: int(uint8(x)),
		winCol1: int(uint8(x+width-1) | 0x07),
		winRow0: int(y),
		winRow1: int(y + height - 1),
		col0:    int(x/8) * 8,
		col1:    int(width/8) * 8,
		row0:    int(y),
		row1:    int(height),
	}, true
}

func TestLandscapePixelsCoverPanelOnce(t *testing.T) {
	seen := make([]bool, panelCols*panelRows)
	for x := 0; x < panelRows; x++ {
		for y := 0; y < panelCols; y++ {
			col, row := landscapeToPanel(x, y)
			if col < 0 || col >= panelCols || row < 0 || row >= panelRows {
				t.Fatalf("pixel (%d,%d) maps off panel to (%d,%d)", x, y, col, row)
			}
			i := row*panelCols + col
			if seen[i] {
				t.Fatalf("pixel (%d,%d) maps onto an already used cell (%d,%d)", x, y, col, row)
			}
			seen[i] = true
		}
	}
}

func TestLandscapeMatchesDriverRotation(t *testing.T) {
	// uc8151 maps (x, y) to (y, height-x-1) at 270 degrees.
	for _, p := range [][2]int{{0, 0}, {295, 127}, {0, 127}, {295, 0}, {136, 64}} {
		col, row := landscapeToPanel(p[0], p[1])
		if col != p[1] || row != panelRows-p[0]-1 {
			t.Fatalf("expected (%d,%d) at (%d,%d), got (%d,%d)", p[0], p[1], p[1], panelRows-p[0]-1, col, row)
		}
	}
}

func TestRegionWindowsRefreshTheirPixels(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h int
		rows       int
	}{
		{"life", 0, 0, 136, 128, 296},
		{"exp", 136, 0, 144, 64, 160},
		{"poison", 136, 64, 144, 64, 160},
		{"battery", 280, 0, 16, 128, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win, ok := panelWindowFor(tt.x, tt.y, tt.w, tt.h)
			if !ok {
				t.Fatalf("expected a window")
			}
			if win.Rows != tt.rows {
				t.Fatalf("expected %d rows, got %d", tt.rows, win.Rows)
			}
			got, ok := replayDisplayRect(displayRectArgs(win))
			if !ok {
				t.Fatalf("driver rejects window %+v", win)
			}
			if got.winCol0 != got.col0 || got.winCol1 != got.col1-1 || got.winRow0 != got.row0 || got.winRow1 != got.row1-1 {
				t.Fatalf("programmed window %+v does not match streamed bytes", got)
			}
			if got.col0 != 0 || got.col1 != panelCols || got.row0 != 0 || got.row1 != tt.rows {
				t.Fatalf("unexpected refresh %+v", got)
			}
			for x := tt.x; x < tt.x+tt.w; x++ {
				for y := tt.y; y < tt.y+tt.h; y++ {
					col, row := landscapeToPanel(x, y)
					if col < got.col0 || col >= got.col1 || row < got.row0 || row >= got.row1 {
						t.Fatalf("pixel (%d,%d) at (%d,%d) is outside the refresh %+v", x, y, col, row, got)
					}
				}
			}
		})
	}
}

func TestEmptyRegionHasNoWindow(t *testing.T) {
	if _, ok := panelWindowFor(10, 10, 0, 5); ok {
		t.Fatalf("expected no window for an empty rectangle")
	}
}
