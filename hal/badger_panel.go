package hal

// The Badger 2040 uc8151 controller addresses 128 columns by 296 rows. The
// badge drives it at 270 degrees, so the landscape frame is 296x128 and
// landscape pixel (x, y) lands on controller column y, row 295-x.
const (
	panelCols = 128
	panelRows = 296
)

// panelWindow is a partial-refresh window in controller coordinates.
type panelWindow struct {
	Col, Row   int
	Cols, Rows int
}

func landscapeToPanel(x, y int) (col, row int) {
	return y, panelRows - 1 - x
}

// panelWindowFor returns the controller window that must be refreshed to
// show the landscape rectangle (x, y, w, h). Empty rectangles need no
// window.
//
// uc8151 DisplayRect reuses its width and height as end coordinates before
// programming the partial window, so the window only matches the bytes it
// streams when it starts at the controller origin. The window is therefore
// the full-width band from row 0 through the rectangle's last row.
func panelWindowFor(x, y, w, h int) (panelWindow, bool) {
	if w <= 0 || h <= 0 {
		return panelWindow{}, false
	}
	if x < 0 {
		x = 0
	}
	if x > panelRows-1 {
		x = panelRows - 1
	}
	_, last := landscapeToPanel(x, y)
	return panelWindow{Cols: panelCols, Rows: last + 1}, true
}

// displayRectArgs returns the DisplayRect arguments that select win on a
// panel rotated 270 degrees. The driver maps the origin through its
// rotation and takes width and height unswapped.
func displayRectArgs(win panelWindow) (x, y, w, h int16) {
	return int16(panelRows - 1 - win.Row), int16(win.Col), int16(win.Cols), int16(win.Rows)
}
