package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// Ink is a palette index. InkNone marks an empty pixel.
type Ink uint8

const (
	InkNone Ink = iota
	InkDefault
)

// cell packs the top and bottom ink of one terminal cell.
type cell uint16

func makeCell(top, bottom Ink) cell { return cell(top)<<8 | cell(bottom) }
func (c cell) top() Ink            { return Ink(c >> 8) }
func (c cell) bottom() Ink         { return Ink(c & 0xff) }

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
// Render only writes cells that changed since the previous frame.
type Canvas struct {
	termWidth      int   // Actual terminal columns
	termHeight     int   // Actual terminal rows
	subPixelHeight int   // termHeight * 2
	pixels         []Ink // Flat slice: [y * termWidth + x]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height (in sub-pixels)
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	ink     Ink
	profile termenv.Profile
	inkHex  []string // Registered color per ink
	palette []string // SGR parameters per ink, foreground form
	bgPal   []string // SGR parameters per ink, background form

	prev      []cell // Cells written by the last Render
	dirty     []bool // Cells overwritten by text since the last Render
	prevValid bool   // False after the screen was cleared
	repaint   bool   // Colors changed; rewrite every non-empty cell

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []Point
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewCanvas creates a canvas for the given terminal dimensions.
// The canvas has 2x vertical resolution (height*2 sub-pixels).
// No scaling is applied (1:1 mapping).
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		ink:           InkDefault,
		profile:       termenv.Ascii,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 0)
	termHeight = max(termHeight, 0)
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]Ink, subPixelHeight*termWidth)
		c.prev = make([]cell, termHeight*termWidth)
		c.dirty = make([]bool, termHeight*termWidth)
		c.prevValid = false
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetProfile selects the color profile used when rendering inks.
// Colors registered before the call are converted again.
func (c *Canvas) SetProfile(p termenv.Profile) {
	c.profile = p
	for i, hex := range c.inkHex {
		c.convertInk(Ink(i), hex)
	}
	c.repaint = true
}

// SetInkColor registers hex (e.g. "#4d4db3") as the color of ink i.
func (c *Canvas) SetInkColor(i Ink, hex string) {
	for int(i) >= len(c.inkHex) {
		c.inkHex = append(c.inkHex, "")
		c.palette = append(c.palette, "")
		c.bgPal = append(c.bgPal, "")
	}
	c.inkHex[i] = hex
	c.convertInk(i, hex)
	c.repaint = true
}

func (c *Canvas) convertInk(i Ink, hex string) {
	col := c.profile.Color(hex)
	if col == nil || hex == "" {
		c.palette[i], c.bgPal[i] = "", ""
		return
	}
	c.palette[i] = col.Sequence(false)
	c.bgPal[i] = col.Sequence(true)
}

// SetInk selects the ink used by subsequent drawing calls.
func (c *Canvas) SetInk(i Ink) {
	if i == InkNone {
		i = InkDefault
	}
	c.ink = i
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.prevValid = false
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render write every cell.
func (c *Canvas) ForceRedraw() {
	c.prevValid = false
}

// MarkTextDirty records that text was written over n cells starting at the
// 1-based canvas position (col, row), so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.dirty[r*c.termWidth+x] = true
		}
	}
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = c.ink
	}
}

// Pixel reports the ink at actual terminal sub-pixel coordinates.
func (c *Canvas) Pixel(x, y int) Ink {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return InkNone
	}
	return c.pixels[y*c.termWidth+x]
}

// Set sets a pixel at logical coordinates (applies scaling).
func (c *Canvas) Set(x, y int) {
	c.SetFloat(float64(x), float64(y))
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	c.setPixel(px, py)
}

// FillRect fills the axis-aligned rectangle centered on (cx, cy) with logical size w x h.
// At least one pixel is set however small the rectangle scales.
func (c *Canvas) FillRect(cx, cy, w, h float64) {
	x0 := int(math.Round((cx - w/2) * c.scaleX))
	x1 := int(math.Round((cx + w/2) * c.scaleX))
	y0 := int(math.Round((cy - h/2) * c.scaleY))
	y1 := int(math.Round((cy + h/2) * c.scaleY))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.setPixel(x, y)
		}
	}
}

// DrawRect outlines the rectangle centered on (cx, cy) with logical size w x h.
func (c *Canvas) DrawRect(cx, cy, w, h float64) {
	tl := Point{X: cx - w/2, Y: cy - h/2}
	tr := Point{X: cx + w/2, Y: cy - h/2}
	br := Point{X: cx + w/2, Y: cy + h/2}
	bl := Point{X: cx - w/2, Y: cy + h/2}
	c.DrawLine(tl, tr)
	c.DrawLine(tr, br)
	c.DrawLine(br, bl)
	c.DrawLine(bl, tl)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using half-block characters.
// Only cells that changed since the last call (or were marked dirty) are written.
// After ForceRedraw the screen is assumed blank, so empty cells are skipped.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	full := !c.prevValid
	wrote := false

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			idx := row*c.termWidth + col
			cur := makeCell(c.pixels[topOffset+col], c.pixels[bottomOffset+col])
			changed := c.prev[idx] != cur || c.dirty[idx]

			var skip bool
			switch {
			case full:
				skip = cur == 0 && !c.dirty[idx]
			case c.repaint:
				skip = cur == 0 && !changed
			default:
				skip = !changed
			}
			c.prev[idx] = cur
			if skip {
				continue
			}

			c.moveTo(col+1+c.offsetCol, row+1+c.offsetRow)
			c.writeCell(cur)
			wrote = true
		}
	}
	if wrote {
		c.renderBuf.WriteString("\033[0m")
	}
	clear(c.dirty)
	c.prevValid = true
	c.repaint = false

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) moveTo(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeCell emits the SGR state and glyph of one cell.
func (c *Canvas) writeCell(v cell) {
	top, bottom := v.top(), v.bottom()

	var ch rune
	var fg, bg string
	switch {
	case top != InkNone && bottom != InkNone && top == bottom:
		ch, fg = BlockFull, c.fg(top)
	case top != InkNone && bottom != InkNone:
		ch, fg, bg = BlockUpperHalf, c.fg(top), c.bg(bottom)
	case top != InkNone:
		ch, fg = BlockUpperHalf, c.fg(top)
	case bottom != InkNone:
		ch, fg = BlockLowerHalf, c.fg(bottom)
	default:
		ch = BlockEmpty
	}

	c.renderBuf.WriteString("\033[0")
	if fg != "" {
		c.renderBuf.WriteByte(';')
		c.renderBuf.WriteString(fg)
	}
	if bg != "" {
		c.renderBuf.WriteByte(';')
		c.renderBuf.WriteString(bg)
	}
	c.renderBuf.WriteByte('m')
	c.renderBuf.WriteRune(ch)
}

func (c *Canvas) fg(i Ink) string {
	if int(i) < len(c.palette) {
		return c.palette[i]
	}
	return ""
}

func (c *Canvas) bg(i Ink) string {
	if int(i) < len(c.bgPal) {
		return c.bgPal[i]
	}
	return ""
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			buf.WriteString(cursorTo(left, top) + "┌" + line + "┐")
			buf.WriteString(cursorTo(left, bottom) + "└" + line + "┘")
		} else {
			buf.WriteString(cursorTo(c.offsetCol+1, top) + line)
			buf.WriteString(cursorTo(c.offsetCol+1, bottom) + line)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			buf.WriteString(cursorTo(left, row) + "│" + cursorTo(right, row) + "│")
		}
	}

	io.WriteString(w, buf.String())
}

func cursorTo(col, row int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution, in sub-pixels).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based terminal position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
// Thread-safe as long as each goroutine uses its own Canvas instance.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
