package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestCanvasFillRect(t *testing.T) {
	// 1:1 scale: 10 columns, 10 sub-pixel rows.
	c := NewCanvas(10, 5)
	c.FillRect(5, 5, 4, 2)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := x >= 3 && x < 7 && y >= 4 && y < 6
			if got := c.Pixel(x, y) != InkNone; got != want {
				t.Errorf("pixel (%d,%d) set=%v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCanvasFillRectMinimumPixel(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillRect(2, 2, 0.1, 0.1)
	if c.Pixel(2, 2) == InkNone {
		t.Error("tiny rect drew nothing")
	}
}

func TestCanvasRenderOnlyChanges(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetFloat(1, 0)

	var first bytes.Buffer
	c.Render(&first)
	if !strings.ContainsRune(first.String(), BlockUpperHalf) {
		t.Fatalf("first render missing upper half block: %q", first.String())
	}

	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Errorf("unchanged frame wrote %q", second.String())
	}

	c.Clear()
	var third bytes.Buffer
	c.Render(&third)
	if !strings.Contains(third.String(), "\033[1;2H") {
		t.Errorf("cleared cell not erased: %q", third.String())
	}
}

func TestCanvasMarkTextDirty(t *testing.T) {
	c := NewCanvas(4, 2)
	var buf bytes.Buffer
	c.Render(&buf)

	c.MarkTextDirty(2, 2, 2)
	buf.Reset()
	c.Render(&buf)

	out := buf.String()
	if !strings.Contains(out, "\033[2;2H") || !strings.Contains(out, "\033[2;3H") {
		t.Errorf("dirty cells not repainted: %q", out)
	}
}

func TestCanvasInkColors(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetProfile(termenv.TrueColor)
	c.SetInkColor(2, "#ff0000")
	c.SetInk(2)
	c.Set(0, 0)
	c.Set(0, 1)

	var buf bytes.Buffer
	c.Render(&buf)

	out := buf.String()
	if !strings.Contains(out, "38;2;255;0;0") {
		t.Errorf("missing truecolor foreground: %q", out)
	}
	if !strings.ContainsRune(out, BlockFull) {
		t.Errorf("same ink top and bottom should render a full block: %q", out)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		fraction float64
		width    int
		want     string
	}{
		{0, 4, "    "},
		{1, 4, "████"},
		{0.5, 4, "██  "},
		{2, 2, "██"},
		{0.5, 0, ""},
	}

	for _, tt := range tests {
		if got := ProgressBar(tt.fraction, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%v, %d) = %q, want %q", tt.fraction, tt.width, got, tt.want)
		}
	}
}

func TestChunkWriterWriteBlock(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)

	n := cw.WriteBlock(1, 1, "ab\ncd")
	if n != 2 {
		t.Fatalf("WriteBlock returned %d, want 2", n)
	}
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "\033[2;3Hab\033[3;3Hcd"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if cw.Len() != 0 {
		t.Errorf("Len() after Flush = %d", cw.Len())
	}
}
