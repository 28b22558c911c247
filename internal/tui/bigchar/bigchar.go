// Package bigchar renders hanzi as large half-block art for the terminal.
package bigchar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// fontPaths lists common CJK font locations per platform.
var fontPaths = []string{
	// macOS
	"/System/Library/Fonts/STHeiti Light.ttc",
	"/System/Library/Fonts/PingFang.ttc",
	"/System/Library/Fonts/Hiragino Sans GB.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Linux
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	// Windows
	"C:\\Windows\\Fonts\\msyh.ttc",
	"C:\\Windows\\Fonts\\simsun.ttc",
}

var (
	faceOnce sync.Once
	face     font.Face
)

func loadFace() {
	for _, path := range fontPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
			if fnt, err := coll.Font(0); err == nil {
				if f, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: 64, DPI: 72}); err == nil {
					face = f
					return
				}
			}
		}

		if fnt, err := opentype.Parse(data); err == nil {
			if f, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: 64, DPI: 72}); err == nil {
				face = f
				return
			}
		}
	}
}

// Available reports whether a CJK font could be loaded.
func Available() bool {
	faceOnce.Do(loadFace)
	return face != nil
}

// Render draws the first rune of text as half-block art (▀▄█) sized
// cols x rows terminal cells. Returns "" when no font is available or the
// font lacks the glyph.
func Render(text string, cols, rows int) string {
	if text == "" || cols <= 0 || rows <= 0 || !Available() {
		return ""
	}

	r := []rune(text)[0]
	bounds, _, ok := face.GlyphBounds(r)
	if !ok {
		return ""
	}

	glyphWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	const padding = 4
	srcWidth := glyphWidth + padding*2
	srcHeight := glyphHeight + padding*2
	if srcWidth < 64 {
		srcWidth = 64
	}
	if srcHeight < 64 {
		srcHeight = 64
	}

	src := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  src,
		Src:  image.White,
		Face: face,
		Dot: fixed.P(
			(srcWidth-glyphWidth)/2,
			srcHeight-padding-bounds.Max.Y.Ceil(),
		),
	}
	d.DrawString(string(r))

	return blocks(src, cols, rows)
}

// blocks converts the glyph image to half-block art. Each terminal cell
// covers two vertical sample regions, each averaged over the source pixels
// behind it.
func blocks(img *image.Gray, cols, rows int) string {
	cellW := float64(img.Bounds().Dx()) / float64(cols)
	cellH := float64(img.Bounds().Dy()) / float64(rows*2)

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := sampleOn(img, col, row*2, cellW, cellH)
			bottom := sampleOn(img, col, row*2+1, cellW, cellH)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		if row < rows-1 {
			sb.WriteRune('\n')
		}
	}

	return sb.String()
}

// sampleOn averages the source pixels behind one half-cell region.
func sampleOn(img *image.Gray, cx, cy int, cellW, cellH float64) bool {
	const threshold = 40

	x1 := int(float64(cx) * cellW)
	y1 := int(float64(cy) * cellH)
	x2 := int(float64(cx+1) * cellW)
	y2 := int(float64(cy+1) * cellH)
	if x2 > img.Bounds().Max.X {
		x2 = img.Bounds().Max.X
	}
	if y2 > img.Bounds().Max.Y {
		y2 = img.Bounds().Max.Y
	}

	var sum, count int
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			sum += int(img.GrayAt(x, y).Y)
			count++
		}
	}

	return count > 0 && sum/count > threshold
}

var (
	cacheMu sync.Mutex
	cache   = make(map[string]string)
)

// Cached returns a memoized rendering of text at the given size.
func Cached(text string, cols, rows int) string {
	if !Available() {
		return ""
	}

	key := fmt.Sprintf("%s/%dx%d", text, cols, rows)
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if s, ok := cache[key]; ok {
		return s
	}
	s := Render(text, cols, rows)
	cache[key] = s
	return s
}
