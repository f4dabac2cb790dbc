package chart

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/yungbote/speechcoach-backend/internal/domain"
)

const (
	Title    = "Speech Evaluation Scores"
	AxisMax  = 10.0
	size     = 600
	radius   = 190.0
	fillHex  = "#2563EB"
	fillRGBA = 0.25
)

var ringTicks = []float64{2, 4, 6, 8, 10}

var (
	fontOnce  sync.Once
	fontErr   error
	labelFace font.Face
	tickFace  font.Face
	titleFace font.Face
)

// loadFonts parses CHART_FONT when set, else the embedded Go regular font.
func loadFonts() error {
	fontOnce.Do(func() {
		data := goregular.TTF
		if path := strings.TrimSpace(os.Getenv("CHART_FONT")); path != "" {
			b, err := os.ReadFile(path)
			if err != nil {
				fontErr = fmt.Errorf("failed to read font file: %w", err)
				return
			}
			data = b
		}
		parsed, err := truetype.Parse(data)
		if err != nil {
			fontErr = fmt.Errorf("failed to parse TTF: %w", err)
			return
		}
		face := func(pt float64) font.Face {
			return truetype.NewFace(parsed, &truetype.Options{Size: pt, DPI: 72, Hinting: font.HintingNone})
		}
		labelFace, tickFace, titleFace = face(18), face(12), face(24)
	})
	return fontErr
}

// Radar renders the five criterion scores as a closed polygon on a fixed [0,10] polar grid.
func Radar(scores domain.Scores) ([]byte, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	n := len(domain.Criteria)
	cx, cy := float64(size)/2, float64(size)/2+20

	// First axis points straight up; axes run clockwise.
	angle := func(i int) float64 { return -math.Pi/2 + 2*math.Pi*float64(i)/float64(n) }
	point := func(i int, v float64) (float64, float64) {
		r := radius * clamp(v, 0, AxisMax) / AxisMax
		return cx + r*math.Cos(angle(i)), cy + r*math.Sin(angle(i))
	}

	dc := gg.NewContext(size, size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Grid: dashed grey rings and spokes.
	dc.SetRGB(0.75, 0.75, 0.75)
	dc.SetLineWidth(1)
	dc.SetDash(4, 4)
	for _, tick := range ringTicks {
		dc.DrawCircle(cx, cy, radius*tick/AxisMax)
		dc.Stroke()
	}
	for i := 0; i < n; i++ {
		x, y := point(i, AxisMax)
		dc.DrawLine(cx, cy, x, y)
		dc.Stroke()
	}
	dc.SetDash()

	dc.SetFontFace(tickFace)
	dc.SetRGB(0.45, 0.45, 0.45)
	for _, tick := range ringTicks {
		dc.DrawStringAnchored(strconv.Itoa(int(tick)), cx+4, cy-radius*tick/AxisMax, 0, 1)
	}

	// Score polygon; the first vertex is repeated to close the loop.
	r, g, b := hexRGB(fillHex)
	for i := 0; i <= n; i++ {
		c := domain.Criteria[i%n]
		x, y := point(i%n, float64(scores[c]))
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	dc.SetRGBA(r, g, b, fillRGBA)
	dc.FillPreserve()
	dc.SetRGB(r, g, b)
	dc.SetLineWidth(2.5)
	dc.Stroke()

	for i, c := range domain.Criteria {
		x, y := point(i, float64(scores[c]))
		dc.DrawCircle(x, y, 4)
		dc.Fill()
	}

	dc.SetFontFace(labelFace)
	dc.SetRGB(0.1, 0.1, 0.1)
	for i, c := range domain.Criteria {
		lx := cx + (radius+28)*math.Cos(angle(i))
		ly := cy + (radius+28)*math.Sin(angle(i))
		ax := 0.5 - 0.5*math.Cos(angle(i))
		dc.DrawStringAnchored(c.Label(), lx, ly, ax, 0.5)
	}

	dc.SetFontFace(titleFace)
	dc.DrawStringAnchored(Title, float64(size)/2, 32, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func hexRGB(hex string) (float64, float64, float64) {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return float64(v>>16&0xff) / 255, float64(v>>8&0xff) / 255, float64(v&0xff) / 255
}
