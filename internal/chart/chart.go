// Package chart renders candlestick PNGs with the levels of an alert drawn
// as horizontal lines.
package chart

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"SignalSentinel/internal/calculator"
	"SignalSentinel/internal/model"
)

var (
	colBackground = color.RGBA{255, 255, 255, 255}
	colGrid       = color.RGBA{235, 235, 235, 255}
	colUp         = color.RGBA{38, 166, 91, 255}
	colDown       = color.RGBA{214, 69, 65, 255}
	colVolume     = color.RGBA{160, 170, 190, 255}
	colEntry      = color.RGBA{41, 98, 255, 255}
	colStop       = color.RGBA{214, 69, 65, 255}
	colTarget     = color.RGBA{38, 166, 91, 255}
)

// Request describes one chart.
type Request struct {
	Symbol    string
	Timeframe model.Timeframe
	Bars      []model.OHLCV
	Entry     float64
	Stop      float64
	Targets   []float64
	SaveDir   string
	Candles   int
}

// Renderer draws charts as PNG files.
type Renderer struct {
	Width  int
	Height int
	Now    func() time.Time
}

// NewRenderer creates a Renderer with the default canvas size.
func NewRenderer() *Renderer {
	return &Renderer{Width: 1200, Height: 700, Now: time.Now}
}

// FileName returns the chart file name for symbol and tf at t.
func FileName(symbol string, tf model.Timeframe, t time.Time) string {
	clean := strings.NewReplacer("=", "", "^", "", "/", "").Replace(symbol)
	return fmt.Sprintf("%s_%s_%s.png", clean, tf, t.UTC().Format("20060102_150405"))
}

// Render draws the last req.Candles bars with volume and the entry, stop and
// target lines, and writes the PNG under req.SaveDir. It returns the file path.
func (r *Renderer) Render(req Request) (string, error) {
	bars := req.Bars
	if req.Candles > 0 && len(bars) > req.Candles {
		bars = bars[len(bars)-req.Candles:]
	}
	if len(bars) == 0 {
		return "", errors.New("chart: no bars to draw")
	}

	high, low, err := calculator.PriceRange(bars)
	if err != nil {
		return "", fmt.Errorf("chart: %w", err)
	}
	levels := append([]float64{req.Entry, req.Stop}, req.Targets...)
	for _, l := range levels {
		high = math.Max(high, l)
		low = math.Min(low, l)
	}
	if high <= low {
		high, low = high+1, low-1
	}
	pad := (high - low) * 0.05
	high, low = high+pad, low-pad

	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{colBackground}, image.Point{}, draw.Src)

	const margin = 20
	priceBottom := int(float64(r.Height) * 0.75)
	volTop := priceBottom + 10
	volBottom := r.Height - margin
	plotLeft, plotRight := margin, r.Width-margin

	yPrice := func(p float64) int {
		return margin + int((high-p)/(high-low)*float64(priceBottom-margin))
	}
	for i := 1; i < 5; i++ {
		hline(img, plotLeft, plotRight, margin+i*(priceBottom-margin)/5, colGrid, false)
	}

	slot := float64(plotRight-plotLeft) / float64(len(bars))
	body := max(1, int(slot*0.6))
	maxVol := calculator.MaxVolume(bars)

	for i, b := range bars {
		x := plotLeft + int((float64(i)+0.5)*slot)
		col := colUp
		if b.Close < b.Open {
			col = colDown
		}
		vline(img, x, yPrice(b.High), yPrice(b.Low), col)
		top, bottom := yPrice(math.Max(b.Open, b.Close)), yPrice(math.Min(b.Open, b.Close))
		fill(img, x-body/2, top, x-body/2+body, max(bottom, top+1), col)

		if maxVol > 0 {
			h := int(b.Volume / maxVol * float64(volBottom-volTop))
			fill(img, x-body/2, volBottom-h, x-body/2+body, volBottom, colVolume)
		}
	}

	hline(img, plotLeft, plotRight, yPrice(req.Entry), colEntry, false)
	hline(img, plotLeft, plotRight, yPrice(req.Stop), colStop, false)
	for _, t := range req.Targets {
		hline(img, plotLeft, plotRight, yPrice(t), colTarget, true)
	}

	if err := os.MkdirAll(req.SaveDir, 0o755); err != nil {
		return "", fmt.Errorf("chart: create dir: %w", err)
	}
	path := filepath.Join(req.SaveDir, FileName(req.Symbol, req.Timeframe, r.Now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("chart: create file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("chart: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("chart: close: %w", err)
	}
	return path, nil
}

func fill(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	draw.Draw(img, image.Rect(x0, y0, x1, y1), &image.Uniform{c}, image.Point{}, draw.Src)
}

func vline(img *image.RGBA, x, y0, y1 int, c color.RGBA) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x, y, c)
	}
}

func hline(img *image.RGBA, x0, x1, y int, c color.RGBA, dashed bool) {
	for x := x0; x <= x1; x++ {
		if dashed && (x/6)%2 == 1 {
			continue
		}
		img.SetRGBA(x, y, c)
	}
}
