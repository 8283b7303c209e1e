// Package render draws animation frames as standalone SVG documents.
//
// No plotting dependency is involved: a frame is a fixed 960x560 dark-themed
// canvas, and both chart kinds reduce to rectangles, circles, lines, and text.
package render

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/rainfall-atlas/internal/domain"
	"github.com/couchcryptid/rainfall-atlas/internal/frames"
)

const (
	canvasW = 960
	canvasH = 560

	background = "#0a0a0a"
	textColor  = "#ffffff"
	mutedColor = "#aaaaaa"
	gridColor  = "#2a3a46"
)

func renderSVG(f frames.Frame) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`+"\n",
		canvasW, canvasH, canvasW, canvasH)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`+"\n", canvasW, canvasH, background)
	fmt.Fprintf(&b, `<text x="%d" y="40" fill="%s" font-size="22" font-weight="bold" text-anchor="middle">%s</text>`+"\n",
		canvasW/2, textColor, escape(f.Title))

	writeLegend(&b)

	switch f.Kind {
	case frames.KindBars:
		writeBars(&b, f)
	case frames.KindScatter:
		writeScatter(&b, f)
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

// writeLegend draws one swatch per color bucket under the title.
func writeLegend(b *strings.Builder) {
	x := 70
	for _, bucket := range domain.Buckets() {
		fmt.Fprintf(b, `<rect x="%d" y="56" width="14" height="14" fill="%s" stroke="#555555" stroke-width="0.5"/>`+"\n",
			x, bucket.Hex())
		fmt.Fprintf(b, `<text x="%d" y="68" fill="%s" font-size="12">%s</text>`+"\n",
			x+20, mutedColor, escape(bucket.Label()))
		x += 160
	}
}

// -- bar chart --

const (
	barLeft   = 70
	barRight  = 930
	barTop    = 100
	barBottom = 470
)

func writeBars(b *strings.Builder, f frames.Frame) {
	plotW := float64(barRight - barLeft)
	plotH := float64(barBottom - barTop)

	// Horizontal gridlines with axis labels every 200 mm.
	for mm := 0; mm <= frames.BarAxisMaxMM; mm += 200 {
		y := float64(barBottom) - float64(mm)/frames.BarAxisMaxMM*plotH
		fmt.Fprintf(b, `<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-width="0.5"/>`+"\n",
			barLeft, y, barRight, y, gridColor)
		fmt.Fprintf(b, `<text x="%d" y="%.1f" fill="%s" font-size="11" text-anchor="end">%d</text>`+"\n",
			barLeft-8, y+4, mutedColor, mm)
	}

	slot := plotW / 12
	for _, bar := range f.Bars {
		h := bar.MM / frames.BarAxisMaxMM * plotH
		if h > plotH {
			h = plotH
		}
		x := float64(barLeft) + float64(bar.Month-1)*slot + slot*0.15
		y := float64(barBottom) - h
		fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.85" stroke="%s" stroke-width="1.2"/>`+"\n",
			x, y, slot*0.7, h, bar.Bucket.Hex(), textColor)

		// Value label above the bar; zero months keep a readable offset.
		labelY := y - 8
		if labelY > float64(barBottom)-14 {
			labelY = float64(barBottom) - 14
		}
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" fill="%s" font-size="11" text-anchor="middle">%.0f</text>`+"\n",
			x+slot*0.35, labelY, textColor, bar.MM)

		fmt.Fprintf(b, `<text x="%.1f" y="%d" fill="%s" font-size="12" text-anchor="middle">%s</text>`+"\n",
			x+slot*0.35, barBottom+22, mutedColor, frames.MonthName(bar.Month))
	}

	fmt.Fprintf(b, `<text x="%d" y="%d" fill="#cccccc" font-size="13" text-anchor="middle">%s</text>`+"\n",
		canvasW/2, barBottom+52, escape(statsCaption(f.Stats)))
}

func statsCaption(s frames.YearStats) string {
	return fmt.Sprintf("Annual: %.0f mm | Avg: %.0f mm | Peak: %s (%.0f mm) | Low: %s (%.0f mm)",
		s.TotalMM, s.MeanMM,
		frames.MonthName(s.WettestMonth), s.WettestMM,
		frames.MonthName(s.DriestMonth), s.DriestMM)
}

// -- scatter map --

const (
	mapLeft = 60
	mapTop  = 90
	mapW    = 840
	mapH    = 420
)

func writeScatter(b *strings.Builder, f frames.Frame) {
	fmt.Fprintf(b, `<rect x="%d" y="%d" width="%d" height="%d" fill="#0e1a24" stroke="#44555f" stroke-width="1"/>`+"\n",
		mapLeft, mapTop, mapW, mapH)

	// Graticule every 30 degrees on an equirectangular projection.
	for lon := -180; lon <= 180; lon += 30 {
		x := projectLon(float64(lon))
		fmt.Fprintf(b, `<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="%s" stroke-width="0.5"/>`+"\n",
			x, mapTop, x, mapTop+mapH, gridColor)
	}
	for lat := -90; lat <= 90; lat += 30 {
		y := projectLat(float64(lat))
		fmt.Fprintf(b, `<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-width="0.5"/>`+"\n",
			mapLeft, y, mapLeft+mapW, y, gridColor)
	}

	for _, p := range f.Points {
		fmt.Fprintf(b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="0.75" stroke="%s" stroke-width="0.5"/>`+"\n",
			projectLon(p.Lon), projectLat(p.Lat), p.Radius, p.Bucket.Hex(), textColor)
	}

	fmt.Fprintf(b, `<text x="%d" y="%d" fill="#cccccc" font-size="13" text-anchor="middle">%d locations reporting</text>`+"\n",
		canvasW/2, mapTop+mapH+34, len(f.Points))
}

func projectLon(lon float64) float64 {
	return mapLeft + (lon+180)/360*mapW
}

func projectLat(lat float64) float64 {
	return mapTop + (90-lat)/180*mapH
}

// escape covers the characters XML treats specially in text nodes.
func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
