package chart

import (
	"bytes"
	"errors"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
)

// composeGrid lays the rendered panels onto a white canvas, cols per row,
// left-to-right then top-down. Nil panels (skipped sections) leave their grid
// cell blank; a panel that fails to decode is dropped the same way. Returns
// an error only when no panel made it onto the canvas or encoding fails,
// since a fully blank chart is worthless to the report.
func composeGrid(panels [][]byte, cols int) ([]byte, error) {
	rows := (len(panels) + cols - 1) / cols
	canvas := image.NewRGBA(image.Rect(0, 0, cols*panelWidth, rows*panelHeight))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	placed := 0
	for i, buf := range panels {
		if len(buf) == 0 {
			continue
		}
		img, err := png.Decode(bytes.NewReader(buf))
		if err != nil {
			slog.Warn("dropping undecodable chart panel", "index", i, "error", err)
			continue
		}
		offset := image.Pt((i%cols)*panelWidth, (i/cols)*panelHeight)
		draw.Draw(canvas, img.Bounds().Add(offset), img, img.Bounds().Min, draw.Over)
		placed++
	}
	if placed == 0 {
		return nil, errors.New("no panels rendered")
	}

	var out bytes.Buffer
	if err := png.Encode(&out, canvas); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
