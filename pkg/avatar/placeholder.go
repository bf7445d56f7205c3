package avatar

import (
	"bytes"

	"github.com/fogleman/gg"
)

// Neutral grays for generated tiles.
const (
	placeholderFill   = "#d0d7de"
	placeholderAccent = "#8c959f"
)

// placeholderPNG renders a generated stand-in tile: a gray disc (or square)
// with a simple head-and-shoulders silhouette. Used when an avatar cannot be
// fetched and the failure policy allows degrading.
func placeholderPNG(size int, round bool) []byte {
	if size < 1 {
		size = 1
	}
	dc := gg.NewContext(size, size)
	s := float64(size)

	dc.SetHexColor(placeholderFill)
	if round {
		dc.DrawCircle(s/2, s/2, s/2)
	} else {
		dc.DrawRectangle(0, 0, s, s)
	}
	dc.Fill()

	if round {
		// Keep the silhouette inside the disc.
		dc.DrawCircle(s/2, s/2, s/2)
		dc.Clip()
	}
	dc.SetHexColor(placeholderAccent)
	dc.DrawCircle(s/2, s*0.38, s*0.18)
	dc.Fill()
	dc.DrawEllipse(s/2, s*0.95, s*0.32, s*0.30)
	dc.Fill()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		// A fixed-size in-memory render cannot fail to encode; keep the
		// signature simple and return an empty image if it somehow does.
		return nil
	}
	return buf.Bytes()
}
