package avatar

import (
	"bytes"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/contribwall/pkg/errors"
)

// roundMask decodes src, scales and center-crops it to a square, clips it to
// an inscribed circle, and returns the result encoded as PNG. The square edge
// is min(intrinsic width, intrinsic height, size) so small sources are never
// upscaled.
func roundMask(src []byte, size int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAvatarFetch, err, "decode avatar")
	}

	bounds := img.Bounds()
	edge := bounds.Dx()
	if bounds.Dy() < edge {
		edge = bounds.Dy()
	}
	if size < edge {
		edge = size
	}
	if edge < 1 {
		return nil, errors.New(errors.ErrCodeAvatarFetch, "avatar image is empty")
	}

	square := imaging.Fill(img, edge, edge, imaging.Center, imaging.Lanczos)

	dc := gg.NewContext(edge, edge)
	r := float64(edge) / 2
	dc.DrawCircle(r, r, r)
	dc.Clip()
	dc.DrawImage(square, 0, 0)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeAvatarFetch, err, "encode avatar")
	}
	return buf.Bytes(), nil
}
