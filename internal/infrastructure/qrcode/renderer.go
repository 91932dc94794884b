package qrcode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	goqrcode "github.com/skip2/go-qrcode"
)

const dataURLPrefix = "data:image/png;base64,"

// Renderer draws scannable codes as PNG images. Margin is the quiet zone
// width in modules.
type Renderer struct {
	size   int
	margin int
	level  goqrcode.RecoveryLevel
}

func NewRenderer(size, margin int) *Renderer {
	if size <= 0 {
		size = 256
	}
	if margin < 0 {
		margin = 0
	}
	return &Renderer{size: size, margin: margin, level: goqrcode.Medium}
}

func (r *Renderer) PNG(content string) ([]byte, error) {
	code, err := goqrcode.New(content, r.level)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %q: %w", content, err)
	}
	code.DisableBorder = true

	img := r.draw(code.Bitmap())

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to write png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL renders content and returns it as an embeddable data URL along
// with the raw PNG.
func (r *Renderer) DataURL(content string) (string, []byte, error) {
	raw, err := r.PNG(content)
	if err != nil {
		return "", nil, err
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(raw), raw, nil
}

// draw scales the module bitmap to the configured width. The image is never
// smaller than one pixel per module, so very dense codes may exceed size.
func (r *Renderer) draw(bitmap [][]bool) image.Image {
	modules := len(bitmap) + 2*r.margin
	scale := r.size / modules
	if scale < 1 {
		scale = 1
	}
	width := modules * scale
	if width < r.size {
		width = r.size
	}
	offset := (width-modules*scale)/2 + r.margin*scale

	img := image.NewPaletted(image.Rect(0, 0, width, width), color.Palette{color.White, color.Black})
	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetColorIndex(offset+x*scale+dx, offset+y*scale+dy, 1)
				}
			}
		}
	}
	return img
}
