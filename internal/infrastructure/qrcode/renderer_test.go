package qrcode

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNGHasConfiguredSize(t *testing.T) {
	r := NewRenderer(256, 2)

	raw, err := r.PNG("wishlist://view/0b8e5c1c-1f0e-4a3c-9b43-0a7c9d2b1f11")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

func TestQuietZoneIsBlank(t *testing.T) {
	r := NewRenderer(256, 2)
	raw, err := r.PNG("wishlist://friend/u1")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)

	for x := 0; x < img.Bounds().Dx(); x++ {
		red, green, blue, _ := img.At(x, 0).RGBA()
		assert.Equal(t, uint32(0xffff), red&green&blue, "pixel %d of the top row", x)
	}
}

func TestDataURL(t *testing.T) {
	r := NewRenderer(128, 2)

	url, raw, err := r.DataURL("wishlist://view/abc")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, dataURLPrefix))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, dataURLPrefix))
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)

	again, _, err := r.DataURL("wishlist://view/abc")
	require.NoError(t, err)
	assert.Equal(t, url, again)
}

func TestRendererDefaults(t *testing.T) {
	r := NewRenderer(0, -1)
	assert.Equal(t, 256, r.size)
	assert.Equal(t, 0, r.margin)
}
