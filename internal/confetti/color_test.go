package confetti

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#FFC700", color.RGBA{R: 0xff, G: 0xc7, B: 0x00, A: 0xff}},
		{"#2e3191", color.RGBA{R: 0x2e, G: 0x31, B: 0x91, A: 0xff}},
		{"#fff", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"red", color.RGBA{R: 0xff, A: 0xff}},
		{" RoyalBlue ", color.RGBA{R: 0x41, G: 0x69, B: 0xe1, A: 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"#GGGGGG", "#12", "notacolor", ""} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}

func TestPalette(t *testing.T) {
	p := NewPalette()

	c, ok := p.Lookup("#FF0000")
	assert.True(t, ok)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, c)

	c, ok = p.Lookup("bogus")
	assert.False(t, ok)
	assert.Equal(t, p.Fallback, c)

	// cached entries keep their status
	_, ok = p.Lookup("bogus")
	assert.False(t, ok)
	c, ok = p.Lookup("#FFFFFF")
	assert.True(t, ok, "white equals the fallback but is still a valid color")
	assert.Equal(t, p.Fallback, c)
	_, ok = p.Lookup("#FFFFFF")
	assert.True(t, ok)
}
