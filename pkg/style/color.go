package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// RGB is an opaque colour with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// ParseHex reads "#rrggbb", "rrggbb" or the short "#rgb" form.
func ParseHex(value string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("style: invalid hex colour %q", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("style: invalid hex colour %q", value)
	}
	return RGB{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, nil
}

// FromInts builds an RGB from three 0-255 channel values.
func FromInts(r, g, b int) (RGB, error) {
	for _, c := range []int{r, g, b} {
		if c < 0 || c > 255 {
			return RGB{}, fmt.Errorf("style: channel %d out of range 0-255", c)
		}
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Color converts c for use with image/draw.
func (c RGB) Color() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// MarshalText encodes the colour as hex.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalJSON accepts "#rrggbb" strings and [r, g, b] arrays.
func (c *RGB) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var channels []int
		if err := json.Unmarshal(data, &channels); err != nil {
			return fmt.Errorf("style: decode colour: %w", err)
		}
		if len(channels) != 3 {
			return fmt.Errorf("style: colour needs 3 channels, got %d", len(channels))
		}
		parsed, err := FromInts(channels[0], channels[1], channels[2])
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	var hex string
	if err := json.Unmarshal(data, &hex); err != nil {
		return fmt.Errorf("style: decode colour: %w", err)
	}
	parsed, err := ParseHex(hex)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
