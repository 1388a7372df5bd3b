package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a terminal color value understood by the platform renderer.
// It is either an ANSI 256-color code ("1", "208") or a hex triplet ("#ff3232").
// The empty string means the terminal default.
type Color string

// Predefined palette colors for HUD and menu elements.
const (
	ColorDefault       Color = ""
	ColorRed           Color = "1"
	ColorGreen         Color = "2"
	ColorYellow        Color = "3"
	ColorBlue          Color = "4"
	ColorMagenta       Color = "5"
	ColorCyan          Color = "6"
	ColorWhite         Color = "7"
	ColorBrightRed     Color = "9"
	ColorBrightGreen   Color = "10"
	ColorBrightYellow  Color = "11"
	ColorBrightBlue    Color = "12"
	ColorBrightMagenta Color = "13"
	ColorBrightCyan    Color = "14"
	ColorBrightWhite   Color = "15"
	ColorOrange        Color = "208"
	ColorGray          Color = "245"
)

// RGB is a 24-bit color as stored in level configuration.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as a "#rrggbb" terminal color.
func (c RGB) Hex() Color {
	return Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// Contrast returns the color rotated half-way around each channel.
// Used for parallax shapes so they stay visible on the level background.
func (c RGB) Contrast() RGB {
	return RGB{R: c.R + 128, G: c.G + 128, B: c.B + 128}
}

// ParseRGB parses "#rrggbb" or "rrggbb".
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("core: invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("core: invalid color %q: %w", s, err)
	}
	//#nosec G115 -- masked to 8 bits
	return RGB{R: uint8(v >> 16 & 0xff), G: uint8(v >> 8 & 0xff), B: uint8(v & 0xff)}, nil
}

// Common RGB colors shared by levels and portals.
var (
	RGBWhite      = RGB{255, 255, 255}
	RGBBlue       = RGB{0, 120, 255}
	RGBPurple     = RGB{147, 0, 255}
	RGBCyan       = RGB{0, 255, 255}
	RGBYellow     = RGB{255, 255, 0}
	RGBGreen      = RGB{0, 255, 0}
	RGBRed        = RGB{255, 0, 0}
	RGBNeonPink   = RGB{255, 20, 147}
	RGBNeonGreen  = RGB{57, 255, 20}
	RGBNeonBlue   = RGB{0, 191, 255}
	RGBNeonOrange = RGB{255, 103, 0}
)
