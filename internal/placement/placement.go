// Package placement computes where the clock panel sits on screen.
package placement

import (
	"fmt"
	"strings"
)

// Anchor is the screen corner or edge the panel is pinned to.
type Anchor string

const (
	AnchorTopLeft      Anchor = "top-left"
	AnchorTopRight     Anchor = "top-right"
	AnchorTopCenter    Anchor = "top-center"
	AnchorBottomLeft   Anchor = "bottom-left"
	AnchorBottomRight  Anchor = "bottom-right"
	AnchorBottomCenter Anchor = "bottom-center"
)

// ValidAnchors returns all valid anchors.
func ValidAnchors() []Anchor {
	return []Anchor{
		AnchorTopLeft,
		AnchorTopRight,
		AnchorTopCenter,
		AnchorBottomLeft,
		AnchorBottomRight,
		AnchorBottomCenter,
	}
}

// ParseAnchor parses an anchor name, case-insensitively.
func ParseAnchor(s string) (Anchor, error) {
	a := Anchor(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidAnchors() {
		if a == valid {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid anchor %q, must be one of: %v", s, ValidAnchors())
}

// IsBottom reports whether the anchor is on the bottom edge.
func (a Anchor) IsBottom() bool {
	switch a {
	case AnchorBottomLeft, AnchorBottomRight, AnchorBottomCenter:
		return true
	default:
		return false
	}
}

// IsRight reports whether the anchor is on the right edge.
func (a Anchor) IsRight() bool {
	return a == AnchorTopRight || a == AnchorBottomRight
}

// IsCenter reports whether the anchor is horizontally centered.
func (a Anchor) IsCenter() bool {
	return a == AnchorTopCenter || a == AnchorBottomCenter
}

// Size is a width and height in logical units.
type Size struct {
	Width  int
	Height int
}

// ParseSize parses "WIDTHxHEIGHT", e.g. "1920x1080".
func ParseSize(s string) (Size, error) {
	var size Size
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &size.Width, &size.Height); err != nil {
		return Size{}, fmt.Errorf("invalid size %q, expected WIDTHxHEIGHT: %w", s, err)
	}
	return size, nil
}

// String returns "WIDTHxHEIGHT".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Point is a top-left window coordinate.
type Point struct {
	X int
	Y int
}

// Place returns the top-left coordinate of a window anchored to the
// bottom-right of the screen, raised by bottomOffset. Negative results are
// returned as-is when the window does not fit.
func Place(screenWidth, screenHeight, windowWidth, windowHeight, bottomOffset int) (int, int) {
	x := screenWidth - windowWidth
	y := screenHeight - windowHeight - bottomOffset
	return x, y
}

// PlaceAt generalizes Place to any anchor. offsetX moves the window away from
// the left or right edge and offsetY away from the top or bottom edge; both
// are ignored on the centered axis. PlaceAt(AnchorBottomRight, s, w, 0, off)
// equals Place(s.Width, s.Height, w.Width, w.Height, off).
func PlaceAt(anchor Anchor, screen, window Size, offsetX, offsetY int) Point {
	var p Point

	switch {
	case anchor.IsCenter():
		p.X = (screen.Width - window.Width) / 2
	case anchor.IsRight():
		p.X = screen.Width - window.Width - offsetX
	default:
		p.X = offsetX
	}

	if anchor.IsBottom() {
		p.Y = screen.Height - window.Height - offsetY
	} else {
		p.Y = offsetY
	}

	return p
}

// Margins are distances from each anchored screen edge, as used by Wayland
// layer-shell surfaces. Only edges with their flag set are anchored.
type Margins struct {
	Top    int
	Bottom int
	Left   int
	Right  int

	AnchorTop    bool
	AnchorBottom bool
	AnchorLeft   bool
	AnchorRight  bool
}

// EdgeMargins returns the layer-shell anchoring that yields the same
// position as PlaceAt on any screen size.
func EdgeMargins(anchor Anchor, offsetX, offsetY int) Margins {
	var m Margins

	if anchor.IsBottom() {
		m.AnchorBottom = true
		m.Bottom = offsetY
	} else {
		m.AnchorTop = true
		m.Top = offsetY
	}

	switch {
	case anchor.IsCenter():
	case anchor.IsRight():
		m.AnchorRight = true
		m.Right = offsetX
	default:
		m.AnchorLeft = true
		m.Left = offsetX
	}

	return m
}
