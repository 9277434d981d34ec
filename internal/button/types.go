package button

import "strings"

// Category groups controls for layout and filtering. The set is closed.
type Category uint8

const (
	// CategoryGeneral is the default category.
	CategoryGeneral Category = iota
	// CategoryMenu holds controls that open or close host menus.
	CategoryMenu
	// CategoryCombat holds combat related controls.
	CategoryCombat
	// CategoryBuilding holds construction and placement controls.
	CategoryBuilding
	// CategoryCamera holds camera and view controls.
	CategoryCamera
	// CategorySocial holds chat and emote controls.
	CategorySocial
	// CategoryDebug holds developer controls.
	CategoryDebug
)

// Categories lists every category in sort order.
var Categories = []Category{
	CategoryMenu,
	CategoryCombat,
	CategoryBuilding,
	CategoryCamera,
	CategorySocial,
	CategoryGeneral,
	CategoryDebug,
}

// String returns the lowercase category name.
func (c Category) String() string {
	switch c {
	case CategoryGeneral:
		return "general"
	case CategoryMenu:
		return "menu"
	case CategoryCombat:
		return "combat"
	case CategoryBuilding:
		return "building"
	case CategoryCamera:
		return "camera"
	case CategorySocial:
		return "social"
	case CategoryDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	return c <= CategoryDebug
}

// SortOrder returns the position of the category in layout order.
// Lower values are laid out first.
func (c Category) SortOrder() int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return len(Categories)
}

// ParseCategory parses a category name. Unknown names return
// CategoryGeneral and false.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "general", "":
		return CategoryGeneral, true
	case "menu":
		return CategoryMenu, true
	case "combat":
		return CategoryCombat, true
	case "building":
		return CategoryBuilding, true
	case "camera":
		return CategoryCamera, true
	case "social":
		return CategorySocial, true
	case "debug":
		return CategoryDebug, true
	default:
		return CategoryGeneral, false
	}
}

// Mode is the interaction mode of a control.
type Mode uint8

const (
	// ModeMomentary fires OnPress once per accepted press.
	ModeMomentary Mode = iota
	// ModeToggle flips an on/off state on every accepted press.
	ModeToggle
	// ModeHold stays pressed until released, calling OnHold every frame.
	ModeHold
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeMomentary:
		return "momentary"
	case ModeToggle:
		return "toggle"
	case ModeHold:
		return "hold"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m <= ModeHold
}

// ParseMode parses a mode name. Unknown names return ModeMomentary and false.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "momentary", "press", "":
		return ModeMomentary, true
	case "toggle":
		return ModeToggle, true
	case "hold":
		return ModeHold, true
	default:
		return ModeMomentary, false
	}
}

// Color is a packed 0xRRGGBB tint. The zero value means "no tint".
type Color uint32

// RGB builds a Color from components.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB returns the red, green and blue components.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hints are rendering hints. The registry stores them but never reads them.
type Hints struct {
	// Icon is an icon reference understood by the renderer.
	Icon string

	// Tint is the control's accent color.
	Tint Color

	// Key is an optional shortcut rune shown next to the label.
	Key rune
}
