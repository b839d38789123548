// Package keyboard describes physical keyboard layouts: which glyphs each
// key produces and which finger presses it.
package keyboard

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultLayout is the layout used when nothing else is available.
const DefaultLayout = "us"

// ErrUnsupportedLayout is returned by Load for codes without a layout file.
var ErrUnsupportedLayout = errors.New("unsupported keyboard layout")

//go:embed layouts/*.json
var layoutFiles embed.FS

var codes = []string{"es", "us"}

// Finger names a finger as stored in layout files.
type Finger string

const (
	LeftPinky   Finger = "left_pinky"
	LeftRing    Finger = "left_ring"
	LeftMiddle  Finger = "left_middle"
	LeftIndex   Finger = "left_index"
	RightIndex  Finger = "right_index"
	RightMiddle Finger = "right_middle"
	RightRing   Finger = "right_ring"
	RightPinky  Finger = "right_pinky"
	BothThumbs  Finger = "both_thumbs"
)

// Label returns a human readable name, e.g. "left index".
func (f Finger) Label() string {
	if f == "" {
		return ""
	}
	return strings.ReplaceAll(string(f), "_", " ")
}

// Key is one physical key. Shift and AltGr are empty when the key has no
// glyph on that level.
type Key struct {
	Base   string `json:"base"`
	Shift  string `json:"shift,omitempty"`
	AltGr  string `json:"altgr,omitempty"`
	Finger Finger `json:"finger"`
}

// Layout is a keyboard as rows of keys plus a separate space bar.
type Layout struct {
	Name  string  `json:"name"`
	Keys  [][]Key `json:"keys"`
	Space Key     `json:"space"`
}

// Codes returns the codes that have a built-in layout.
func Codes() []string {
	return slices.Clone(codes)
}

// Load returns the built-in layout for a two-letter code.
func Load(code string) (*Layout, error) {
	if !slices.Contains(codes, code) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLayout, code)
	}
	raw, err := layoutFiles.ReadFile("layouts/" + code + ".json")
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", code, err)
	}
	var l Layout
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("decode layout %s: %w", code, err)
	}
	return &l, nil
}

// Default returns the built-in default layout, or a three-key stand-in if
// that cannot be decoded.
func Default() *Layout {
	if l, err := Load(DefaultLayout); err == nil {
		return l
	}
	return &Layout{
		Name: "Fallback",
		Keys: [][]Key{{
			{Base: "q", Shift: "Q", Finger: LeftPinky},
			{Base: "w", Shift: "W", Finger: LeftRing},
			{Base: "e", Shift: "E", Finger: LeftMiddle},
		}},
		Space: Key{Base: " ", Finger: BothThumbs},
	}
}

// LoadOrDefault returns the layout for code, or Default when it has none.
func LoadOrDefault(code string) *Layout {
	if l, err := Load(code); err == nil {
		return l
	}
	return Default()
}

// Matches reports whether pressing k produces r. The space character only
// matches the space bar, never a regular key. Letters match their key in
// either case; other shift and AltGr glyphs must match exactly.
func (k Key) Matches(r rune) bool {
	base := firstRune(k.Base)
	if base == ' ' {
		return r == ' '
	}
	if r == ' ' {
		return false
	}
	if unicode.ToLower(r) == unicode.ToLower(base) {
		return true
	}
	if k.Shift != "" && firstRune(k.Shift) == r {
		return true
	}
	return k.AltGr != "" && firstRune(k.AltGr) == r
}

// Letter reports whether the base glyph is alphabetic. Letter keys are
// labelled with their upper-case glyph only.
func (k Key) Letter() bool {
	return unicode.IsLetter(firstRune(k.Base))
}

// Label returns the glyph printed on the key cap.
func (k Key) Label() string {
	if k.Letter() {
		return strings.ToUpper(k.Base)
	}
	return k.Base
}

// LabelRune is the rune used to decide whether the key is visible in focus
// mode: the lower-cased base glyph.
func (k Key) LabelRune() rune {
	return unicode.ToLower(firstRune(k.Base))
}

// Find returns the first key producing r, scanning rows top to bottom.
func (l *Layout) Find(r rune) (Key, bool) {
	if l.Space.Matches(r) {
		return l.Space, true
	}
	for _, row := range l.Keys {
		for _, k := range row {
			if k.Matches(r) {
				return k, true
			}
		}
	}
	return Key{}, false
}

// Finger returns the finger that types r.
func (l *Layout) Finger(r rune) (Finger, bool) {
	k, ok := l.Find(r)
	if !ok {
		return "", false
	}
	return k.Finger, true
}

// Widest returns the number of keys in the longest row.
func (l *Layout) Widest() int {
	n := 0
	for _, row := range l.Keys {
		n = max(n, len(row))
	}
	return n
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ' '
	}
	return r
}
