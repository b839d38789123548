package keyboard

import (
	"errors"
	"testing"
)

func TestLoadBuiltInLayouts(t *testing.T) {
	for _, code := range Codes() {
		l, err := Load(code)
		if err != nil {
			t.Fatalf("Load(%q): %v", code, err)
		}
		if l.Name == "" {
			t.Errorf("%s: empty name", code)
		}
		if len(l.Keys) != 4 {
			t.Errorf("%s: %d rows, want 4", code, len(l.Keys))
		}
		if l.Space.Finger != BothThumbs {
			t.Errorf("%s: space finger = %q", code, l.Space.Finger)
		}
		for i, row := range l.Keys {
			for _, k := range row {
				if k.Base == "" || k.Finger == "" {
					t.Errorf("%s row %d: incomplete key %+v", code, i, k)
				}
			}
		}
	}
}

func TestLoadUnsupportedLayout(t *testing.T) {
	_, err := Load("dvorak")
	if !errors.Is(err, ErrUnsupportedLayout) {
		t.Fatalf("err = %v, want ErrUnsupportedLayout", err)
	}
	if got := LoadOrDefault("dvorak"); got.Name != Default().Name {
		t.Errorf("LoadOrDefault name = %q, want %q", got.Name, Default().Name)
	}
}

func TestKeyMatches(t *testing.T) {
	q := Key{Base: "q", Shift: "Q", Finger: LeftPinky}
	two := Key{Base: "2", Shift: "\"", AltGr: "@", Finger: LeftRing}
	space := Key{Base: " ", Finger: BothThumbs}

	tests := []struct {
		name string
		key  Key
		r    rune
		want bool
	}{
		{"lower letter", q, 'q', true},
		{"upper letter", q, 'Q', true},
		{"other letter", q, 'w', false},
		{"space never matches letter key", q, ' ', false},
		{"digit base", two, '2', true},
		{"shift glyph", two, '"', true},
		{"altgr glyph", two, '@', true},
		{"unrelated symbol", two, '#', false},
		{"space bar", space, ' ', true},
		{"space bar ignores letters", space, 'q', false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.Matches(tt.r); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestFinger(t *testing.T) {
	us, err := Load("us")
	if err != nil {
		t.Fatal(err)
	}
	es, err := Load("es")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		layout *Layout
		r      rune
		want   Finger
	}{
		{"home row f", us, 'f', LeftIndex},
		{"capital J", us, 'J', RightIndex},
		{"space", us, ' ', BothThumbs},
		{"shifted digit", us, '!', LeftPinky},
		{"spanish enye", es, 'ñ', RightPinky},
		{"spanish capital enye", es, 'Ñ', RightPinky},
		{"altgr at sign", es, '@', LeftRing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.layout.Finger(tt.r)
			if !ok {
				t.Fatalf("Finger(%q) not found", tt.r)
			}
			if got != tt.want {
				t.Errorf("Finger(%q) = %q, want %q", tt.r, got, tt.want)
			}
		})
	}

	if _, ok := us.Finger('ñ'); ok {
		t.Error("us layout should not produce ñ")
	}
}

func TestKeyLabels(t *testing.T) {
	if got := (Key{Base: "a"}).Label(); got != "A" {
		t.Errorf("letter label = %q, want A", got)
	}
	if got := (Key{Base: ";"}).Label(); got != ";" {
		t.Errorf("symbol label = %q, want ;", got)
	}
	if got := (Key{Base: "Ñ"}).LabelRune(); got != 'ñ' {
		t.Errorf("label rune = %q, want ñ", got)
	}
	if got := LeftIndex.Label(); got != "left index" {
		t.Errorf("finger label = %q", got)
	}
}
