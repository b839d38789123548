package typing

import (
	"strings"
	"testing"
)

func TestValidateInsertion(t *testing.T) {
	tests := []struct {
		name       string
		typed      string
		fragment   string
		target     string
		wantAccept bool
		wantPrefix string
	}{
		{"first char", "", "t", "the cat", true, ""},
		{"continues word", "th", "e", "the cat", true, ""},
		{"space accepted", "the", " ", "the cat", true, ""},
		{"wrong first char", "", "x", "the cat", false, ""},
		{"mistake in first word", "th", "x", "the cat", false, ""},
		{"mistake after space", "the ", "b", "the cat", false, "the "},
		{"mistake mid second word", "the ca", "x", "the cat", false, "the "},
		{"mistake in third word", "a bc de", "x", "a bc def", false, "a bc "},
		{"case sensitive", "", "T", "the cat", false, ""},
		{"multi-char accepted", "the", " cat", "the cat", true, ""},
		{"multi-char mismatch anywhere", "th", "ex", "the cat", false, ""},
		{"multi-char keeps completed word", "the", " cab", "the cat", false, "the "},
		{"multi-char mismatch in first word", "", "tha cat", "the cat", false, ""},
		{"paste over two words", "", "a bc dx", "a bc def", false, "a bc "},
		{"past end", "the cat", "s", "the cat", false, "the "},
		{"accented", "ca", "fé", "café", true, ""},
		{"accented mismatch", "ca", "fe", "café", false, ""},
		{"empty target", "", "a", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateInsertion(tt.typed, tt.fragment, tt.target)
			if got.Accepted != tt.wantAccept {
				t.Errorf("Accepted = %v, want %v", got.Accepted, tt.wantAccept)
			}
			if got.CorrectedPrefix != tt.wantPrefix {
				t.Errorf("CorrectedPrefix = %q, want %q", got.CorrectedPrefix, tt.wantPrefix)
			}
		})
	}
}

func TestValidateInsertion_AcceptsExactlyTargetPrefixes(t *testing.T) {
	target := "jjj fff jfj"
	candidates := []string{"j", "jj", "jjj ", "jjj f", "jjf", "jjj fff jfj", "jjj fff jfjj", "f", " "}
	for _, c := range candidates {
		for split := 0; split <= len(c); split++ {
			typed, frag := c[:split], c[split:]
			got := ValidateInsertion(typed, frag, target).Accepted
			want := strings.HasPrefix(target, c)
			if got != want {
				t.Errorf("ValidateInsertion(%q, %q) accepted = %v, want %v", typed, frag, got, want)
			}
		}
	}
}

func TestValidateInsertion_CorrectionIsWordBoundary(t *testing.T) {
	// "the bat" against "the cat" first fails at index 4.
	target := "the cat"
	typed := ""
	for _, r := range "the bat" {
		d := ValidateInsertion(typed, string(r), target)
		if !d.Accepted {
			if typed != "the " {
				t.Fatalf("rejected at %q, want rejection after %q", typed, "the ")
			}
			if d.CorrectedPrefix != "the " {
				t.Fatalf("CorrectedPrefix = %q, want %q", d.CorrectedPrefix, "the ")
			}
			if len(d.CorrectedPrefix) != 4 {
				t.Errorf("corrected cursor = %d, want 4", len(d.CorrectedPrefix))
			}
			return
		}
		typed += string(r)
	}
	t.Fatal("expected a rejection")
}

func TestWordBoundaryPrefix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", ""},
		{"abc ", "abc "},
		{"abc de", "abc "},
		{"a b c", "a b "},
	}
	for _, tt := range tests {
		if got := WordBoundaryPrefix(tt.in); got != tt.want {
			t.Errorf("WordBoundaryPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		typed, target string
		want          Status
	}{
		{"the cat", "the cat", StatusComplete},
		{"the ca", "the cat", StatusInProgress},
		{"", "the cat", StatusInProgress},
		{"", "", StatusInProgress},
		{"x", "", StatusInProgress},
		{"The cat", "the cat", StatusInProgress},
	}
	for _, tt := range tests {
		if got := Classify(tt.typed, tt.target); got != tt.want {
			t.Errorf("Classify(%q, %q) = %v, want %v", tt.typed, tt.target, got, tt.want)
		}
	}
}

func TestNextExpected(t *testing.T) {
	tests := []struct {
		typed, target string
		want          rune
		wantOK        bool
	}{
		{"", "abc", 'a', true},
		{"ab", "abc", 'c', true},
		{"abc", "abc", 0, false},
		{"caf", "café", 'é', true},
		{"", "", 0, false},
	}
	for _, tt := range tests {
		got, ok := NextExpected(tt.typed, tt.target)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NextExpected(%q, %q) = (%q, %v), want (%q, %v)", tt.typed, tt.target, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCursorPosition(t *testing.T) {
	if got := CursorPosition("café "); got != 5 {
		t.Errorf("CursorPosition = %d, want 5", got)
	}
}
