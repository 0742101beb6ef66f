package render

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		t.Run(m.String(), func(t *testing.T) {
			got, err := ParseMode(m.String())
			if err != nil {
				t.Fatalf("ParseMode: %v", err)
			}
			if got != m {
				t.Errorf("ParseMode(%q) = %v", m.String(), got)
			}
		})
	}

	if got, err := ParseMode("Lit-Static"); err != nil || got != ModeLitStatic {
		t.Errorf("ParseMode is case sensitive: %v, %v", got, err)
	}
	if _, err := ParseMode("phong"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ParseMode(phong) error = %v, want ErrUnknownMode", err)
	}
	if s := Mode(99).String(); s != "Mode(99)" {
		t.Errorf("String of unknown mode = %q", s)
	}
}

func TestModeLit(t *testing.T) {
	for _, m := range Modes() {
		want := m == ModeLitStatic || m == ModeLitDynamic
		if m.Lit() != want {
			t.Errorf("%v.Lit() = %v, want %v", m, m.Lit(), want)
		}
	}
}
