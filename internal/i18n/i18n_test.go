package i18n

import (
	"context"
	"testing"

	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		header string
		want   language.Tag
	}{
		{"", language.English},
		{"de-DE,de;q=0.9,en;q=0.8", language.German},
		{"es-MX", language.Spanish},
		{"fr-FR", language.English},
		{";;;garbage", language.English},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := Match(tt.header); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestInTransitHeader(t *testing.T) {
	en := NewPrinter(language.English).InTransitHeader()
	if len(en) != len(InTransitColumns) {
		t.Fatalf("len = %d", len(en))
	}
	if en[0] != "Barcode" || en[len(en)-1] != "Check in service point" {
		t.Errorf("english header = %v", en)
	}

	de := ForAcceptLanguage("de").InTransitHeader()
	if de[1] != "Titel" {
		t.Errorf("german title = %q", de[1])
	}
}

func TestEveryLanguageTranslatesEveryKey(t *testing.T) {
	en := translations[language.English]
	for _, tag := range supported {
		msgs := translations[tag]
		for key := range en {
			if msgs[key] == "" {
				t.Errorf("%v: missing %q", tag, key)
			}
		}
	}
}

func TestPrinter_FormatsArgs(t *testing.T) {
	got := NewPrinter(language.Spanish).T(KeyInstanceCreated, "in00001")
	if got != "Se ha creado la instancia in00001." {
		t.Errorf("T() = %q", got)
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()).Tag() != language.English {
		t.Error("default printer should be English")
	}
	ctx := ContextWithPrinter(context.Background(), NewPrinter(language.German))
	if FromContext(ctx).Tag() != language.German {
		t.Error("expected German printer from context")
	}
}
