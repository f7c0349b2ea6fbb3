package i18n

import "testing"

func TestLocale_Translation(t *testing.T) {
	tr := New("en")
	if got := tr.Locale("fr").Tr("New task"); got != "Nouvelle tâche" {
		t.Fatalf("unexpected translation: %q", got)
	}
}

func TestLocale_EmptyCodeFallsBackToDefault(t *testing.T) {
	tr := New("fr")
	if got := tr.Locale("").Code(); got != "fr" {
		t.Fatalf("expected default locale, got %q", got)
	}
}

func TestLocale_UnknownCodeFallsBackToDefault(t *testing.T) {
	tr := New("en")
	if got := tr.Locale("tlh").Code(); got != "en" {
		t.Fatalf("expected default locale, got %q", got)
	}
}

func TestLocale_RegionQualifiedCode(t *testing.T) {
	tr := New("en")
	if got := tr.Locale("de_DE").Code(); got != "de" {
		t.Fatalf("expected de, got %q", got)
	}
	if got := tr.Locale("pt-BR").Code(); got != "en" {
		t.Fatalf("unshipped language must fall back, got %q", got)
	}
}

func TestTr_MissingKeyReturnsKey(t *testing.T) {
	tr := New("fr")
	if got := tr.Default().Tr("Completely unknown label"); got != "Completely unknown label" {
		t.Fatalf("unexpected fallback: %q", got)
	}
}

func TestNew_UnknownDefaultFallsBackToEnglish(t *testing.T) {
	tr := New("tlh")
	if got := tr.Default().Code(); got != "en" {
		t.Fatalf("expected en, got %q", got)
	}
}
