package format

import "testing"

func TestDate(t *testing.T) {
	if got := Date("2025-02-03"); got != "lunedì 3 febbraio 2025" {
		t.Fatalf("unexpected long date: %q", got)
	}
	if got := Date("2024-12-25T10:30:00"); got != "mercoledì 25 dicembre 2024" {
		t.Fatalf("unexpected long date from timestamp: %q", got)
	}
	if got := Date("not-a-date"); got != "not-a-date" {
		t.Fatalf("expected unparseable input to pass through, got %q", got)
	}
}

func TestDateShort(t *testing.T) {
	if got := DateShort("2025-02-03"); got != "03/02/2025" {
		t.Fatalf("unexpected short date: %q", got)
	}
	if got := DateShort(""); got != "" {
		t.Fatalf("expected empty input to stay empty, got %q", got)
	}
}

func TestFromDDMMYYYY(t *testing.T) {
	if got := FromDDMMYYYY("03/02/2025"); got != "2025-02-03" {
		t.Fatalf("unexpected ISO date: %q", got)
	}
	if got := FromDDMMYYYY("03-02-2025"); got != "03-02-2025" {
		t.Fatalf("expected malformed input to pass through, got %q", got)
	}
	if got := FromDDMMYYYY(""); got != "" {
		t.Fatalf("expected empty input to stay empty, got %q", got)
	}
}

func TestPeriodText(t *testing.T) {
	cases := map[string]string{
		"mattina":    "Mattina (8:30 - 12:30)",
		"pomeriggio": "Pomeriggio (14:00 - 18:00)",
		"sera":       "sera",
	}
	for input, want := range cases {
		if got := PeriodText(input); got != want {
			t.Fatalf("PeriodText(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestGenderCategoryText(t *testing.T) {
	cases := map[string]string{
		"misto":     "Misto",
		"maschile":  "Solo ragazzi",
		"femminile": "Solo ragazze",
		"altro":     "altro",
	}
	for input, want := range cases {
		if got := GenderCategoryText(input); got != want {
			t.Fatalf("GenderCategoryText(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSectionColor(t *testing.T) {
	if got := SectionColor("Informatica"); got != "bg-blue-100 text-blue-800 border-blue-200" {
		t.Fatalf("unexpected color for Informatica: %q", got)
	}
	if got := SectionColor("Meccanica"); got != "bg-gray-100 text-gray-800 border-gray-200" {
		t.Fatalf("unexpected fallback color: %q", got)
	}
}
