package apiglot

import "testing"

func TestLocaleLabel(t *testing.T) {
	tests := []struct {
		locale   Locale
		expected string
	}{
		{Locale{Code: "pt-BR", Name: "Portuguese (Brazil)"}, "pt-BR (Portuguese - Brazil)"},
		{Locale{Code: "es", Name: "Spanish"}, "es (Spanish)"},
		{Locale{Code: "zh-Hant", Name: "Chinese (Traditional) (Taiwan)"}, "zh-Hant (Chinese - Traditional (Taiwan))"},
		{Locale{Code: "de"}, "de (German)"},
	}

	for _, tt := range tests {
		t.Run(tt.locale.Code, func(t *testing.T) {
			if got := tt.locale.Label(); got != tt.expected {
				t.Errorf("Label() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCanonicalCode(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"pt_BR", "pt-BR"},
		{"pt-br", "pt-BR"},
		{"zh-tw", "zh-TW"},
		{" es ", "es"},
		{"not a locale", "not a locale"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := CanonicalCode(tt.code); got != tt.expected {
				t.Errorf("CanonicalCode(%q) = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}

func TestLocaleDir(t *testing.T) {
	tests := []struct {
		code    string
		want    string
		wantErr bool
	}{
		{code: "pt-BR", want: "pt-br"},
		{code: "zh_Hant", want: "zh_hant"},
		{code: "es", want: "es"},
		{code: "", wantErr: true},
		{code: ".", wantErr: true},
		{code: "..", wantErr: true},
		{code: "../es", wantErr: true},
		{code: "es/../../etc", wantErr: true},
		{code: `..\es`, wantErr: true},
		{code: "/tmp", wantErr: true},
		{code: "c:es", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := LocaleDir(tt.code)
			if tt.wantErr {
				if err == nil {
					t.Errorf("LocaleDir(%q) = %q, want error", tt.code, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("LocaleDir(%q) failed: %v", tt.code, err)
			}
			if got != tt.want {
				t.Errorf("LocaleDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"nl", "Dutch"},
		{"de", "German"},
		{"??", "??"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := DisplayName(tt.code); got != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}

func TestFindLocale(t *testing.T) {
	locales := []Locale{
		{ID: "1", Code: "en", Name: "English"},
		{ID: "2", Code: "pt-BR", Name: "Portuguese (Brazil)"},
	}

	l, ok := FindLocale(locales, "pt-br")
	if !ok {
		t.Fatal("expected pt-br to match pt-BR")
	}
	if l.ID != "2" {
		t.Errorf("expected ID 2, got %q", l.ID)
	}

	if _, ok := FindLocale(locales, "fr"); ok {
		t.Error("fr should not be found")
	}
}

func TestSameLocale(t *testing.T) {
	if !SameLocale("EN", "en") {
		t.Error("EN and en should be the same locale")
	}
	if SameLocale("en", "en-GB") {
		t.Error("en and en-GB should differ")
	}
}
