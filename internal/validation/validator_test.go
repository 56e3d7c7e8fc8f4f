package validation

import "testing"

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://www.example.com/page", false},
		{"http", "http://example.com", false},
		{"query and fragment", "https://example.com/p?a=1&b=2#frag", false},
		{"no scheme", "www.example.com/page", true},
		{"relative path", "/products/atv", true},
		{"ftp scheme", "ftp://example.com/file", true},
		{"scheme only", "https://", true},
		{"plain text", "not a url", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		want    string
		wantErr bool
	}{
		{"valid", "2024-05-01", "2024-05-01", false},
		{"leap day", "2024-02-29", "2024-02-29", false},
		{"impossible month and day", "2025-13-40", "", true},
		{"non-leap feb 29", "2023-02-29", "", true},
		{"wrong layout", "01/05/2024", "", true},
		{"date with time", "2024-05-01T10:00:00Z", "", true},
		{"not a date", "yesterday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateDate(tt.date)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateDate(%q) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestSanitizeElementName(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"clean", "modelNumber", "modelNumber"},
		{"space replaced", "product type", "product_type"},
		{"punctuation replaced", "price($)", "price___"},
		{"leading digit prefixed", "3dModel", "_3dModel"},
		{"leading dash prefixed", "-note", "_-note"},
		{"kept separators", "a-b_c.d", "a-b_c.d"},
		{"surrounding space trimmed", "  topic  ", "topic"},
		{"nothing usable", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeElementName(tt.header); got != tt.want {
				t.Errorf("SanitizeElementName(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestRowErrorMessage(t *testing.T) {
	err := &RowError{
		Kind:    KindInvalidURL,
		Row:     7,
		Field:   "url",
		Value:   "nope",
		Message: "URL has no host",
	}

	got := err.Error()
	want := "row 7, field 'url': URL has no host (value: 'nope')"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
