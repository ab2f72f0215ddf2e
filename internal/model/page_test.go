package model

import "testing"

func TestPageIsHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		want        bool
	}{
		{"html with charset", "text/html; charset=utf-8", true},
		{"plain html", "text/html", true},
		{"xhtml", "application/xhtml+xml", true},
		{"json", "application/json", false},
		{"pdf", "application/pdf", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page := &Page{ContentType: tt.contentType}
			if got := page.IsHTML(); got != tt.want {
				t.Errorf("IsHTML() with %q = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestPageOK(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   bool
	}{
		{200, true},
		{204, true},
		{299, true},
		{199, false},
		{301, false},
		{404, false},
		{500, false},
	}

	for _, tt := range tests {
		page := &Page{StatusCode: tt.status}
		if got := page.OK(); got != tt.want {
			t.Errorf("OK() with status %d = %v, want %v", tt.status, got, tt.want)
		}
	}
}
