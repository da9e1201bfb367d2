package platform

import (
	"testing"
)

func TestOpenWebPageRejectsInvalidURLs(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
	}{
		{
			name:   "empty url",
			rawURL: "",
		},
		{
			name:   "missing scheme",
			rawURL: "pixlshare.example/items/42",
		},
		{
			name:   "file scheme",
			rawURL: "file:///etc/passwd",
		},
		{
			name:   "ftp scheme",
			rawURL: "ftp://pixlshare.example/items/42",
		},
		{
			name:   "control character",
			rawURL: "http://pixlshare.example/\x00items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := OpenWebPage(tt.rawURL); err == nil {
				t.Errorf("Expected error for %q, got nil", tt.rawURL)
			}
		})
	}
}
