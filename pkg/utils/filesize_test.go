package utils

import "testing"

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{"negative", -1, "0 B"},
		{"zero", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"kilobytes", 2048, "2.00 KB"},
		{"megabytes", 5 * MB, "5.00 MB"},
		{"gigabytes", 3 * GB, "3.00 GB"},
		{"terabytes", 2 * TB, "2.00 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBytes(tt.input); got != tt.expected {
				t.Errorf("FormatBytes(%d) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
		wantErr  bool
	}{
		{"bytes", "100B", 100, false},
		{"kilobytes", "1KB", 1024, false},
		{"lowercase", "1kb", 1024, false},
		{"short unit", "2K", 2048, false},
		{"megabytes", "10MB", 10 * MB, false},
		{"gigabytes", "1GB", GB, false},
		{"no unit", "4096", 4096, false},
		{"zero", "0", 0, false},
		{"whitespace", " 1KB ", 1024, false},
		{"empty", "", 0, true},
		{"garbage", "abc", 0, true},
		{"unknown unit", "1XB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseSize(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSize(%q): %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseSize(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}
