package storage

import "testing"

func TestValidateFileType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		filename    string
		want        bool
	}{
		{"pdf by mime", "application/pdf", "lease.bin", true},
		{"docx by mime", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "x", true},
		{"plain text by mime", "text/plain", "x", true},
		{"pdf by extension", "", "lease.PDF", true},
		{"docx by extension", "application/octet-stream", "contract.docx", true},
		{"txt by extension", "", "notes.txt", true},
		{"image rejected", "image/png", "scan.png", false},
		{"executable rejected", "application/octet-stream", "setup.exe", false},
		{"no hints rejected", "", "README", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateFileType(tt.contentType, tt.filename); got != tt.want {
				t.Errorf("ValidateFileType(%q, %q) = %v, want %v", tt.contentType, tt.filename, got, tt.want)
			}
		})
	}
}
