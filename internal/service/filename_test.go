package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my report.PDF", "my_report.PDF"},
		{"../../etc/passwd", "etc_passwd"},
		{`C:\Users\bob\scan.png`, "C_Users_bob_scan.png"},
		{"résumé final.pdf", "resume_final.pdf"},
		{"  spaced   out  .jpg", "spaced_out_.jpg"},
		{"i<>love\"quotes'.png", "ilovequotes.png"},
		{"._hidden_.", "hidden"},
		{"文件.pdf", "pdf"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SecureFilename(tt.in))
		})
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "pdf", Extension("a.b.PDF"))
	assert.Equal(t, "", Extension("noext"))
	assert.Equal(t, "", Extension("trailing."))
	assert.True(t, AllowedExtension("photo.JPeG"))
	assert.False(t, AllowedExtension("photo.gif"))
	assert.False(t, AllowedExtension("pdf"))
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentTypeFor("pdf"))
	assert.Equal(t, "image/jpeg", ContentTypeFor("jpg"))
	assert.Equal(t, "image/jpeg", ContentTypeFor("JPEG"))
	assert.Equal(t, "image/png", ContentTypeFor("png"))
	assert.Equal(t, DefaultContentType, ContentTypeFor("exe"))
}

func TestStoredFileName(t *testing.T) {
	assert.Equal(t, "my_report.PDF", storedFileName("my report.PDF", "pdf"))
	assert.Equal(t, "pdf.pdf", storedFileName("文件.pdf", "pdf"))
	assert.Equal(t, "document.png", storedFileName("???", "png"))
}
