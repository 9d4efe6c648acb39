package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// DefaultContentType is served for extensions missing from the MIME table.
const DefaultContentType = "application/octet-stream"

// allowedExtensions is the upload allow-list, lowercase and without the dot.
var allowedExtensions = map[string]bool{
	"pdf":  true,
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

var contentTypes = map[string]string{
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces an uploaded filename to a safe ASCII name: accents are decomposed and
// dropped, path separators and whitespace runs become underscores, anything outside
// [A-Za-z0-9_.-] is removed and leading/trailing dots and underscores are trimmed.
// The result may be empty.
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)

	var b strings.Builder
	for _, r := range name {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	name = strings.NewReplacer("/", " ", `\`, " ").Replace(b.String())
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// Extension returns the lowercase text after the last dot, or "" when there is none.
func Extension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// AllowedExtension reports whether name carries an extension from the allow-list.
func AllowedExtension(name string) bool {
	return allowedExtensions[Extension(name)]
}

// ContentTypeFor maps a file_type to the Content-Type used for downloads.
func ContentTypeFor(ext string) string {
	if ct, ok := contentTypes[strings.ToLower(ext)]; ok {
		return ct
	}
	return DefaultContentType
}

// storedFileName is the sanitised original name, forced to end in ext so it stays a usable
// download name even when sanitising ate the extension.
func storedFileName(original, ext string) string {
	name := SecureFilename(original)
	if Extension(name) == ext {
		return name
	}
	if name == "" {
		name = "document"
	}
	return name + "." + ext
}
