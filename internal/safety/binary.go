package safety

import (
	"bytes"
	"path"
	"strings"
	"unicode/utf8"
)

// SniffLength is the number of leading bytes inspected for binary content.
const SniffLength = 8192

var binaryExtensions = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "webp": {}, "bmp": {}, "ico": {}, "tif": {}, "tiff": {}, "psd": {},
	"pdf": {},
	"zip": {}, "gz": {}, "tgz": {}, "bz2": {}, "xz": {}, "7z": {}, "tar": {}, "rar": {}, "zst": {}, "jar": {}, "war": {},
	"woff": {}, "woff2": {}, "ttf": {}, "otf": {}, "eot": {},
	"mp4": {}, "mov": {}, "avi": {}, "mkv": {}, "webm": {}, "mp3": {}, "wav": {}, "flac": {}, "ogg": {},
	"bin": {}, "exe": {}, "dll": {}, "so": {}, "dylib": {}, "a": {}, "o": {}, "obj": {}, "lib": {},
	"class": {}, "pyc": {}, "wasm": {}, "sqlite": {}, "db": {},
}

// HasBinaryExtension reports whether the file name carries a denylisted extension.
// The comparison ignores case.
func HasBinaryExtension(relativePath string) bool {
	_, denied := binaryExtensions[extensionOf(relativePath)]
	return denied
}

// LooksBinary inspects the first SniffLength bytes of data and reports whether
// they contain a NUL byte or are not valid UTF-8. A multi-byte character cut
// by the end of the sniff window is not counted against the data.
func LooksBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	window := data
	if len(window) > SniffLength {
		window = trimIncompleteRune(window[:SniffLength])
	}
	if bytes.IndexByte(window, 0) >= 0 {
		return true
	}
	return !utf8.Valid(window)
}

func trimIncompleteRune(window []byte) []byte {
	for index := len(window) - 1; index >= 0 && index >= len(window)-utf8.UTFMax; index-- {
		if utf8.RuneStart(window[index]) {
			if !utf8.FullRune(window[index:]) {
				return window[:index]
			}
			return window
		}
	}
	return window
}

func extensionOf(relativePath string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(relativePath), "."))
}
