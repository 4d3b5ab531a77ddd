package service

import (
	"path/filepath"
	"strings"
)

var imageMIMETypes = map[string]string{
	".jpg":  "image/jpg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",
}

// ResolveMIMEType maps an image file extension, including the leading dot, to
// the MIME type sent to the vision backend.
func ResolveMIMEType(ext string) (string, error) {
	mimeType, ok := imageMIMETypes[strings.ToLower(ext)]
	if !ok {
		return "", &UnsupportedFormatError{Ext: ext}
	}
	return mimeType, nil
}

// MIMETypeForFile resolves the MIME type from a file name's extension
func MIMETypeForFile(name string) (string, error) {
	return ResolveMIMEType(filepath.Ext(name))
}
