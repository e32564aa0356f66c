package media

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultExtension = "jpg"
	tokenLength      = 8
)

// GeneratePath returns "<folder>/<prefix>-<unix ms>-<token>.<extension>" where
// token is 8 random lowercase hex characters. extension defaults to jpg. An
// empty folder drops the "<folder>/" part, keys never start with a slash.
func GeneratePath(folder, prefix, extension string) string {
	return buildPath(folder, prefix, extension, time.Now(), randomToken())
}

// GenerateIndexedPath uses index instead of a random token. Keys of one batch
// are distinct because their indexes are.
func GenerateIndexedPath(folder, prefix, extension string, index int) string {
	return buildPath(folder, prefix, extension, time.Now(), fmt.Sprint(index))
}

func buildPath(folder, prefix, extension string, at time.Time, discriminator string) string {
	extension = strings.TrimPrefix(extension, ".")
	if extension == "" {
		extension = defaultExtension
	}

	name := fmt.Sprintf("%s-%d-%s.%s", prefix, at.UnixMilli(), discriminator, extension)
	if folder = strings.Trim(folder, "/"); folder == "" {
		return name
	}
	return folder + "/" + name
}

func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]
}

var mimeExtensions = map[string]string{
	"image/jpeg":    "jpg",
	"image/png":     "png",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

// ExtensionOf maps an image content type to a key extension, jpg when unknown.
func ExtensionOf(contentType string) string {
	if ext, ok := mimeExtensions[strings.ToLower(strings.TrimSpace(contentType))]; ok {
		return ext
	}
	return defaultExtension
}

// ExtensionFor prefers contentType and falls back to the type declared by src.
func ExtensionFor(src Source, contentType string) string {
	if strings.TrimSpace(contentType) == "" {
		contentType = src.ContentType()
	}
	return ExtensionOf(contentType)
}
