package media

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Kind is the declared purpose of an upload, which pins down the accepted
// content types and the canonical extension.
type Kind string

const (
	KindImage Kind = "image"
	KindPdf   Kind = "pdf"
)

// fallbackFolder is used when an upload carries no slug yet (new drafts).
const fallbackFolder = "academy"

var segmentSanitizer = regexp.MustCompile(`[^a-z0-9._-]`)

// extByContentType pins the stored extension to the validated content type,
// never to whatever the client named the file.
var extByContentType = map[Kind]map[string]string{
	KindImage: {
		"image/jpeg": ".jpg",
		"image/jpg":  ".jpg",
		"image/png":  ".png",
	},
	KindPdf: {
		"application/pdf": ".pdf",
	},
}

// ValidateUpload checks the declared kind against the payload content type
// and returns the canonical extension.
func ValidateUpload(kind Kind, contentType string) (string, error) {
	accepted, ok := extByContentType[kind]
	if !ok {
		return "", fmt.Errorf("unknown upload kind %q", kind)
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	ext, ok := accepted[contentType]
	if !ok {
		return "", fmt.Errorf("content type %q not accepted for kind %q", contentType, kind)
	}
	return ext, nil
}

// SanitizeSegment lowercases a path segment and strips everything outside
// [a-z0-9._-].
func SanitizeSegment(s string) string {
	return segmentSanitizer.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "")
}

// BuildObjectKey computes the storage key for an upload:
// <mediaPath>/<slug or "academy">/<unix-timestamp>-<base><ext>, every
// segment sanitized. The timestamp keeps re-uploads from clobbering each
// other; the extension comes from ValidateUpload, not from the file name.
func BuildObjectKey(mediaPath, slug, filename, ext string, now time.Time) string {
	folder := SanitizeSegment(slug)
	if folder == "" {
		folder = fallbackFolder
	}

	base := filename
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	base = SanitizeSegment(base)
	if base == "" {
		base = "media"
	}

	name := fmt.Sprintf("%d-%s%s", now.Unix(), base, ext)
	mediaPath = strings.Trim(strings.TrimSpace(mediaPath), "/")
	if mediaPath == "" {
		return folder + "/" + name
	}
	return mediaPath + "/" + folder + "/" + name
}
