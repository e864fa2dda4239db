package domain

import (
	"net/url"
	"path"
	"strings"
)

// FilenameFromURL derives the on-disk name of a download from its URL: the
// percent-decoded last path segment. When the URL has no usable segment the
// fallback is returned instead.
func FilenameFromURL(rawURL, fallback string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return sanitize(fallback)
	}

	base := path.Base(u.EscapedPath())
	switch base {
	case "", ".", "/", "..":
		return sanitize(fallback)
	}

	decoded, err := url.PathUnescape(base)
	if err != nil {
		return sanitize(base)
	}
	return sanitize(decoded)
}

// sanitize keeps a name inside its target directory.
func sanitize(name string) string {
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	if name == "" || name == "." || name == ".." {
		return "download"
	}
	return name
}
