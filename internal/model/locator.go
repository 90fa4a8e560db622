package model

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Locator is an opaque reference to one fetchable cover image.
//
// A Locator is usually an http(s) URL, but may also be a local image path,
// a file:// URL, or the path of an audio file whose embedded picture should
// be used. Locators compare by value, which is what deduplication relies on.
type Locator string

// String returns the locator text.
func (l Locator) String() string {
	return string(l)
}

// IsZero reports whether the locator is empty.
func (l Locator) IsZero() bool {
	return strings.TrimSpace(string(l)) == ""
}

// IsRemote reports whether the locator is an http or https URL.
func (l Locator) IsRemote() bool {
	s := strings.ToLower(string(l))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// FilePath returns the local file path for non-remote locators.
//
// file:// URLs are converted to plain paths. The second return value is
// false for remote locators.
func (l Locator) FilePath() (string, bool) {
	if l.IsRemote() || l.IsZero() {
		return "", false
	}
	s := string(l)
	if strings.HasPrefix(strings.ToLower(s), "file://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", false
		}
		return filepath.FromSlash(u.Path), true
	}
	return s, true
}

// Ext returns the lowercased extension of the locator's path component.
func (l Locator) Ext() string {
	s := string(l)
	if l.IsRemote() {
		if u, err := url.Parse(s); err == nil {
			s = u.Path
		}
	}
	return strings.ToLower(filepath.Ext(s))
}
