package document

import (
	"net/url"
	"slices"
	"strings"
)

// Link is an internal link target with its display label.
type Link struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

// externalPrefixes mark references that never point into the archive.
var externalPrefixes = []string{"http://", "https://", "//", "#", "mailto:"}

// namespacePrefix is stripped from internal targets.
const namespacePrefix = "/wiki/"

// IsExternal reports whether href points outside the archive: a scheme or
// protocol-relative URL, a fragment-only reference, or a mail address.
func IsExternal(href string) bool {
	href = strings.TrimSpace(href)
	for _, p := range externalPrefixes {
		if strings.HasPrefix(href, p) {
			return true
		}
	}
	return false
}

// NormalizePath turns an internal href into an archive path.
//
// The fragment is dropped, parent traversals ("../") are removed, a leading
// "./" and the "/wiki/" namespace are stripped, percent escapes are decoded
// and spaces become underscores. A malformed escape leaves the path as is.
// The result may be empty.
func NormalizePath(href string) string {
	p, _, _ := strings.Cut(strings.TrimSpace(href), "#")
	p = strings.ReplaceAll(p, "../", "")
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, namespacePrefix)
	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}
	return strings.ReplaceAll(strings.TrimSpace(p), " ", "_")
}

// LinkIndex is the append-only link registry of a document under
// construction. The zero value is empty and ready to use.
type LinkIndex struct {
	links []Link
}

// Register applies the link registration rule to an anchor. External
// references, targets that normalize to an empty path and anchors without
// visible text are rejected. Otherwise the link is appended under the next
// index and returned as a LinkBlock.
func (x *LinkIndex) Register(href, label string) (LinkBlock, bool) {
	if IsExternal(href) {
		return LinkBlock{}, false
	}
	path := NormalizePath(href)
	label = collapse(label)
	if path == "" || label == "" {
		return LinkBlock{}, false
	}

	lb := LinkBlock{Path: path, Label: label, Index: len(x.links)}
	x.links = append(x.links, Link{Path: path, Label: label})
	return lb, true
}

// Len returns the number of registered links.
func (x *LinkIndex) Len() int { return len(x.links) }

// Links returns a copy of the registered links in index order.
func (x *LinkIndex) Links() []Link { return slices.Clone(x.links) }

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
