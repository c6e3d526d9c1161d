// Package markdown rewrites relative image references in Markdown documents.
package markdown

import (
	"regexp"
	"strings"
)

// imageRef matches ![alt](path). The path may not contain whitespace or ')'.
var imageRef = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)

// AssetBase joins the CDN base, asset namespace and slug into the prefix
// relative image paths are resolved against.
func AssetBase(cdnBase, assetNamespace, slug string) string {
	return strings.TrimRight(cdnBase, "/") + "/" + strings.Trim(assetNamespace, "/") + "/" + slug
}

// RewriteAssetRefs resolves relative image paths against base.
// Absolute http(s) URLs and plain links are left alone; text without any
// image reference is returned unchanged.
func RewriteAssetRefs(text, base string) string {
	if !strings.Contains(text, "![") {
		return text
	}
	base = strings.TrimRight(base, "/")
	return imageRef.ReplaceAllStringFunc(text, func(ref string) string {
		m := imageRef.FindStringSubmatch(ref)
		alt, path := m[1], m[2]
		if isAbsoluteURL(path) {
			return ref
		}
		path = strings.TrimPrefix(path, "./")
		path = strings.TrimLeft(path, "/")
		return "![" + alt + "](" + base + "/" + path + ")"
	})
}

func isAbsoluteURL(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
