package middleware

import (
	"net/url"
	"strings"
)

// OriginValidator decides whether an Origin header value may receive CORS headers.
type OriginValidator interface {
	IsAllowed(origin string) bool
}

// PatternValidator matches origins against exact entries and "https://*.example.com"
// wildcards. A wildcard matches any subdomain depth over https only, never the apex.
type PatternValidator struct {
	exact     map[string]struct{}
	wildcards []string // ".example.com" suffixes
}

// NewOriginValidator builds a validator from configured entries. Entries are
// compared case-insensitively and without a trailing slash; blanks are ignored.
func NewOriginValidator(origins []string) *PatternValidator {
	v := &PatternValidator{exact: make(map[string]struct{}, len(origins))}
	for _, origin := range origins {
		origin = normalizeOrigin(origin)
		if origin == "" {
			continue
		}
		if suffix, ok := strings.CutPrefix(origin, "https://*"); ok && strings.HasPrefix(suffix, ".") {
			v.wildcards = append(v.wildcards, suffix)
			continue
		}
		v.exact[origin] = struct{}{}
	}
	return v
}

func (v *PatternValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	if _, ok := v.exact[origin]; ok {
		return true
	}
	if len(v.wildcards) == 0 {
		return false
	}

	u, err := url.Parse(origin)
	if err != nil || u.Scheme != "https" || u.Host == "" || u.Path != "" {
		return false
	}
	host := u.Hostname()
	for _, suffix := range v.wildcards {
		if strings.HasSuffix(host, suffix) && len(host) > len(suffix) {
			return true
		}
	}
	return false
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(origin)), "/")
}
