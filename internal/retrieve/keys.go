package retrieve

import (
	"net/url"
	"strings"
)

// credentialParams are query parameters that carry auth, not identity.
// Plex accepts the token in the query string as well as the header.
var credentialParams = []string{"X-Plex-Token", "api_key", "ApiKey"}

// CacheKey returns the cache key for rawURL: the URL with credential query
// parameters removed, so rotating a token does not invalidate the cache and
// tokens are never written to disk. Unparseable URLs are used verbatim.
func CacheKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.RawQuery == "" {
		return rawURL
	}

	q := u.Query()
	changed := false
	for param := range q {
		for _, cred := range credentialParams {
			if strings.EqualFold(param, cred) {
				q.Del(param)
				changed = true
			}
		}
	}
	if !changed {
		return rawURL
	}

	u.RawQuery = q.Encode()
	return u.String()
}
