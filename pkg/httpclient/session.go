package httpclient

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"golang.org/x/net/publicsuffix"
)

// NewSessionJar returns a cookie jar seeded with the session cookie for baseURL.
// An empty cookie value yields an empty jar.
func NewSessionJar(baseURL, cookieName, cookieValue string) (http.CookieJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	if cookieName == "" || cookieValue == "" {
		return jar, nil
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	jar.SetCookies(u, []*http.Cookie{{
		Name:     cookieName,
		Value:    cookieValue,
		Path:     "/",
		HttpOnly: true,
		Secure:   u.Scheme == "https",
	}})

	return jar, nil
}
