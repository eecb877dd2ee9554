package statelessauth

import (
	"errors"
	"net/http"
)

// TokenName is the response header, request header and cookie that carry the
// token.
const TokenName = "X-AUTH-TOKEN"

// TokenExtractor is a function that takes a request as input and returns
// either a token or an error. An error should only be returned if an attempt
// to specify a token was found, but the information was somehow incorrectly
// formed. In the case where a token is simply not present, this should not
// be treated as an error. An empty string should be returned in that case.
type TokenExtractor func(r *http.Request) (string, error)

// HeaderTokenExtractor builds a TokenExtractor that reads the token from the
// named request header. The lookup is case-insensitive.
func HeaderTokenExtractor(name string) TokenExtractor {
	return func(r *http.Request) (string, error) {
		return r.Header.Get(name), nil
	}
}

// CookieTokenExtractor builds a TokenExtractor that takes a request and
// extracts the token from the first cookie named cookieName, in the order the
// client sent them.
func CookieTokenExtractor(cookieName string) TokenExtractor {
	return func(r *http.Request) (string, error) {
		cookie, err := r.Cookie(cookieName)
		if errors.Is(err, http.ErrNoCookie) {
			return "", nil // No cookie, then no token, so no error.
		}
		if err != nil {
			return "", err
		}

		return cookie.Value, nil
	}
}

// MultiTokenExtractor returns a TokenExtractor that runs multiple TokenExtractors
// and takes the one that does not return an empty token. If a TokenExtractor
// returns an error that error is immediately returned.
func MultiTokenExtractor(extractors ...TokenExtractor) TokenExtractor {
	return func(r *http.Request) (string, error) {
		for _, ex := range extractors {
			token, err := ex(r)
			if err != nil {
				return "", err
			}

			if token != "" {
				return token, nil
			}
		}
		return "", nil
	}
}

var xAuthToken = MultiTokenExtractor(
	HeaderTokenExtractor(TokenName),
	CookieTokenExtractor(TokenName),
)

// XAuthTokenExtractor reads the X-AUTH-TOKEN request header and falls back
// to the X-AUTH-TOKEN cookie when the header is absent or empty.
func XAuthTokenExtractor(r *http.Request) (string, error) {
	return xAuthToken(r)
}
