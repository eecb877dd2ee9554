package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/auth0/go-stateless-auth/core"
)

// segmentEncoding is unpadded base64url. Decoding is strict so that every
// token has exactly one valid spelling: changing any character of a segment
// either fails to decode or yields different bytes.
var segmentEncoding = base64.RawURLEncoding.Strict()

// payload is the JSON body of a token.
type payload struct {
	// Subject is the standard base64 encoding of the serialized subject.
	Subject string `json:"sub"`

	// ExpiresAt is the optional expiry instant in epoch seconds.
	ExpiresAt *jwt.NumericDate `json:"exp,omitempty"`
}

// Codec turns subjects of type T into signed tokens and back. A Codec is
// immutable once built and safe for concurrent use.
type Codec[T any] struct {
	secret     []byte
	signer     Signer
	subjects   SubjectCodec[T]
	expiration Expiration
	now        func() time.Time
	logger     core.Logger

	// header is the encoded header segment, identical for every token.
	header string
}

// Create serializes subject, adds the expiry when one is configured and
// signs the result. A subject that cannot be serialized is reported as a
// KindArgument error whose cause is the serialization error.
func (c *Codec[T]) Create(subject T) (string, error) {
	data, err := c.subjects.Serialize(subject)
	if err != nil {
		return "", core.NewError(core.KindArgument, "could not create token for subject", err)
	}

	claims := payload{Subject: base64.StdEncoding.EncodeToString(data)}
	if c.expiration.Enabled() {
		claims.ExpiresAt = jwt.NewNumericDate(ceilSecond(c.expiration.From(c.now())))
	}

	body, err := json.Marshal(claims)
	if err != nil {
		return "", core.NewError(core.KindArgument, "could not encode token payload", err)
	}

	signingString := c.header + "." + segmentEncoding.EncodeToString(body)

	signature, err := c.signer.Sign(signingString, c.secret)
	if err != nil {
		return "", core.NewError(core.KindFatal, "could not sign token", err)
	}

	return signingString + "." + segmentEncoding.EncodeToString(signature), nil
}

// ceilSecond rounds t up to a whole second, the resolution of the exp claim,
// so a token never expires before its configured lifetime has passed.
func ceilSecond(t time.Time) time.Time {
	truncated := t.Truncate(time.Second)
	if truncated.Before(t) {
		return truncated.Add(time.Second)
	}
	return truncated
}

// Parse verifies token and returns its subject.
//
// The signature is checked before any claim is read. A structurally invalid
// token or a signature mismatch is a KindSignature error. A token whose
// expiry is at or before the current time returns (zero, false, nil), the
// same as no token at all. A subject that cannot be decoded is a
// KindSerialization error.
func (c *Codec[T]) Parse(token string) (T, bool, error) {
	var zero T

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return zero, false, core.NewError(core.KindSignature, "token contains an invalid number of segments", nil)
	}

	header, err := segmentEncoding.DecodeString(parts[0])
	if err != nil {
		return zero, false, core.NewError(core.KindSignature, "could not decode token header", err)
	}
	// The header is required to be a JSON object but its content, alg
	// included, is ignored.
	var fields map[string]any
	if err := json.Unmarshal(header, &fields); err != nil || fields == nil {
		return zero, false, core.NewError(core.KindSignature, "token header is not a JSON object", err)
	}

	body, err := segmentEncoding.DecodeString(parts[1])
	if err != nil {
		return zero, false, core.NewError(core.KindSignature, "could not decode token payload", err)
	}

	signature, err := segmentEncoding.DecodeString(parts[2])
	if err != nil {
		return zero, false, core.NewError(core.KindSignature, "could not decode token signature", err)
	}

	if !c.signer.Verify(parts[0]+"."+parts[1], signature, c.secret) {
		return zero, false, core.NewError(core.KindSignature, "token signature is invalid", nil)
	}

	var claims payload
	if err := json.Unmarshal(body, &claims); err != nil {
		return zero, false, core.NewError(core.KindSerialization, "could not decode token payload", err)
	}

	if claims.ExpiresAt != nil && !c.now().Before(claims.ExpiresAt.Time) {
		if c.logger != nil {
			c.logger.Debug("Token has expired", "expired_at", claims.ExpiresAt.Time)
		}
		return zero, false, nil
	}

	data, err := base64.StdEncoding.DecodeString(claims.Subject)
	if err != nil {
		return zero, false, core.NewError(core.KindSerialization, "could not decode subject", err)
	}

	subject, err := c.subjects.Deserialize(data)
	if err != nil {
		if core.KindOf(err) == core.KindUnknown {
			err = core.NewError(core.KindSerialization, "could not deserialize subject", err)
		}
		return zero, false, err
	}

	return subject, true, nil
}

// Expiration returns the configured expiration policy.
func (c *Codec[T]) Expiration() Expiration {
	return c.expiration
}
