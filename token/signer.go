package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Signer produces and checks the keyed signature of a token. The algorithm is
// fixed per Signer: Verify never consults the token header, so a token
// cannot ask to be checked with a weaker algorithm.
type Signer interface {
	// Algorithm is the name written to the token header. It is informational
	// only and never read back.
	Algorithm() string
	Sign(signingString string, secret []byte) ([]byte, error)
	Verify(signingString string, signature, secret []byte) bool
}

// HS512Signer signs with HMAC-SHA-512. It is the default Signer.
type HS512Signer struct{}

// Algorithm implements Signer.
func (HS512Signer) Algorithm() string {
	return jwt.SigningMethodHS512.Alg()
}

// Sign implements Signer.
func (HS512Signer) Sign(signingString string, secret []byte) ([]byte, error) {
	return jwt.SigningMethodHS512.Sign(signingString, secret)
}

// Verify implements Signer. The comparison is constant time.
func (HS512Signer) Verify(signingString string, signature, secret []byte) bool {
	return jwt.SigningMethodHS512.Verify(signingString, signature, secret) == nil
}
