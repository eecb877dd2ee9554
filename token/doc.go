/*
Package token creates and parses the signed, optionally expiring tokens that
carry a subject between requests.

# Format

A token is three unpadded base64url segments joined by dots:

	header.payload.signature

The header is the fixed JSON object {"alg":"HS512","typ":"JWT"}. The payload
holds two claims:

	{
	    "sub": "<standard base64 of the serialized subject>",
	    "exp": 1700001800
	}

"exp" is present only when the Codec was built WithExpiration. The signature
is HMAC-SHA-512 over "header.payload" with the shared secret.

# Usage

	codec, err := token.New[string]([]byte(secret), token.WithExpiration(30, time.Minute))
	if err != nil {
	    log.Fatal(err)
	}

	tok, err := codec.Create("alice")

	subject, ok, err := codec.Parse(tok)
	switch {
	case err != nil:
	    // malformed or tampered (core.ErrSignature) or undecodable (core.ErrSerialization)
	case !ok:
	    // expired: treat as no token
	default:
	    fmt.Println(subject) // alice
	}

# Subjects

Any type MessagePack can encode works as a subject:

	type User struct {
	    ID    int64
	    Email string
	}

	codec, err := token.New[User](secret)

To keep the payload readable by other clients use JSON instead:

	codec, err := token.New[User](secret, token.WithSubjectCodec[User](token.JSONCodec[User]{}))

# Verification

Parse checks the signature before it reads any claim and never consults the
header's "alg": the algorithm is the one the Codec was built with. Segment
decoding is strict, so no two distinct strings are accepted as the same token.

# Expiration

An expired token is not an error. Parse returns ok == false, exactly as the
transport does when no token was sent, so callers have one "anonymous" path.
*/
package token
