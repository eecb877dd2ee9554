package statelessgrpc

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// MetadataKey is the metadata field that carries the token, the gRPC
// spelling of the X-AUTH-TOKEN header.
const MetadataKey = "x-auth-token"

// TokenExtractor defines a function that extracts a token from gRPC
// metadata. An absent token is "" with no error.
type TokenExtractor func(ctx context.Context) (string, error)

// MetadataTokenExtractor extracts the token from the x-auth-token metadata
// field.
func MetadataTokenExtractor(ctx context.Context) (string, error) {
	return MetadataFieldTokenExtractor(MetadataKey)(ctx)
}

// MetadataFieldTokenExtractor extracts the token from a specified metadata field.
func MetadataFieldTokenExtractor(field string) TokenExtractor {
	return func(ctx context.Context) (string, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return "", nil // No metadata, so no token.
		}

		values := md.Get(field)
		if len(values) == 0 || values[0] == "" {
			return "", nil // No token provided.
		}

		return values[0], nil
	}
}

// MultiTokenExtractor runs multiple TokenExtractors and returns the first
// non-empty token.
func MultiTokenExtractor(extractors ...TokenExtractor) TokenExtractor {
	return func(ctx context.Context) (string, error) {
		for _, ex := range extractors {
			token, err := ex(ctx)
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
