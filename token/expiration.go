package token

import (
	"math"
	"time"

	"github.com/auth0/go-stateless-auth/core"
)

// Expiration is how long a token stays valid after it is created. The zero
// value never expires.
type Expiration struct {
	ttl time.Duration
}

// NewExpiration builds an Expiration of duration units. Both arguments must
// be given together: passing exactly one of them as zero is a configuration
// error, as is a negative value or a product that overflows time.Duration.
// Passing both as zero returns the never-expiring zero value.
func NewExpiration(duration int64, unit time.Duration) (Expiration, error) {
	switch {
	case duration == 0 && unit == 0:
		return Expiration{}, nil
	case duration == 0:
		return Expiration{}, core.Configurationf("expiration unit %s given without a duration", unit)
	case unit == 0:
		return Expiration{}, core.Configurationf("expiration duration %d given without a unit", duration)
	case duration < 0 || unit < 0:
		return Expiration{}, core.Configurationf("expiration cannot be negative")
	case duration > math.MaxInt64/int64(unit):
		return Expiration{}, core.Configurationf("expiration of %d x %s overflows", duration, unit)
	}

	return Expiration{ttl: time.Duration(duration) * unit}, nil
}

// Enabled reports whether tokens carry an expiry.
func (e Expiration) Enabled() bool {
	return e.ttl > 0
}

// TTL returns the configured lifetime, zero when disabled.
func (e Expiration) TTL() time.Duration {
	return e.ttl
}

// From returns the expiry instant for a token created at now.
func (e Expiration) From(now time.Time) time.Time {
	return now.Add(e.ttl)
}
