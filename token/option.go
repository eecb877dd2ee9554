package token

import (
	"encoding/json"
	"time"

	"github.com/auth0/go-stateless-auth/core"
)

// Option configures a Codec.
// Options return errors to enable validation during construction.
type Option func(*options) error

type options struct {
	expiration Expiration
	subjects   any
	signer     Signer
	now        func() time.Time
	logger     core.Logger
}

// New creates a Codec for subjects of type T signed with secret. The secret
// is copied; it is required and must not be empty.
//
// Example:
//
//	codec, err := token.New[User](
//	    []byte(os.Getenv("AUTH_SECRET")),
//	    token.WithExpiration(30, time.Minute),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
func New[T any](secret []byte, opts ...Option) (*Codec[T], error) {
	if len(secret) == 0 {
		return nil, core.Configurationf("secret cannot be empty")
	}

	o := &options{
		signer: HS512Signer{},
		now:    time.Now,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	var subjects SubjectCodec[T] = MsgpackCodec[T]{}
	if o.subjects != nil {
		typed, ok := o.subjects.(SubjectCodec[T])
		if !ok {
			return nil, core.Configurationf("subject codec %T does not handle the subject type", o.subjects)
		}
		subjects = typed
	}

	header, err := json.Marshal(map[string]string{
		"alg": o.signer.Algorithm(),
		"typ": "JWT",
	})
	if err != nil {
		return nil, core.NewError(core.KindConfiguration, "could not encode token header", err)
	}

	return &Codec[T]{
		secret:     append([]byte(nil), secret...),
		signer:     o.signer,
		subjects:   subjects,
		expiration: o.expiration,
		now:        o.now,
		logger:     o.logger,
		header:     segmentEncoding.EncodeToString(header),
	}, nil
}

// WithExpiration makes every token created by the Codec expire duration
// units after its creation. Both values must be supplied; see NewExpiration.
//
// Default: tokens never expire.
func WithExpiration(duration int64, unit time.Duration) Option {
	return func(o *options) error {
		expiration, err := NewExpiration(duration, unit)
		if err != nil {
			return err
		}
		o.expiration = expiration
		return nil
	}
}

// WithSubjectCodec sets how subjects are turned into bytes. The codec's type
// parameter must match the Codec's.
//
// Default: MsgpackCodec
func WithSubjectCodec[T any](codec SubjectCodec[T]) Option {
	return func(o *options) error {
		if codec == nil {
			return core.Configurationf("subject codec cannot be nil")
		}
		o.subjects = codec
		return nil
	}
}

// WithSigner replaces the signature algorithm.
//
// Default: HS512Signer
func WithSigner(signer Signer) Option {
	return func(o *options) error {
		if signer == nil {
			return core.Configurationf("signer cannot be nil")
		}
		o.signer = signer
		return nil
	}
}

// WithTimeFunc sets the clock used to stamp and check expiry.
//
// Default: time.Now
func WithTimeFunc(now func() time.Time) Option {
	return func(o *options) error {
		if now == nil {
			return core.Configurationf("time function cannot be nil")
		}
		o.now = now
		return nil
	}
}

// WithLogger sets an optional logger. Tokens and secrets are never logged.
func WithLogger(logger core.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return core.Configurationf("logger cannot be nil")
		}
		o.logger = logger
		return nil
	}
}
