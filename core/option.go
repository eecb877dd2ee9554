package core

// Option is a function that configures an Authenticator.
// Options return errors to enable validation during construction.
type Option func(*settings) error

type settings struct {
	logger Logger
}

// New creates a new Authenticator from a codec and a converter.
//
// Example:
//
//	codec, err := token.New[string](secret)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	auth, err := core.New(codec, core.DefaultConverter(), core.WithLogger(slog.Default()))
func New[T any](codec TokenCodec[T], converter Converter[T], opts ...Option) (*Authenticator[T], error) {
	if codec == nil {
		return nil, Configurationf("codec cannot be nil")
	}
	if converter == nil {
		return nil, Configurationf("converter cannot be nil")
	}

	s := &settings{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return &Authenticator[T]{
		codec:     codec,
		converter: converter,
		logger:    s.logger,
	}, nil
}

// WithLogger sets an optional logger for the Authenticator.
func WithLogger(logger Logger) Option {
	return func(s *settings) error {
		if logger == nil {
			return Configurationf("logger cannot be nil")
		}
		s.logger = logger
		return nil
	}
}
