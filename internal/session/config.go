package session

import (
	"github.com/go-logr/logr"

	"docmapper/internal/convert"
	"docmapper/internal/diagnostic"
	"docmapper/internal/field"
	"docmapper/internal/mapping"
	"docmapper/internal/namespace"
)

// Config holds run-wide settings.
type Config struct {
	// StrictNamespaces rejects target aliases the registry cannot resolve.
	StrictNamespaces bool
	// StopOnError aborts the run at the first failed field mapping.
	StopOnError bool
	// Categories limits the conversions of the default hook.
	Categories convert.Category
}

// DefaultConfig returns the default run configuration.
func DefaultConfig() Config {
	return Config{
		StrictNamespaces: false,
		StopOnError:      false,
		Categories:       convert.CategoryAll,
	}
}

// ConfigFor applies the options of a mapping file on top of cfg. Options
// can only turn strictness on, never off.
func ConfigFor(mf *mapping.File, cfg Config) (Config, error) {
	cfg.StrictNamespaces = cfg.StrictNamespaces || mf.Target.StrictNamespaces
	cfg.StopOnError = cfg.StopOnError || mf.Options.StopOnError

	if len(mf.Options.Conversions) > 0 {
		cats, err := mf.Options.Categories()
		if err != nil {
			return cfg, err
		}

		cfg.Categories = cats
	}

	return cfg, nil
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger; the default discards everything.
func WithLogger(log logr.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// WithHook replaces the default conversion hook.
func WithHook(hook field.ConversionHook) Option {
	return func(s *Session) {
		s.hook = hook
	}
}

// WithSink streams every record to sink as well.
func WithSink(sink diagnostic.Sink) Option {
	return func(s *Session) {
		s.sink = sink
	}
}

// NewRegistry builds a namespace registry from the namespaces declared for
// one side of a mapping.
func NewRegistry(spec mapping.DocumentSpec) *namespace.Registry {
	return spec.Registry()
}
