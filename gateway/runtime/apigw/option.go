package apigw

import (
	"github.com/viant/gmetric"
	"github.com/viant/gwresponse/shared/logging"
)

type options struct {
	config    *Config
	configURL string
	metrics   *gmetric.Service
	logger    logging.Logger
}

// Option represents a service option
type Option func(*options)

// WithConfig sets a config
func WithConfig(config *Config) Option {
	return func(o *options) {
		o.config = config
	}
}

// WithConfigURL sets a config URL
func WithConfigURL(URL string) Option {
	return func(o *options) {
		o.configURL = URL
	}
}

// WithMetrics sets a metrics service
func WithMetrics(metrics *gmetric.Service) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
