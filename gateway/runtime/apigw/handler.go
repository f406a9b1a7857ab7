package apigw

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/viant/gmetric"
	"github.com/viant/gmetric/provider"
	"github.com/viant/gwresponse/logger"
	"github.com/viant/gwresponse/response"
	"github.com/viant/gwresponse/shared"
	"github.com/viant/gwresponse/shared/logging"
)

const metricLocation = "github.com/viant/gwresponse/gateway/runtime/apigw"

type (
	// Func builds a response for a proxy request, a nil builder results in no content response
	Func func(ctx context.Context, request *events.APIGatewayProxyRequest) (*response.Builder, error)

	// Handler represents lambda.Start compatible handler
	Handler func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

	// Service adapts response builders to API Gateway proxy integration
	Service struct {
		config  *Config
		metrics *gmetric.Service
		logger  logging.Logger
	}
)

// New creates a service
func New(ctx context.Context, opts ...Option) (*Service, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.config == nil && o.configURL != "" {
		var err error
		if o.config, err = NewConfigFromURL(ctx, o.configURL); err != nil {
			return nil, err
		}
	}
	if o.config == nil {
		o.config = &Config{}
	}
	o.config.Init()
	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	if o.metrics == nil {
		o.metrics = gmetric.New()
	}
	if o.logger == nil {
		o.logger = logging.New(o.config.LogLevel, nil)
	}
	return &Service{config: o.config, metrics: o.metrics, logger: o.logger}, nil
}

// Config returns service config
func (s *Service) Config() *Config {
	return s.config
}

// Metrics returns service metrics
func (s *Service) Metrics() *gmetric.Service {
	return s.metrics
}

// Handler returns handler building response with fn
func (s *Service) Handler(name string, fn Func) Handler {
	counter := s.counter(name)
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		ctx = logging.WithTraceId(ctx, request.RequestContext.RequestID)
		onDone := counter.Begin(time.Now())
		defer func() { onDone(time.Now()) }()
		s.logger.DebugJSONc(ctx, name+" request", &request)

		resp, err := s.build(ctx, &request, fn)
		if err != nil {
			counter.Count(logger.Error)
			s.logger.Errorc(ctx, "failed to build response", "handler", name, "error", err.Error())
			resp = NewErrorResponse(err)
		} else {
			counter.Count(logger.Success)
		}
		if resp.IsCompressed() {
			counter.Count(logger.Compressed)
		}
		proxy := NewResponse(resp, s.config.Headers)
		setCORSHeaderIfNeeded(s.config.CORS, &request, proxy)
		s.logger.Infoc(ctx, "response", "handler", name, "statusCode", proxy.StatusCode, "compressed", resp.IsCompressed(), "size", len(proxy.Body))
		return *proxy, nil
	}
}

func (s *Service) build(ctx context.Context, request *events.APIGatewayProxyRequest, fn Func) (*response.Response, error) {
	builder, err := fn(ctx, request)
	if err != nil {
		return nil, err
	}
	if builder == nil {
		builder = response.NewBuilder().StatusCode(http.StatusNoContent)
	}
	if limit := s.config.CompressionLimit; limit > 0 && !builder.IsGzip() && builder.IsJSON() && builder.BodySize() > limit {
		builder.Gzip()
	}
	resp, err := builder.Build()
	if err != nil {
		return nil, err
	}
	if size := len(resp.Body()); size > s.config.BodyLimit {
		return nil, shared.NewResponseError(http.StatusRequestEntityTooLarge, fmt.Errorf("response body size %v exceeded limit %v", size, s.config.BodyLimit))
	}
	return resp, nil
}

func (s *Service) counter(name string) *logger.CounterAdapter {
	metricName := "apigw." + name + ".response"
	operation := s.metrics.LookupOperation(metricName)
	if operation == nil {
		operation = s.metrics.MultiOperationCounter(metricLocation, metricName, name+" response", time.Millisecond, time.Minute, 2, provider.NewBasic())
	}
	return logger.NewCounter(operation)
}
