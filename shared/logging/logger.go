package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	ReqId   = "RequestId"
	TraceId = "TraceId"
	DEBUG   = "DEBUG"
	INFO    = "INFO"
	WARN    = "WARN"
	ERROR   = "ERROR"
)

type traceKey string

const traceIdKey = traceKey(TraceId)

var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(X-Amz-Security-Token|X-Amz-Signature|X-Amz-Credential|Authorization|password|token|apiKey)=([^&\s]+)`),
	regexp.MustCompile(`(?i)(Authorization|password|token|apiKey)[\s:=]+([^&\s]+)`),
}

// Logger represents a structured logger
type Logger interface {
	IsDebugEnabled() bool
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Infoc(ctx context.Context, msg string, args ...any)
	Debugc(ctx context.Context, msg string, args ...any)
	Warnc(ctx context.Context, msg string, args ...any)
	Errorc(ctx context.Context, msg string, args ...any)
	DebugJSONc(ctx context.Context, msg string, obj any)
}

type slogger struct {
	logger *slog.Logger
	level  slog.Level
}

// New creates a structured logger using the JSON Handler.
func New(level string, dest io.Writer) Logger {
	if dest == nil {
		dest = os.Stdout
	}
	logLevel := ParseLevel(level)
	handler := slog.NewJSONHandler(dest, &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
			}
			return a
		},
	})
	return &slogger{logger: slog.New(handler), level: logLevel}
}

// ParseLevel returns slog level for text level, info by default
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case DEBUG:
		return slog.LevelDebug
	case WARN:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// WithTraceId returns context with a trace id, a random one is generated for empty id
func WithTraceId(ctx context.Context, traceId string) context.Context {
	if traceId == "" {
		traceId = uuid.New().String()
	}
	return context.WithValue(ctx, traceIdKey, traceId)
}

// TraceIdFromContext returns context trace id
func TraceIdFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceId, _ := ctx.Value(traceIdKey).(string)
	return traceId
}

func (s *slogger) IsDebugEnabled() bool {
	return s.level.Level() <= slog.LevelDebug
}

func (s *slogger) enabled(level slog.Level) bool {
	return s.level.Level() <= level
}

// getCallerInfo extracts calling function details from the stack frame.
func (s *slogger) getCallerInfo() []any {
	callers := make([]uintptr, 1)
	if count := runtime.Callers(4, callers); count == 0 {
		return nil
	}
	frame, _ := runtime.CallersFrames(callers).Next()
	return []any{"function", frame.Function, "file", frame.File, "line", frame.Line}
}

// getContextValues retrieves Lambda request id and trace id from the Context.
func (s *slogger) getContextValues(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	var values []any
	if lambdaContext, ok := lambdacontext.FromContext(ctx); ok && lambdaContext.AwsRequestID != "" {
		values = append(values, ReqId, lambdaContext.AwsRequestID)
	}
	if traceId := TraceIdFromContext(ctx); traceId != "" {
		values = append(values, TraceId, traceId)
	}
	return values
}

func (s *slogger) log(ctx context.Context, level slog.Level, msg string, args []any) {
	if !s.enabled(level) {
		return
	}
	attrs := s.getCallerInfo()
	attrs = append(attrs, s.getContextValues(ctx)...)
	attrs = append(attrs, redactArgs(args)...)
	s.logger.Log(context.Background(), level, msg, attrs...)
}

func (s *slogger) Info(msg string, args ...any) {
	s.log(context.Background(), slog.LevelInfo, msg, args)
}

func (s *slogger) Debug(msg string, args ...any) {
	s.log(context.Background(), slog.LevelDebug, msg, args)
}

func (s *slogger) Warn(msg string, args ...any) {
	s.log(context.Background(), slog.LevelWarn, msg, args)
}

func (s *slogger) Error(msg string, args ...any) {
	s.log(context.Background(), slog.LevelError, msg, args)
}

// Infoc logs with known values retrieved from the context
func (s *slogger) Infoc(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelInfo, msg, args)
}

func (s *slogger) Debugc(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelDebug, msg, args)
}

func (s *slogger) Warnc(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelWarn, msg, args)
}

func (s *slogger) Errorc(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelError, msg, args)
}

// DebugJSONc logs obj as JSON, an API Gateway request is logged without authorization headers
func (s *slogger) DebugJSONc(ctx context.Context, msg string, obj any) {
	if !s.IsDebugEnabled() {
		return
	}
	var jsonData []byte
	if request, ok := obj.(*events.APIGatewayProxyRequest); ok && request != nil {
		clone := *request
		clone.Headers = redactHeaders(request.Headers)
		clone.MultiValueHeaders = nil
		jsonData, _ = json.Marshal(clone)
	} else {
		jsonData, _ = json.Marshal(obj)
	}
	s.log(ctx, slog.LevelDebug, fmt.Sprintf("%s %s", msg, jsonData), nil)
}

func redactHeaders(headers map[string]string) map[string]string {
	if headers == nil {
		return nil
	}
	result := make(map[string]string, len(headers))
	for k, v := range headers {
		if isSensitiveKey(k) {
			v = "[REDACTED]"
		}
		result[k] = v
	}
	return result
}

// redactArgs applies redaction rules to key/value pairs.
func redactArgs(args []any) []any {
	result := make([]any, len(args))
	copy(result, args)
	for i := 0; i+1 < len(result); i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}
		if isSensitiveKey(key) {
			result[i+1] = "[REDACTED]"
			continue
		}
		if text, ok := result[i+1].(string); ok {
			result[i+1] = redactSensitiveInfo(text)
		}
	}
	return result
}

// redactSensitiveInfo redacts known patterns in a string (e.g., tokens in URLs).
func redactSensitiveInfo(value string) string {
	redacted := value
	for _, pattern := range sensitivePatterns {
		redacted = pattern.ReplaceAllString(redacted, "$1=[REDACTED]")
	}
	return redacted
}

// isSensitiveKey returns true if the key is known to contain sensitive data.
func isSensitiveKey(key string) bool {
	switch strings.ToLower(key) {
	case "authorization", "token", "apikey", "password",
		"credential", "secret", "access_key", "secret_key":
		return true
	}
	return false
}
