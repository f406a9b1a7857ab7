package response

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/viant/afs/option/content"
	"github.com/viant/gwresponse/shared"
	"github.com/viant/gwresponse/utils/httputils"
	"github.com/viant/toolbox"
)

// Response represents an immutable proxy response
type Response struct {
	headers         map[string]interface{}
	statusCode      int
	body            string
	isBase64Encoded bool
}

type proxyResponse struct {
	StatusCode      int                    `json:"statusCode"`
	Headers         map[string]interface{} `json:"headers"`
	Body            string                 `json:"body"`
	IsBase64Encoded bool                   `json:"isBase64Encoded"`
}

func newResponse(headers map[string]interface{}, statusCode int, body string, isBase64Encoded bool) *Response {
	return &Response{
		headers:         headers,
		statusCode:      statusCode,
		body:            body,
		isBase64Encoded: isBase64Encoded,
	}
}

// FromProxyResponse creates a response from API Gateway proxy response
func FromProxyResponse(proxy *events.APIGatewayProxyResponse) *Response {
	headers := make(map[string]interface{}, len(proxy.Headers))
	for name, value := range proxy.Headers {
		headers[name] = value
	}
	for name, values := range proxy.MultiValueHeaders {
		if _, ok := headers[name]; !ok {
			headers[name] = strings.Join(values, ",")
		}
	}
	return newResponse(headers, proxy.StatusCode, proxy.Body, proxy.IsBase64Encoded)
}

// Headers returns a copy of response headers
func (r *Response) Headers() map[string]interface{} {
	result := make(map[string]interface{}, len(r.headers))
	for name, value := range r.headers {
		result[name] = value
	}
	return result
}

// Header returns header value for case-insensitive name
func (r *Response) Header(name string) (interface{}, bool) {
	if value, ok := r.headers[name]; ok {
		return value, true
	}
	for key, value := range r.headers {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return nil, false
}

// StatusCode returns status code
func (r *Response) StatusCode() int {
	return r.statusCode
}

// Body returns body text
func (r *Response) Body() string {
	return r.body
}

// IsBase64Encoded returns true if body has to be base64 decoded
func (r *Response) IsBase64Encoded() bool {
	return r.isBase64Encoded
}

// IsCompressed returns true if body is gzip encoded
func (r *Response) IsCompressed() bool {
	value, ok := r.Header(content.Encoding)
	return ok && strings.EqualFold(toolbox.AsString(value), httputils.EncodingGzip)
}

// DecodedBody returns payload bytes, base64 decoded and decompressed when needed
func (r *Response) DecodedBody() ([]byte, error) {
	if !r.isBase64Encoded {
		return []byte(r.body), nil
	}
	data, err := base64.StdEncoding.DecodeString(r.body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode base64 body")
	}
	if !r.IsCompressed() {
		return data, nil
	}
	if data, err = shared.Decompress(bytes.NewReader(data)); err != nil {
		return nil, errors.Wrap(err, "failed to decompress body")
	}
	return data, nil
}

// ProxyResponse returns API Gateway proxy response
func (r *Response) ProxyResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      r.statusCode,
		Headers:         r.stringHeaders(),
		Body:            r.body,
		IsBase64Encoded: r.isBase64Encoded,
	}
}

// FunctionURLResponse returns Lambda function URL response
func (r *Response) FunctionURLResponse() events.LambdaFunctionURLResponse {
	return events.LambdaFunctionURLResponse{
		StatusCode:      r.statusCode,
		Headers:         r.stringHeaders(),
		Body:            r.body,
		IsBase64Encoded: r.isBase64Encoded,
	}
}

// MarshalJSON returns host runtime response shape
func (r *Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(&proxyResponse{
		StatusCode:      r.statusCode,
		Headers:         r.headers,
		Body:            r.body,
		IsBase64Encoded: r.isBase64Encoded,
	})
}

func (r *Response) stringHeaders() map[string]string {
	result := make(map[string]string, len(r.headers))
	for name, value := range r.headers {
		result[name] = toolbox.AsString(value)
	}
	return result
}
