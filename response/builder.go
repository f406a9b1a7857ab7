package response

import (
	"encoding/base64"
	"net/http"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/afs/option/content"
	"github.com/viant/gwresponse/shared"
	"github.com/viant/gwresponse/utils/httputils"
	"github.com/viant/toolbox"
)

// Builder accumulates response fields through chained calls, Build materializes an immutable Response.
// A builder is owned by a single request flow and is not safe for concurrent use.
type Builder struct {
	headers       map[string]interface{}
	statusCode    int
	body          string
	gzip          bool
	base64Encoded bool
	err           error
}

// NewBuilder creates a builder with 200 status code and no headers
func NewBuilder() *Builder {
	return &Builder{
		headers:    map[string]interface{}{},
		statusCode: http.StatusOK,
	}
}

// Headers merges supplied headers, the last written value wins on a name collision
func (b *Builder) Headers(headers map[string]interface{}) *Builder {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		setHeader(b.headers, name, headers[name])
	}
	return b
}

// Header sets a single header
func (b *Builder) Header(name string, value interface{}) *Builder {
	setHeader(b.headers, name, value)
	return b
}

// JSON sets json content type and body, a serialization error is returned by Build
func (b *Builder) JSON(body interface{}) *Builder {
	setHeader(b.headers, httputils.ContentTypeHeader, httputils.ContentTypeJSON)
	text, err := marshalJSON(body)
	if err != nil {
		if b.err == nil {
			b.err = errors.Wrap(err, "failed to marshal response body")
		}
		return b
	}
	b.body = text
	return b
}

// Body sets raw text body
func (b *Builder) Body(text string) *Builder {
	b.body = text
	return b
}

// StatusCode sets status code, the value is not validated
func (b *Builder) StatusCode(statusCode int) *Builder {
	b.statusCode = statusCode
	return b
}

// Base64Encoded flags body as base64 encoded
func (b *Builder) Base64Encoded(base64Encoded bool) *Builder {
	b.base64Encoded = base64Encoded
	return b
}

// Gzip marks body to be compressed on Build
func (b *Builder) Gzip() *Builder {
	b.gzip = true
	return b
}

// IsGzip returns true if body is compressed on Build
func (b *Builder) IsGzip() bool {
	return b.gzip
}

// IsJSON returns true if content type is json
func (b *Builder) IsJSON() bool {
	for name, value := range b.headers {
		if !strings.EqualFold(name, content.Type) {
			continue
		}
		mediaType, _, _ := strings.Cut(toolbox.AsString(value), ";")
		return strings.EqualFold(strings.TrimSpace(mediaType), httputils.ContentTypeJSON)
	}
	return false
}

// BodySize returns uncompressed body size
func (b *Builder) BodySize() int {
	return len(b.body)
}

// Build returns a response, the builder itself is left unchanged
func (b *Builder) Build() (*Response, error) {
	if b.err != nil {
		return nil, b.err
	}
	headers := make(map[string]interface{}, len(b.headers)+3)
	for name, value := range b.headers {
		headers[name] = value
	}
	body := b.body
	base64Encoded := b.base64Encoded
	if b.gzip {
		base64Encoded = true
		setHeader(headers, content.Type, httputils.ContentTypeJSON)
		setHeader(headers, content.Encoding, httputils.EncodingGzip)
		setHeader(headers, httputils.AcceptEncodingHeader, httputils.AcceptEncodingGzip)
		compressed, err := shared.Compress(strings.NewReader(body))
		if err != nil {
			return nil, errors.Wrap(err, "failed to compress response body")
		}
		body = base64.StdEncoding.EncodeToString(compressed.Bytes())
	}
	return newResponse(headers, b.statusCode, body, base64Encoded), nil
}

// setHeader sets header value replacing any case-insensitive match
func setHeader(headers map[string]interface{}, name string, value interface{}) {
	for key := range headers {
		if key != name && strings.EqualFold(key, name) {
			delete(headers, key)
		}
	}
	headers[name] = value
}
