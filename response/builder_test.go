package response

import (
	"bytes"
	"encoding/base64"
	"math/big"
	"net/http"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/viant/gwresponse/shared"
)

func TestBuilder_Headers(t *testing.T) {
	testCases := []struct {
		description string
		headers     []map[string]interface{}
		expect      map[string]interface{}
	}{
		{
			description: "disjoint keys are merged",
			headers: []map[string]interface{}{
				{"X-A": "1"},
				{"X-B": "2"},
			},
			expect: map[string]interface{}{"X-A": "1", "X-B": "2"},
		},
		{
			description: "last write wins",
			headers: []map[string]interface{}{
				{"X-A": "1", "X-C": 3},
				{"X-A": "2"},
			},
			expect: map[string]interface{}{"X-A": "2", "X-C": 3},
		},
		{
			description: "case-insensitive collision keeps last spelling",
			headers: []map[string]interface{}{
				{"Cache-Control": "no-cache"},
				{"cache-control": "max-age=60"},
			},
			expect: map[string]interface{}{"cache-control": "max-age=60"},
		},
		{
			description: "empty merge",
			headers: []map[string]interface{}{
				{},
				nil,
			},
			expect: map[string]interface{}{},
		},
	}

	for _, testCase := range testCases {
		builder := NewBuilder()
		for _, headers := range testCase.headers {
			builder.Headers(headers)
		}
		actual, err := builder.Build()
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, actual.Headers(), testCase.description)
		_, nested := actual.Header("headers")
		assert.False(t, nested, testCase.description)
	}
}

func TestBuilder_Build(t *testing.T) {
	type item struct {
		ID  int64    `json:"id"`
		Big *big.Int `json:"big"`
	}
	testCases := []struct {
		description   string
		builder       *Builder
		expectStatus  int
		expectHeaders map[string]interface{}
		expectBody    string
		expectBase64  bool
		expectDecoded string
		expectErr     bool
	}{
		{
			description:   "json body with status",
			builder:       NewBuilder().JSON(map[string]interface{}{"id": 1, "name": "a"}).StatusCode(http.StatusCreated),
			expectStatus:  http.StatusCreated,
			expectHeaders: map[string]interface{}{"content-type": "application/json"},
			expectBody:    `{"id":1,"name":"a"}`,
			expectDecoded: `{"id":1,"name":"a"}`,
		},
		{
			description:   "struct body with large integers",
			builder:       NewBuilder().JSON(&item{ID: 9007199254740993, Big: big.NewInt(9007199254740993)}),
			expectStatus:  http.StatusOK,
			expectHeaders: map[string]interface{}{"content-type": "application/json"},
			expectBody:    `{"id":"9007199254740993","big":"9007199254740993"}`,
			expectDecoded: `{"id":"9007199254740993","big":"9007199254740993"}`,
		},
		{
			description:   "default status",
			builder:       NewBuilder(),
			expectStatus:  http.StatusOK,
			expectHeaders: map[string]interface{}{},
		},
		{
			description:   "not found status",
			builder:       NewBuilder().StatusCode(http.StatusNotFound),
			expectStatus:  http.StatusNotFound,
			expectHeaders: map[string]interface{}{},
		},
		{
			description:   "base64 flag without compression",
			builder:       NewBuilder().Body("aGVsbG8=").Base64Encoded(true),
			expectStatus:  http.StatusOK,
			expectHeaders: map[string]interface{}{},
			expectBody:    "aGVsbG8=",
			expectBase64:  true,
			expectDecoded: "hello",
		},
		{
			description:  "gzip big int body",
			builder:      NewBuilder().JSON(map[string]interface{}{"big": new(big.Int).SetUint64(9007199254740993)}).Gzip(),
			expectStatus: http.StatusOK,
			expectHeaders: map[string]interface{}{
				"Content-Type":     "application/json",
				"Content-Encoding": "gzip",
				"accept-encoding":  "gzip,deflate",
			},
			expectBase64:  true,
			expectDecoded: `{"big":"9007199254740993"}`,
		},
		{
			description: "gzip headers take precedence",
			builder: NewBuilder().Headers(map[string]interface{}{
				"Content-Encoding": "identity",
				"X-Trace":          "abc",
			}).JSON(map[string]interface{}{"id": 1}).Gzip(),
			expectStatus: http.StatusOK,
			expectHeaders: map[string]interface{}{
				"Content-Type":     "application/json",
				"Content-Encoding": "gzip",
				"accept-encoding":  "gzip,deflate",
				"X-Trace":          "abc",
			},
			expectBase64:  true,
			expectDecoded: `{"id":1}`,
		},
		{
			description:  "gzip without body compresses empty text",
			builder:      NewBuilder().Gzip(),
			expectStatus: http.StatusOK,
			expectHeaders: map[string]interface{}{
				"Content-Type":     "application/json",
				"Content-Encoding": "gzip",
				"accept-encoding":  "gzip,deflate",
			},
			expectBase64:  true,
			expectDecoded: "",
		},
		{
			description: "serialization error",
			builder: func() *Builder {
				aMap := map[string]interface{}{}
				aMap["self"] = aMap
				return NewBuilder().JSON(aMap)
			}(),
			expectErr: true,
		},
	}

	for _, testCase := range testCases {
		actual, err := testCase.builder.Build()
		if testCase.expectErr {
			assert.NotNil(t, err, testCase.description)
			assert.Nil(t, actual, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expectStatus, actual.StatusCode(), testCase.description)
		assert.Equal(t, testCase.expectHeaders, actual.Headers(), testCase.description)
		assert.Equal(t, testCase.expectBase64, actual.IsBase64Encoded(), testCase.description)
		if testCase.expectBody != "" {
			assert.Equal(t, testCase.expectBody, actual.Body(), testCase.description)
		}
		decoded, err := actual.DecodedBody()
		assert.Nil(t, err, testCase.description)
		assert.Equal(t, testCase.expectDecoded, string(decoded), testCase.description)
	}
}

func TestBuilder_Gzip_RoundTrip(t *testing.T) {
	body := map[string]interface{}{
		"id":    1,
		"name":  "<round trip>",
		"items": []interface{}{"a", 2, true, nil},
		"big":   int64(-9007199254740993),
	}
	plain, err := NewBuilder().JSON(body).Build()
	assert.Nil(t, err)

	compressed, err := NewBuilder().JSON(body).Gzip().Build()
	assert.Nil(t, err)
	assert.True(t, compressed.IsBase64Encoded())

	data, err := base64.StdEncoding.DecodeString(compressed.Body())
	assert.Nil(t, err)
	text, err := shared.Decompress(bytes.NewReader(data))
	assert.Nil(t, err)
	assert.Equal(t, plain.Body(), string(text))

	parsed := map[string]interface{}{}
	assert.Nil(t, json.Unmarshal(text, &parsed))
	assert.Equal(t, map[string]interface{}{
		"id":    float64(1),
		"name":  "<round trip>",
		"items": []interface{}{"a", float64(2), true, nil},
		"big":   "-9007199254740993",
	}, parsed)
}

func TestBuilder_Build_Repeatable(t *testing.T) {
	builder := NewBuilder().JSON(map[string]interface{}{"id": 1}).Gzip()
	first, err := builder.Build()
	assert.Nil(t, err)
	second, err := builder.Build()
	assert.Nil(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, `{"id":1}`, builder.body)
	assert.Equal(t, 8, builder.BodySize())
	assert.True(t, builder.IsGzip())
}

func TestBuilder_IsJSON(t *testing.T) {
	testCases := []struct {
		description string
		builder     *Builder
		expect      bool
	}{
		{description: "json body", builder: NewBuilder().JSON(map[string]interface{}{"id": 1}), expect: true},
		{description: "json with charset", builder: NewBuilder().Header("Content-Type", "application/json; charset=utf-8"), expect: true},
		{description: "html body", builder: NewBuilder().Header("Content-Type", "text/html").Body("<p>"), expect: false},
		{description: "no content type", builder: NewBuilder().Body("text"), expect: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.builder.IsJSON(), testCase.description)
	}
}
