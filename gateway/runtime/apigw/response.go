package apigw

import (
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/viant/gwresponse/response"
	"github.com/viant/gwresponse/shared"
)

// ErrorBody represents an error response body
type ErrorBody struct {
	Message string `json:"message"`
}

// NewResponse returns API Gateway response, response headers take precedence over defaults
func NewResponse(resp *response.Response, defaults map[string]string) *events.APIGatewayProxyResponse {
	proxy := resp.ProxyResponse()
	if len(defaults) == 0 {
		return &proxy
	}
	headers := make(map[string]string, len(defaults)+len(proxy.Headers))
	for k, v := range defaults {
		if !hasHeader(proxy.Headers, k) {
			headers[k] = v
		}
	}
	for k, v := range proxy.Headers {
		headers[k] = v
	}
	proxy.Headers = headers
	return &proxy
}

// NewErrorResponse returns json error response with a status code derived from err
func NewErrorResponse(err error) *response.Response {
	resp, buildErr := response.NewBuilder().
		StatusCode(shared.StatusCode(err)).
		JSON(&ErrorBody{Message: err.Error()}).
		Build()
	if buildErr != nil {
		resp, _ = response.NewBuilder().StatusCode(http.StatusInternalServerError).Body(err.Error()).Build()
	}
	return resp
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}
