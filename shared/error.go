package shared

import (
	"github.com/pkg/errors"
	"net/http"
)

//ResponseError carries a status code for an error response
type ResponseError struct {
	StatusCode int
	Origin     error
}

func (e *ResponseError) Error() string {
	return e.Origin.Error()
}

func (e *ResponseError) Unwrap() error {
	return e.Origin
}

//NewResponseError creates a response error
func NewResponseError(statusCode int, origin error) *ResponseError {
	return &ResponseError{StatusCode: statusCode, Origin: origin}
}

//StatusCode returns error status code, internal server error by default
func StatusCode(err error) int {
	var responseError *ResponseError
	if errors.As(err, &responseError) && responseError.StatusCode != 0 {
		return responseError.StatusCode
	}
	return http.StatusInternalServerError
}
