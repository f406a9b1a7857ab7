package apigw

import (
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/viant/gwresponse/utils/httputils"
)

// setCORSHeaderIfNeeded sets CORS headers for a request with Origin header
func setCORSHeaderIfNeeded(cors *CORS, apiRequest *events.APIGatewayProxyRequest, response *events.APIGatewayProxyResponse) {
	if cors == nil {
		return
	}
	origin := requestHeader(apiRequest, httputils.OriginHeader)
	if origin == "" {
		return
	}
	if len(response.Headers) == 0 {
		response.Headers = make(map[string]string)
	}
	if cors.AllowCredentials != nil && *cors.AllowCredentials {
		response.Headers[httputils.AllowCredentialsHeader] = "true"
	}
	response.Headers[httputils.AllowOriginHeader] = origin
	response.Headers[httputils.AllowMethodsHeader] = strings.Join(cors.AllowMethods, " ")
	response.Headers[httputils.AllowHeadersHeader] = strings.Join(cors.AllowHeaders, ", ")
	response.Headers[httputils.MaxAgeHeader] = strconv.Itoa(cors.MaxAge)
}

func requestHeader(apiRequest *events.APIGatewayProxyRequest, name string) string {
	if value, ok := apiRequest.Headers[name]; ok {
		return value
	}
	for key, value := range apiRequest.Headers {
		if strings.EqualFold(key, name) {
			return value
		}
	}
	return ""
}
