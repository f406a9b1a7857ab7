package httputils

const (
	AllowOriginHeader      = "Access-Control-Allow-Origin"
	AllowHeadersHeader     = "Access-Control-Allow-Headers"
	AllowMethodsHeader     = "Access-Control-Allow-Methods"
	AllowCredentialsHeader = "Access-Control-Allow-Credentials"
	MaxAgeHeader           = "Access-Control-Max-Age"

	OriginHeader = "Origin"

	//ContentTypeHeader lower-case content type as set by a json body
	ContentTypeHeader = "content-type"
	//AcceptEncodingHeader accept encoding hint added to compressed responses
	AcceptEncodingHeader = "accept-encoding"

	//ContentTypeJSON json content type
	ContentTypeJSON = "application/json"

	//EncodingGzip encoding gzip
	EncodingGzip = "gzip"
	//AcceptEncodingGzip accepted encodings advertised with a compressed body
	AcceptEncodingGzip = "gzip,deflate"
)
