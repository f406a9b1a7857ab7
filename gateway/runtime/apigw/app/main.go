package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/viant/gwresponse/cmd/build"
	"github.com/viant/gwresponse/gateway/runtime/apigw"
	"github.com/viant/gwresponse/response"
)

var (
	Version      = "development"
	BuildTimeInS string
)

func init() {
	if err := build.SetBuildTime(BuildTimeInS); err != nil {
		panic(err)
	}
}

func main() {
	service, err := apigw.New(context.Background(), apigw.WithConfigURL(os.Getenv("CONFIG_URL")))
	if err != nil {
		log.Fatal(err)
	}
	lambda.Start(service.Handler("ping", ping))
}

func ping(ctx context.Context, request *events.APIGatewayProxyRequest) (*response.Builder, error) {
	return response.NewBuilder().JSON(map[string]interface{}{
		"status":    "ok",
		"version":   Version,
		"goVersion": build.GoVersion,
		"buildTime": build.BuildTime,
	}), nil
}
