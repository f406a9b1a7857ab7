package command

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/gwresponse/cmd/options"
	"github.com/viant/gwresponse/response"
)

// Service executes CLI commands
type Service struct {
	fs     afs.Service
	stdin  io.Reader
	stdout io.Writer
}

// Exec executes selected command
func (s *Service) Exec(ctx context.Context, opts *options.Options) error {
	if opts.Build != nil {
		return s.Build(ctx, opts.Build)
	}
	if opts.Decode != nil {
		return s.Decode(ctx, opts.Decode)
	}
	return nil
}

// Build writes proxy response JSON built from options
func (s *Service) Build(ctx context.Context, opts *options.Build) error {
	builder := response.NewBuilder().Headers(opts.HeaderMap()).StatusCode(opts.Status).Base64Encoded(opts.Base64)
	if opts.JSONURL != "" {
		data, err := s.load(ctx, opts.JSONURL)
		if err != nil {
			return err
		}
		var body interface{}
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber()
		if err = decoder.Decode(&body); err != nil {
			return errors.Wrapf(err, "failed to parse json body: %v", opts.JSONURL)
		}
		builder.JSON(body)
	} else if opts.Text != "" {
		builder.Body(opts.Text)
	}
	if opts.Gzip {
		builder.Gzip()
	}
	resp, err := builder.Build()
	if err != nil {
		return err
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(s.stdout, "%s\n", data)
	return err
}

// Decode writes decoded body of proxy response JSON
func (s *Service) Decode(ctx context.Context, opts *options.Decode) error {
	data, err := s.load(ctx, opts.SourceURL)
	if err != nil {
		return err
	}
	proxy := &events.APIGatewayProxyResponse{}
	if err = json.Unmarshal(data, proxy); err != nil {
		return errors.Wrapf(err, "failed to parse proxy response: %v", opts.SourceURL)
	}
	body, err := response.FromProxyResponse(proxy).DecodedBody()
	if err != nil {
		return err
	}
	_, err = s.stdout.Write(body)
	return err
}

func (s *Service) load(ctx context.Context, URL string) ([]byte, error) {
	if URL == options.StdIn {
		return io.ReadAll(s.stdin)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load: %v", URL)
	}
	return data, nil
}

// New creates a command service
func New(stdin io.Reader, stdout io.Writer) *Service {
	return &Service{fs: afs.New(), stdin: stdin, stdout: stdout}
}
