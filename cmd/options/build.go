package options

import (
	"fmt"
	"strings"
)

// StdIn location denoting standard input
const StdIn = "-"

type Build struct {
	JSONURL string   `short:"j" long:"json" description:"json body location, - for stdin"`
	Text    string   `short:"t" long:"text" description:"raw text body"`
	Status  int      `short:"s" long:"status" description:"status code" default:"200"`
	Headers []string `short:"H" long:"header" description:"response header name:value"`
	Gzip    bool     `short:"z" long:"gzip" description:"compress body"`
	Base64  bool     `short:"b" long:"base64" description:"flag body as base64 encoded"`
	headers map[string]interface{}
}

func (b *Build) Init() error {
	if b.JSONURL != "" && b.Text != "" {
		return fmt.Errorf("json and text body are mutually exclusive")
	}
	if b.JSONURL != "" && b.JSONURL != StdIn {
		b.JSONURL = ensureAbsPath(b.JSONURL)
	}
	b.headers = map[string]interface{}{}
	for _, header := range b.Headers {
		index := strings.Index(header, ":")
		if index <= 0 {
			return fmt.Errorf("invalid header: %v, expected name:value", header)
		}
		b.headers[strings.TrimSpace(header[:index])] = strings.TrimSpace(header[index+1:])
	}
	return nil
}

// HeaderMap returns parsed headers
func (b *Build) HeaderMap() map[string]interface{} {
	return b.headers
}
