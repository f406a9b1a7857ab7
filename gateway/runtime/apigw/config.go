package apigw

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/gwresponse/shared/logging"
	"github.com/viant/toolbox"
	"gopkg.in/yaml.v3"
)

const (
	//CompressionLimit body size above which a response gets compressed
	CompressionLimit = 2 * 1024 * 1024
	//BodyLimit API Gateway payload limit with some headroom for headers
	BodyLimit = (6 * 1024 * 1024) - 128*1024
)

type (
	//Config represents API Gateway adapter config
	Config struct {
		URL              string
		CompressionLimit int //negative disables compression
		BodyLimit        int
		LogLevel         string
		Headers          map[string]string
		CORS             *CORS
	}

	//CORS represents CORS response headers config
	CORS struct {
		AllowCredentials *bool
		AllowMethods     []string
		AllowHeaders     []string
		MaxAge           int
	}
)

// Init initialises config defaults
func (c *Config) Init() {
	if c.CompressionLimit == 0 {
		c.CompressionLimit = CompressionLimit
	}
	if c.BodyLimit == 0 {
		c.BodyLimit = BodyLimit
	}
	if c.LogLevel == "" {
		c.LogLevel = logging.INFO
	}
	if c.CORS != nil {
		c.CORS.Init()
	}
}

// Validate validates config
func (c *Config) Validate() error {
	if c.BodyLimit <= 0 {
		return fmt.Errorf("invalid BodyLimit: %v", c.BodyLimit)
	}
	return nil
}

// Init initialises CORS defaults
func (c *CORS) Init() {
	if c.AllowCredentials == nil {
		allow := true
		c.AllowCredentials = &allow
	}
	if len(c.AllowMethods) == 0 {
		c.AllowMethods = []string{"POST", "GET"}
	}
	if len(c.AllowHeaders) == 0 {
		c.AllowHeaders = []string{"Content-Type", "*"}
	}
	if c.MaxAge == 0 {
		c.MaxAge = 120
	}
}

// NewConfigFromURL loads yaml or json config
func NewConfigFromURL(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to download config: %v", URL)
	}
	aMap := map[string]interface{}{}
	if strings.HasSuffix(URL, "yaml") || strings.HasSuffix(URL, "yml") {
		if err := yaml.Unmarshal(data, &aMap); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config %v due to the: %w", URL, err)
		}
	} else {
		if err := json.Unmarshal(data, &aMap); err != nil {
			return nil, fmt.Errorf("failed to parse json config %v due to the: %w", URL, err)
		}
	}
	cfg := &Config{}
	if err = toolbox.DefaultConverter.AssignConverted(cfg, aMap); err != nil {
		return nil, errors.Wrapf(err, "failed to assign config: %v", URL)
	}
	cfg.URL = URL
	cfg.Init()
	return cfg, cfg.Validate()
}
