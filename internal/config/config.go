package config

import (
	"time"

	"github.com/evgeniy-krivenko/flomo-relay/internal/flomo"
)

type Config struct {
	App    AppConfig    `yaml:"app" env-prefix:"APP_"`
	Flomo  FlomoConfig  `yaml:"flomo" env-prefix:"FLOMO_"`
	HTTP   HTTPConfig   `yaml:"http" env-prefix:"HTTP_"`
	GRPC   GRPCConfig   `yaml:"grpc" env-prefix:"GRPC_"`
	MCP    MCPConfig    `yaml:"mcp" env-prefix:"MCP_"`
	Client ClientConfig `yaml:"client"`
}

type AppConfig struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
	Pretty   bool   `yaml:"pretty" env:"PRETTY" env-default:"false" env-description:"colored human readable logs"`
}

type FlomoConfig struct {
	APIURL    string        `yaml:"api_url" env:"API_URL" env-description:"flomo incoming webhook url"`
	Timeout   time.Duration `yaml:"timeout" env:"TIMEOUT" env-default:"15s" env-description:"timeout of one flomo request"`
	UserAgent string        `yaml:"user_agent" env:"USER_AGENT" env-default:"flomo-relay-go/1.0"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" env:"ADDR" env-default:"0.0.0.0:12345"`
}

type GRPCConfig struct {
	Addr                 string        `yaml:"addr" env:"ADDR" env-default:":50051"`
	KeepaliveTime        time.Duration `yaml:"keepalive_time" env:"KEEPALIVE_TIME" env-default:"60s"`
	KeepaliveTimeout     time.Duration `yaml:"keepalive_timeout" env:"KEEPALIVE_TIMEOUT" env-default:"30s"`
	MaxConcurrentStreams uint32        `yaml:"max_concurrent_streams" env:"MAX_CONCURRENT_STREAMS" env-default:"50"`
}

type MCPConfig struct {
	Addr      string `yaml:"addr" env:"ADDR" env-default:"127.0.0.1:8822"`
	Transport string `yaml:"transport" env:"TRANSPORT" env-default:"stdio" env-description:"stdio or http"`
}

type ClientConfig struct {
	ServerURL string `yaml:"server_url" env:"FLOMO_SERVER_URL" env-default:"http://localhost:12345" env-description:"relay url used by the cli"`
}

// Endpoint validates FLOMO_API_URL. Front ends that talk to Flomo directly
// call it once at startup and stop on error.
func (c Config) Endpoint() (flomo.Endpoint, error) {
	return flomo.ResolveEndpoint(c.Flomo.APIURL)
}
