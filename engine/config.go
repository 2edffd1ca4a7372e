package engine

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yml
var defaultConfig []byte

// Config models the subset of the vroom-express configuration the engine
// reads from /conf/config.yml.
type Config struct {
	CLIArgs        CLIArgs                             `yaml:"cliArgs"`
	RoutingServers map[string]map[string]RoutingServer `yaml:"routingServers"`
}

// CLIArgs holds the engine's command-line settings.
type CLIArgs struct {
	Geometry     bool   `yaml:"geometry"`
	PlanMode     bool   `yaml:"planmode"`
	Router       string `yaml:"router"`
	MaxLocations int    `yaml:"maxlocations"`
	MaxVehicles  int    `yaml:"maxvehicles"`
	Limit        string `yaml:"limit"`
	Port         int    `yaml:"port"`
	Timeout      int    `yaml:"timeout"`
	BaseURL      string `yaml:"baseurl"`
}

// RoutingServer is one routing backend instance, keyed in RoutingServers
// by router name and then profile (car, bike, ...).
type RoutingServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

var knownRouters = map[string]bool{
	"osrm":     true,
	"valhalla": true,
	"ors":      true,
}

// LoadConfig parses a vroom-express config.yml.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the selected router is one the engine supports and
// has at least one routing server configured.
func (c *Config) Validate() error {
	router := c.CLIArgs.Router
	if !knownRouters[router] {
		return fmt.Errorf("unknown router %q (expected osrm, valhalla or ors)", router)
	}
	if len(c.RoutingServers[router]) == 0 {
		return fmt.Errorf("no routing servers configured for router %q", router)
	}
	return nil
}

// WriteDefaultConfig seeds path with the embedded default config.yml.
func WriteDefaultConfig(path string) error {
	return os.WriteFile(path, defaultConfig, 0o644)
}
