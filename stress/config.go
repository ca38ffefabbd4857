package stress

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Default configuration values.
const (
	DefaultThreads    = 4
	DefaultIterations = 10000
	DefaultTimeoutMs  = 50
)

// Config selects and sizes the workloads to run.
type Config struct {
	Threads    int      `yaml:"threads"`
	Iterations int      `yaml:"iterations"`
	TimeoutMs  int      `yaml:"timeoutms"`
	Workloads  []string `yaml:"workloads"`
	Debug      string   `yaml:"debug"`
}

// LoadConfig reads a YAML config file. Missing fields keep their zero value
// until Validate fills in defaults.
func LoadConfig(path string) (*Config, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.UnmarshalStrict(dat, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate applies defaults and rejects unknown workloads. Zero or negative
// sizes and timeouts mean "use the default", whether they came from a file
// or from flags.
func (c *Config) Validate() error {
	if c.Threads <= 0 {
		c.Threads = DefaultThreads
	}
	if c.Iterations <= 0 {
		c.Iterations = DefaultIterations
	}
	if c.TimeoutMs <= 0 {
		c.TimeoutMs = DefaultTimeoutMs
	}
	if len(c.Workloads) == 0 {
		c.Workloads = WorkloadNames()
	}
	for _, name := range c.Workloads {
		if _, ok := workloads[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownWorkload, name)
		}
	}
	return nil
}
