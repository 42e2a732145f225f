package ezq

import (
	"fmt"
	"runtime"

	"github.com/kelseyhightower/envconfig"
)

// Config carries the fan-out defaults. It is read once at process start and
// threaded through a System explicitly; nothing in the package reads the
// environment after that.
type Config struct {
	// IsolatedWorkers is the default isolated fan-out. Zero resolves to the
	// number of available processing units.
	IsolatedWorkers int `envconfig:"EZQ_ISOLATED_WORKERS"`

	// SharedWorkers is the default shared fan-out. Zero resolves to
	// min(32, processing units + 4).
	SharedWorkers int `envconfig:"EZQ_SHARED_WORKERS"`
}

// LoadConfig reads configuration from the environment and resolves zero
// values against the host.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("ezq: load config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.IsolatedWorkers <= 0 {
		c.IsolatedWorkers = runtime.NumCPU()
	}
	if c.SharedWorkers <= 0 {
		c.SharedWorkers = min(32, runtime.NumCPU()+4)
	}
}
