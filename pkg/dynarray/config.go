package dynarray

import (
	"go.llib.dev/frameless/pkg/env"
	"go.llib.dev/frameless/port/option"
)

const (
	DefaultGrowthFactor  = 2
	DefaultMinCapacity   = 4
	DefaultMaxAllocBytes = int64(1 << 40)
)

// Config controls how an Array manages its buffer.
//
// Config is an Option as well, so a loaded Config can be passed directly to New.
type Config struct {
	// GrowthFactor is the multiplier applied to the capacity when the buffer is full.
	GrowthFactor int `env:"CONTAINERKIT_ARRAY_GROWTH_FACTOR" default:"2"`
	// MinCapacity is the smallest buffer allocated on the first growth.
	MinCapacity int `env:"CONTAINERKIT_ARRAY_MIN_CAPACITY" default:"4"`
	// MaxAllocBytes is the ceiling for a single buffer allocation.
	MaxAllocBytes int64 `env:"CONTAINERKIT_ARRAY_MAX_ALLOC_BYTES" default:"1099511627776"`
}

type Option = option.Option[Config]

func (c *Config) Init() {
	c.GrowthFactor = DefaultGrowthFactor
	c.MinCapacity = DefaultMinCapacity
	c.MaxAllocBytes = DefaultMaxAllocBytes
}

func (c Config) Configure(t *Config) {
	if 0 < c.GrowthFactor {
		t.GrowthFactor = c.GrowthFactor
	}
	if 0 < c.MinCapacity {
		t.MinCapacity = c.MinCapacity
	}
	if 0 < c.MaxAllocBytes {
		t.MaxAllocBytes = c.MaxAllocBytes
	}
}

func (c Config) normalise() Config {
	if c.GrowthFactor < 2 {
		c.GrowthFactor = DefaultGrowthFactor
	}
	if c.MinCapacity <= 0 {
		c.MinCapacity = DefaultMinCapacity
	}
	if c.MaxAllocBytes <= 0 {
		c.MaxAllocBytes = DefaultMaxAllocBytes
	}
	return c
}

// LoadConfig reads the Config from the environment.
func LoadConfig() (Config, error) {
	var c Config
	if err := env.Load(&c); err != nil {
		return Config{}, err
	}
	return c.normalise(), nil
}

func WithGrowthFactor(n int) Option {
	return option.Func[Config](func(c *Config) { c.GrowthFactor = n })
}

func WithMinCapacity(n int) Option {
	return option.Func[Config](func(c *Config) { c.MinCapacity = n })
}

func WithMaxAllocBytes(n int64) Option {
	return option.Func[Config](func(c *Config) { c.MaxAllocBytes = n })
}

var defaultConfig = option.ToConfig[Config, Option](nil)
