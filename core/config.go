package core

import (
	"fmt"
	"strings"
	"time"
)

type TokenConfig struct {
	Secret string        `koanf:"secret" mapstructure:"secret"`
	Issuer string        `koanf:"issuer" mapstructure:"issuer"`
	TTL    time.Duration `koanf:"ttl" mapstructure:"ttl"`
}

type HashConfig struct {
	Cost int `koanf:"cost" mapstructure:"cost"`
}

type Config struct {
	ServiceName string      `koanf:"service_name" mapstructure:"service_name"`
	Token       TokenConfig `koanf:"token" mapstructure:"token"`
	Hash        HashConfig  `koanf:"hash" mapstructure:"hash"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "guard",
		Token: TokenConfig{
			TTL: time.Hour,
		},
		Hash: HashConfig{
			Cost: 10,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if c.Token.TTL <= 0 {
		return fmt.Errorf("core: token.ttl must be positive")
	}
	if c.Hash.Cost < 4 || c.Hash.Cost > 31 {
		return fmt.Errorf("core: hash.cost %d is outside the bcrypt range", c.Hash.Cost)
	}
	return nil
}
