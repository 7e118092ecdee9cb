package config

import "time"

type Jwt struct {
	Secret    string        `json:"secret" yaml:"secret"`
	ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
}

func ProvideJwtConfig(cfg *Config) *Jwt {
	return cfg.Jwt
}
