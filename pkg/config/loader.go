package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Load fills v from environment variables according to its `env` struct tags.
// A .env file in the working directory is read once per process before the
// first parse; variables already present in the environment take precedence.
//
//	type DatabaseConfig struct {
//		URL      string `env:"DATABASE_URL,required"`
//		MaxConns int32  `env:"PG_MAX_CONNS" envDefault:"20"`
//	}
//
//	var cfg DatabaseConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		// a missing .env is normal outside local development
		_ = godotenv.Load()
	})

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// Parse is Load returning the value.
func Parse[T any]() (T, error) {
	var v T
	err := Load(&v)
	return v, err
}

// MustLoad works like Load but panics on failure. Use it only during startup.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("load configuration: %v", err))
	}
}
