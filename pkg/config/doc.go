// Package config loads typed configuration structs from environment variables.
//
// Each package that needs settings declares its own Config struct with
// caarlos0/env tags (`env:"NAME"`, `envDefault:"value"`, `,required`), and the
// binary loads them with Load or MustLoad at startup. Values from a local .env
// file are picked up through godotenv without overriding the real environment.
package config
