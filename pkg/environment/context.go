package environment

import (
	"context"
	"fmt"
	"strings"
)

// Environment is the deployment environment named by APP_ENV.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse maps common spellings ("prod", "stage", "dev") to an Environment.
// An empty value is Development. Anything else unrecognised is treated as
// Production, so a typo never unlocks development shortcuts.
func Parse(s string) Environment {
	env, err := lookup(s)
	if err != nil {
		return Production
	}
	return env
}

// UnmarshalText lets env struct tags decode APP_ENV directly. Unlike Parse it
// rejects unknown names.
func (e *Environment) UnmarshalText(text []byte) error {
	env, err := lookup(string(text))
	if err != nil {
		return err
	}
	*e = env
	return nil
}

func lookup(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod":
		return Production, nil
	case "staging", "stage":
		return Staging, nil
	case "development", "dev", "":
		return Development, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, s)
	}
}

func (e Environment) String() string { return string(e) }

func (e Environment) IsProduction() bool { return e == Production }

type contextKey struct{}

// WithContext returns a copy of ctx carrying env.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext returns the environment stored in ctx, or "" when none was set.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsProduction reports whether ctx carries the production environment.
func IsProduction(ctx context.Context) bool {
	return FromContext(ctx) == Production
}

func IsDevelopment(ctx context.Context) bool {
	return FromContext(ctx) == Development
}
