package main

import (
	"github.com/zenithfinancial/portal/modules/auth"
	"github.com/zenithfinancial/portal/pkg/cookie"
	"github.com/zenithfinancial/portal/pkg/environment"
	"github.com/zenithfinancial/portal/pkg/httpserver"
	"github.com/zenithfinancial/portal/pkg/pg"
	"github.com/zenithfinancial/portal/pkg/ratelimiter"
	"github.com/zenithfinancial/portal/pkg/session"
	"github.com/zenithfinancial/portal/pkg/telemetry"
	"github.com/zenithfinancial/portal/svc/identity"
)

type appConfig struct {
	Env        environment.Environment `env:"APP_ENV" envDefault:"development"`
	Name       string                  `env:"APP_NAME" envDefault:"zenith-portal"`
	LogLevel   string                  `env:"LOG_LEVEL"`
	PolicyFile string                  `env:"RBAC_POLICY_FILE"`

	HTTP      httpserver.Config
	DB        pg.Config
	Cookie    cookie.Config
	Session   session.Config
	Identity  identity.Config
	Auth      auth.Config
	RateLimit ratelimiter.Config
	Telemetry telemetry.Config
}

// enforceEnvironment turns on settings production must not run without.
// It reports whether any configured value was overridden.
func (c *appConfig) enforceEnvironment() bool {
	if !c.Env.IsProduction() {
		return false
	}
	overridden := !c.Session.Secure || !c.Cookie.Secure
	c.Session.Secure = true
	c.Cookie.Secure = true
	return overridden
}
