// Package environment carries the deployment environment (development,
// staging, production) through context.Context and into structured logs.
//
// The environment gates behaviour such as the Secure cookie attribute and the
// development-only login endpoint, so it is parsed once at startup from APP_ENV
// and attached to every request with Middleware. Parse treats unknown names as
// production; decoding APP_ENV through a config struct rejects them instead.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	router.Use(environment.Middleware(env))
//
//	if environment.IsProduction(r.Context()) {
//		// refuse development shortcuts
//	}
//
// LoggerExtractor adds an "env" attribute to records logged with a request context.
package environment
