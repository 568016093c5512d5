// Package logger builds log/slog loggers for the portal.
//
// New returns a slog.Logger configured by functional options. WithEnvironment
// selects human-readable text at debug level for development and JSON at info
// level elsewhere. Context extractors registered with WithContextExtractors run
// on every record, so request-scoped values such as the request ID and client
// IP appear without being passed explicitly:
//
//	log := logger.New(
//		logger.WithEnvironment(env, "zenith-portal"),
//		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
//	)
//	log.InfoContext(r.Context(), "login succeeded", logger.UserID(u.ID), logger.Role(u.Role.String()))
//
// The attribute helpers keep key names consistent across packages. Helpers that
// receive an empty value return an empty slog.Attr, which slog omits.
package logger
