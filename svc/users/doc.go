// Package users is the credential store: the local record of every person
// who may sign in to the portal, keyed by normalized email and carrying the
// role the access gate enforces.
//
// Passwords are owned by the identity provider. Rows created on first login
// store ExternallyManagedPassword in password_hash, which never matches a
// real hash. The schema ships as embedded goose migrations:
//
//	err := pg.Migrate(ctx, pool, users.Migrations, users.MigrationsDir, cfg, log)
package users
