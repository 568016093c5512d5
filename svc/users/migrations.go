package users

import "embed"

// Migrations holds the goose migrations for the users table.
// Apply them with pg.Migrate(ctx, pool, users.Migrations, users.MigrationsDir, cfg, log).
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"
