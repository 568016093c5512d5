package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zenithfinancial/portal/pkg/pg"
	"github.com/zenithfinancial/portal/pkg/rbac"
	"github.com/zenithfinancial/portal/pkg/sanitizer"
)

// Store is the credential store used by the login flows.
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, id int64) (User, error)
	// CreateUser inserts u unless a user with the same email already exists,
	// in which case the existing row is returned and created is false.
	CreateUser(ctx context.Context, u NewUser) (user User, created bool, err error)
	TouchLastLogin(ctx context.Context, id int64) error
}

const userColumns = `id, email, full_name, role::text, email_verified, active, last_login_at, created_at, updated_at`

// PostgresStore implements Store on the users table. It relies on the
// connection's search_path to resolve the portal schema.
type PostgresStore struct {
	db pg.DB
}

// NewPostgresStore returns a Store backed by db.
func NewPostgresStore(db pg.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	var role string
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FullName,
		&role,
		&u.EmailVerified,
		&u.Active,
		&u.LastLoginAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return User{}, err
	}
	parsed, err := rbac.ParseRole(role)
	if err != nil {
		return User{}, fmt.Errorf("user %d: stored role %q: %w", u.ID, role, err)
	}
	u.Role = parsed
	return u, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return User{}, fmt.Errorf("%w: empty email", ErrInvalidInput)
	}

	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	return u, wrap(err)
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, ErrUserNotFound
	}

	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	return u, wrap(err)
}

func (s *PostgresStore) CreateUser(ctx context.Context, in NewUser) (User, bool, error) {
	in.Email = sanitizer.NormalizeEmail(in.Email)
	if in.Email == "" {
		return User{}, false, fmt.Errorf("%w: empty email", ErrInvalidInput)
	}
	in.FullName = sanitizer.NormalizeName(in.FullName)
	if in.FullName == "" {
		in.FullName = in.Email
	}
	if in.Role == "" {
		in.Role = rbac.RoleClient
	}
	if !in.Role.Valid() {
		return User{}, false, fmt.Errorf("%w: %w", ErrInvalidInput, rbac.ErrInvalidRole)
	}

	var (
		user    User
		created bool
	)
	err := pg.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		u, err := scanUser(tx.QueryRow(ctx, `
			INSERT INTO users (email, password_hash, full_name, role, email_verified, active)
			VALUES ($1, $2, $3, $4::text::user_role, $5, TRUE)
			ON CONFLICT (email) DO NOTHING
			RETURNING `+userColumns,
			in.Email, ExternallyManagedPassword, in.FullName, string(in.Role), in.EmailVerified,
		))
		switch {
		case err == nil:
			user, created = u, true
			return nil
		case !errors.Is(err, pgx.ErrNoRows):
			return err
		}

		// Lost the race to a concurrent first login for the same email.
		user, err = scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, in.Email))
		return err
	})
	if err != nil {
		return User{}, false, wrap(err)
	}
	return user, created, nil
}

// TouchLastLogin stamps last_login_at with the database clock.
func (s *PostgresStore) TouchLastLogin(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `UPDATE users SET last_login_at = now(), updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func wrap(err error) error {
	switch {
	case err == nil:
		return nil
	case pg.IsNotFoundError(err):
		return ErrUserNotFound
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrInvalidInput):
		return err
	default:
		return errors.Join(ErrStore, err)
	}
}

var _ Store = (*PostgresStore)(nil)

