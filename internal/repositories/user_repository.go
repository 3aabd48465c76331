package repositories

import (
	intdb "travelagency/internal/db"
	"travelagency/internal/domain/models"
)

var UserTable = Table[models.User]{
	Name:     "users",
	Resource: "user",
	Columns:  []string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"},
	Scan: func(sc Scanner) (models.User, error) {
		var u models.User
		if err := sc.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return models.User{}, err
		}
		u.CreatedAt = u.CreatedAt.UTC()
		u.UpdatedAt = u.UpdatedAt.UTC()
		return u, nil
	},
	Values: func(u models.User) []any {
		return []any{u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt.UTC(), u.UpdatedAt.UTC()}
	},
	Schema: map[intdb.Dialect]string{
		intdb.MySQL: `
CREATE TABLE IF NOT EXISTS users (
	id VARCHAR(32) NOT NULL PRIMARY KEY,
	name VARCHAR(255) NOT NULL DEFAULT '',
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(20) NOT NULL DEFAULT 'customer',
	created_at DATETIME(6) NOT NULL,
	updated_at DATETIME(6) NOT NULL,
	UNIQUE KEY uniq_users_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`,
		intdb.SQLite: `
CREATE TABLE IF NOT EXISTS users (
	id TEXT NOT NULL PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'customer',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`,
	},
}
