// Copyright (c) 2026 Musée Virtuel. All rights reserved.
// Author: dev@musee-virtuel.sn

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/teranga-labs/musee-api/internal/platform/database/schema"
	"github.com/teranga-labs/musee-api/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func userColumns() string {
	ref := schema.UserAccount
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		ref.ID, ref.Username, ref.Email, ref.Password, ref.Role, ref.IsActive, ref.CreatedAt,
	)
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Role, &user.IsActive, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (repository *PostgresRepository) getBy(context context.Context, column string, value any, action string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns(), schema.UserAccount.Table, column,
	)

	user, err := scanUser(repository.db.QueryRow(context, query, value))
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return user, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int) (*User, error) {
	return repository.getBy(context, schema.UserAccount.ID, id, "get_user")
}

func (repository *PostgresRepository) GetByUsername(context context.Context, username string) (*User, error) {
	return repository.getBy(context, schema.UserAccount.Username, username, "get_user_by_username")
}

func (repository *PostgresRepository) GetByEmail(context context.Context, email string) (*User, error) {
	return repository.getBy(context, schema.UserAccount.Email, email, "get_user_by_email")
}

func (repository *PostgresRepository) GetAll(context context.Context) ([]*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s DESC`,
		userColumns(), schema.UserAccount.Table, schema.UserAccount.CreatedAt,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (repository *PostgresRepository) Save(context context.Context, user *User) (*User, error) {
	ref := schema.UserAccount
	if user.ID == 0 {
		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5, NOW())
			RETURNING %s, %s
		`,
			ref.Table, ref.Username, ref.Email, ref.Password, ref.Role, ref.IsActive, ref.CreatedAt,
			ref.ID, ref.CreatedAt,
		)

		err := repository.db.QueryRow(context, query,
			user.Username, user.Email, user.PasswordHash, string(user.Role), user.IsActive,
		).Scan(&user.ID, &user.CreatedAt)
		if err != nil {
			return nil, dberr.Wrap(err, "create_user")
		}
		return user, nil
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1
		RETURNING %s
	`,
		ref.Table, ref.Username, ref.Email, ref.Password, ref.Role, ref.IsActive,
		ref.ID, ref.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.PasswordHash, string(user.Role), user.IsActive,
	).Scan(&user.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "update_user")
	}
	return user, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserAccount.Table, schema.UserAccount.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_user")
	}
	return cmd.RowsAffected() > 0, nil
}
