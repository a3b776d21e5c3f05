package postgres

import (
	"context"
	"database/sql"

	"exampleapi/internal/model"
	"exampleapi/internal/repository"
)

const authorColumns = "id, name, email, created_at, modified_at"

// AuthorPostgres is a PostgreSQL implementation of repository.CRUD[model.Author].
type AuthorPostgres struct {
	db *sql.DB
}

func NewAuthorPostgres(db *sql.DB) *AuthorPostgres {
	return &AuthorPostgres{db: db}
}

var _ repository.CRUD[model.Author] = (*AuthorPostgres)(nil)

func scanAuthor(row scannable) (*model.Author, error) {
	var a model.Author
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.CreatedAt, &a.ModifiedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AuthorPostgres) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	const q = `
		INSERT INTO authors (name, email)
		VALUES ($1, $2)
		RETURNING ` + authorColumns
	return mapped(scanAuthor(r.db.QueryRowContext(ctx, q, a.Name, a.Email)))
}

func (r *AuthorPostgres) FindByID(ctx context.Context, id int64) (*model.Author, error) {
	const q = `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`
	return scanAuthor(r.db.QueryRowContext(ctx, q, id))
}

func (r *AuthorPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Author], error) {
	return listPage(ctx, r.db, "authors", authorColumns, pq, scanAuthor)
}

func (r *AuthorPostgres) Update(ctx context.Context, id int64, a *model.Author) (*model.Author, error) {
	const q = `
		UPDATE authors SET name = $1, email = $2, modified_at = now()
		WHERE id = $3
		RETURNING ` + authorColumns
	return mapped(scanAuthor(r.db.QueryRowContext(ctx, q, a.Name, a.Email, id)))
}

// Delete removes an author, its bio and its entry links. Comments keep their
// row with a NULL author.
func (r *AuthorPostgres) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "authors", id)
}
