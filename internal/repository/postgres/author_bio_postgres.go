package postgres

import (
	"context"
	"database/sql"

	"exampleapi/internal/model"
	"exampleapi/internal/repository"
)

const authorBioColumns = "id, author_id, body, created_at, modified_at"

// AuthorBioPostgres stores author biographies. author_bios.author_id is UNIQUE,
// so an author never has more than one bio.
type AuthorBioPostgres struct {
	db *sql.DB
}

func NewAuthorBioPostgres(db *sql.DB) *AuthorBioPostgres {
	return &AuthorBioPostgres{db: db}
}

var _ repository.AuthorBioRepository = (*AuthorBioPostgres)(nil)

func scanAuthorBio(row scannable) (*model.AuthorBio, error) {
	var b model.AuthorBio
	if err := row.Scan(&b.ID, &b.Author, &b.Body, &b.CreatedAt, &b.ModifiedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *AuthorBioPostgres) FindByAuthor(ctx context.Context, authorID int64) (*model.AuthorBio, error) {
	const q = `SELECT ` + authorBioColumns + ` FROM author_bios WHERE author_id = $1`
	return scanAuthorBio(r.db.QueryRowContext(ctx, q, authorID))
}

func (r *AuthorBioPostgres) Upsert(ctx context.Context, authorID int64, body string) (*model.AuthorBio, error) {
	const q = `
		INSERT INTO author_bios (author_id, body)
		VALUES ($1, $2)
		ON CONFLICT (author_id) DO UPDATE SET body = EXCLUDED.body, modified_at = now()
		RETURNING ` + authorBioColumns
	b, err := scanAuthorBio(r.db.QueryRowContext(ctx, q, authorID, body))
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func (r *AuthorBioPostgres) DeleteByAuthor(ctx context.Context, authorID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM author_bios WHERE author_id = $1`, authorID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
