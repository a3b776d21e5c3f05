package postgres

import (
	"context"
	"database/sql"

	"exampleapi/internal/model"
	"exampleapi/internal/repository"
)

const commentColumns = "id, entry_id, body, author_id, created_at, modified_at"

// CommentPostgres is a PostgreSQL implementation of repository.CRUD[model.Comment].
type CommentPostgres struct {
	db *sql.DB
}

func NewCommentPostgres(db *sql.DB) *CommentPostgres {
	return &CommentPostgres{db: db}
}

var _ repository.CRUD[model.Comment] = (*CommentPostgres)(nil)

func scanComment(row scannable) (*model.Comment, error) {
	var c model.Comment
	if err := row.Scan(&c.ID, &c.Entry, &c.Body, &c.Author, &c.CreatedAt, &c.ModifiedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentPostgres) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	const q = `
		INSERT INTO comments (entry_id, body, author_id)
		VALUES ($1, $2, $3)
		RETURNING ` + commentColumns
	out, err := scanComment(r.db.QueryRowContext(ctx, q, c.Entry, c.Body, c.Author))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *CommentPostgres) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	const q = `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	return scanComment(r.db.QueryRowContext(ctx, q, id))
}

func (r *CommentPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Comment], error) {
	return listPage(ctx, r.db, "comments", commentColumns, pq, scanComment)
}

func (r *CommentPostgres) Update(ctx context.Context, id int64, c *model.Comment) (*model.Comment, error) {
	const q = `
		UPDATE comments SET entry_id = $1, body = $2, author_id = $3, modified_at = now()
		WHERE id = $4
		RETURNING ` + commentColumns
	out, err := scanComment(r.db.QueryRowContext(ctx, q, c.Entry, c.Body, c.Author, id))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (r *CommentPostgres) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "comments", id)
}
