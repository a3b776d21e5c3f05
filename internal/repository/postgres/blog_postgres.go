package postgres

import (
	"context"
	"database/sql"

	"exampleapi/internal/model"
	"exampleapi/internal/repository"
)

const blogColumns = "id, name, tagline, created_at, modified_at"

// BlogPostgres is a PostgreSQL implementation of repository.CRUD[model.Blog].
type BlogPostgres struct {
	db *sql.DB
}

// NewBlogPostgres creates a new BlogPostgres repository.
func NewBlogPostgres(db *sql.DB) *BlogPostgres {
	return &BlogPostgres{db: db}
}

var _ repository.CRUD[model.Blog] = (*BlogPostgres)(nil)

func scanBlog(row scannable) (*model.Blog, error) {
	var b model.Blog
	if err := row.Scan(&b.ID, &b.Name, &b.Tagline, &b.CreatedAt, &b.ModifiedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BlogPostgres) Create(ctx context.Context, b *model.Blog) (*model.Blog, error) {
	const q = `
		INSERT INTO blogs (name, tagline)
		VALUES ($1, $2)
		RETURNING ` + blogColumns
	return mapped(scanBlog(r.db.QueryRowContext(ctx, q, b.Name, b.Tagline)))
}

func (r *BlogPostgres) FindByID(ctx context.Context, id int64) (*model.Blog, error) {
	const q = `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1`
	return scanBlog(r.db.QueryRowContext(ctx, q, id))
}

func (r *BlogPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Blog], error) {
	return listPage(ctx, r.db, "blogs", blogColumns, pq, scanBlog)
}

func (r *BlogPostgres) Update(ctx context.Context, id int64, b *model.Blog) (*model.Blog, error) {
	const q = `
		UPDATE blogs SET name = $1, tagline = $2, modified_at = now()
		WHERE id = $3
		RETURNING ` + blogColumns
	return mapped(scanBlog(r.db.QueryRowContext(ctx, q, b.Name, b.Tagline, id)))
}

// Delete removes a blog. Its entries and their comments go with it (ON DELETE CASCADE).
func (r *BlogPostgres) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "blogs", id)
}
