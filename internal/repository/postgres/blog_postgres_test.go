package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exampleapi/internal/model"
	"exampleapi/internal/repository"
)

var blogRowColumns = []string{"id", "name", "tagline", "created_at", "modified_at"}

func TestBlogPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBlogPostgres(db)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO blogs").
		WithArgs("Go Blog", "all things gopher").
		WillReturnRows(sqlmock.NewRows(blogRowColumns).AddRow(1, "Go Blog", "all things gopher", now, now))

	blog, err := repo.Create(context.Background(), &model.Blog{Name: "Go Blog", Tagline: "all things gopher"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), blog.ID)
	assert.Equal(t, "Go Blog", blog.Name)
	assert.Equal(t, now, blog.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBlogPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM blogs WHERE id = ?").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(blogRowColumns).AddRow(1, "Go Blog", "t", time.Now(), time.Now()))

		blog, err := repo.FindByID(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), blog.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM blogs WHERE id = ?").
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows(blogRowColumns))

		blog, err := repo.FindByID(ctx, 2)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, blog)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBlogPostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM blogs").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM blogs ORDER BY id LIMIT").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(blogRowColumns).AddRow(1, "Go Blog", "t", time.Now(), time.Now()))

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 10, Offset: 0})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Go Blog", res.Items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBlogPostgres(db)
	created := time.Now().Add(-time.Hour)
	modified := time.Now()

	mock.ExpectQuery("UPDATE blogs SET (.+) modified_at = now\\(\\)").
		WithArgs("Renamed", "t", int64(1)).
		WillReturnRows(sqlmock.NewRows(blogRowColumns).AddRow(1, "Renamed", "t", created, modified))

	blog, err := repo.Update(context.Background(), 1, &model.Blog{Name: "Renamed", Tagline: "t"})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", blog.Name)
	assert.True(t, blog.ModifiedAt.After(blog.CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBlogPostgres(db)
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM blogs WHERE id = ?").
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 1))
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM blogs WHERE id = ?").
			WithArgs(int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 9), sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
