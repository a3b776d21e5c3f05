package repository

import (
	"context"
	"errors"

	"exampleapi/internal/model"
)

// Package repository contains data access abstractions. Implementations live in
// subpackages (postgres). Missing rows are reported as sql.ErrNoRows.

var (
	// ErrInvalidReference is returned when a foreign key points at a row that does not exist.
	ErrInvalidReference = errors.New("referenced row does not exist")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate row")
	// ErrInvalidValue is returned when the database rejects a column value
	// (out of range, too long, NUL byte).
	ErrInvalidValue = errors.New("value rejected by database")
)

// CRUD is the persistence contract shared by every collection.
// No business logic here, strictly persistence operations.
type CRUD[T any] interface {
	// Create inserts a row and returns it with database-owned fields populated.
	Create(ctx context.Context, item *T) (*T, error)

	// FindByID returns a row by its ID.
	FindByID(ctx context.Context, id int64) (*T, error)

	// List returns a page of rows ordered by ID and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[T], error)

	// Update overwrites the writable columns of row id.
	Update(ctx context.Context, id int64, item *T) (*T, error)

	// Delete removes row id.
	Delete(ctx context.Context, id int64) error
}

// AuthorBioRepository stores the one-to-one biography of an author.
type AuthorBioRepository interface {
	FindByAuthor(ctx context.Context, authorID int64) (*model.AuthorBio, error)

	// Upsert creates the author's bio or replaces its body.
	Upsert(ctx context.Context, authorID int64, body string) (*model.AuthorBio, error)

	DeleteByAuthor(ctx context.Context, authorID int64) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
