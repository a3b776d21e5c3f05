package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"exampleapi/internal/repository"
	"exampleapi/internal/validator"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidReference = errors.New("related resource does not exist")
	ErrConflict         = errors.New("resource already exists")
	ErrMalformedInput   = errors.New("malformed input")
	ErrInvalidValue     = errors.New("value out of range for its field")
)

// ListResult is the service-level DTO for a page of resources.
type ListResult[T any] struct {
	Items []T `json:"data"`
	Total int `json:"total"`
}

// Resource is the CRUD use case set exposed for one collection.
// T is the stored model, In the writable fields accepted from clients.
type Resource[T any, In any] interface {
	// List returns a page of resources ordered by ID and the total count.
	List(ctx context.Context, limit, offset int) (*ListResult[T], error)

	// Get returns a single resource by its ID.
	Get(ctx context.Context, id int64) (*T, error)

	// Create validates in and stores a new resource.
	Create(ctx context.Context, in *In) (*T, error)

	// Update validates in and replaces every writable field of resource id.
	Update(ctx context.Context, id int64, in *In) (*T, error)

	// Patch loads resource id, lets apply overwrite some of its fields,
	// validates the result and stores it.
	Patch(ctx context.Context, id int64, apply func(in *In) error) (*T, error)

	// Delete removes resource id. Dependent rows follow the schema's ON DELETE rules.
	Delete(ctx context.Context, id int64) error
}

// crudService is the Resource implementation shared by every collection.
// toEntity and toInput convert between the client shape and the stored shape.
type crudService[T any, In any] struct {
	repo     repository.CRUD[T]
	validate *validator.Validator
	toEntity func(in *In) *T
	toInput  func(item *T) *In
}

func newCRUDService[T any, In any](
	repo repository.CRUD[T],
	v *validator.Validator,
	toEntity func(in *In) *T,
	toInput func(item *T) *In,
) *crudService[T, In] {
	return &crudService[T, In]{repo: repo, validate: v, toEntity: toEntity, toInput: toInput}
}

func (s *crudService[T, In]) List(ctx context.Context, limit, offset int) (*ListResult[T], error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ListResult[T]{Items: res.Items, Total: res.Total}, nil
}

func (s *crudService[T, In]) Get(ctx context.Context, id int64) (*T, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return item, nil
}

func (s *crudService[T, In]) Create(ctx context.Context, in *In) (*T, error) {
	if in == nil {
		return nil, ErrMalformedInput
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	stored, err := s.repo.Create(ctx, s.toEntity(in))
	if err != nil {
		return nil, translate(err)
	}
	return stored, nil
}

func (s *crudService[T, In]) Update(ctx context.Context, id int64, in *In) (*T, error) {
	if in == nil {
		return nil, ErrMalformedInput
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	stored, err := s.repo.Update(ctx, id, s.toEntity(in))
	if err != nil {
		return nil, translate(err)
	}
	return stored, nil
}

func (s *crudService[T, In]) Patch(ctx context.Context, id int64, apply func(in *In) error) (*T, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	in := s.toInput(current)
	if err := apply(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return s.Update(ctx, id, in)
}

func (s *crudService[T, In]) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err)
	}
	return nil
}

// translate maps repository errors onto service errors.
func translate(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, repository.ErrInvalidReference):
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, repository.ErrInvalidValue):
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	default:
		return err
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptr[T any](v T) *T {
	return &v
}
