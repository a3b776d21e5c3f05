package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"exampleapi/internal/model"
	"exampleapi/internal/repository"
)

type MockCRUD[T any] struct {
	mock.Mock
}

func (m *MockCRUD[T]) Create(ctx context.Context, item *T) (*T, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCRUD[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCRUD[T]) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[T], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[T]), args.Error(1)
}

func (m *MockCRUD[T]) Update(ctx context.Context, id int64, item *T) (*T, error) {
	args := m.Called(ctx, id, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCRUD[T]) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAuthorBioRepository struct {
	mock.Mock
}

func (m *MockAuthorBioRepository) FindByAuthor(ctx context.Context, authorID int64) (*model.AuthorBio, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthorBio), args.Error(1)
}

func (m *MockAuthorBioRepository) Upsert(ctx context.Context, authorID int64, body string) (*model.AuthorBio, error) {
	args := m.Called(ctx, authorID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthorBio), args.Error(1)
}

func (m *MockAuthorBioRepository) DeleteByAuthor(ctx context.Context, authorID int64) error {
	args := m.Called(ctx, authorID)
	return args.Error(0)
}
