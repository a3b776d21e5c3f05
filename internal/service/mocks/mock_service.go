package mocks

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"exampleapi/internal/model"
	"exampleapi/internal/service"
)

type MockResource[T any, In any] struct {
	mock.Mock
}

func (m *MockResource[T, In]) List(ctx context.Context, limit, offset int) (*service.ListResult[T], error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[T]), args.Error(1)
}

func (m *MockResource[T, In]) Get(ctx context.Context, id int64) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockResource[T, In]) Create(ctx context.Context, in *In) (*T, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockResource[T, In]) Update(ctx context.Context, id int64, in *In) (*T, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

// Patch applies the caller's function to a zero In so tests can inspect what
// the handler decoded; the decoded value is passed to Called.
func (m *MockResource[T, In]) Patch(ctx context.Context, id int64, apply func(in *In) error) (*T, error) {
	in := new(In)
	if err := apply(in); err != nil {
		return nil, fmt.Errorf("%w: %v", service.ErrMalformedInput, err)
	}
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockResource[T, In]) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAuthorBioService struct {
	mock.Mock
}

func (m *MockAuthorBioService) Get(ctx context.Context, authorID int64) (*model.AuthorBio, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthorBio), args.Error(1)
}

func (m *MockAuthorBioService) Put(ctx context.Context, authorID int64, in *model.AuthorBioInput) (*model.AuthorBio, error) {
	args := m.Called(ctx, authorID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthorBio), args.Error(1)
}

func (m *MockAuthorBioService) Delete(ctx context.Context, authorID int64) error {
	args := m.Called(ctx, authorID)
	return args.Error(0)
}
