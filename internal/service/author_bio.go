package service

import (
	"context"
	"errors"

	"exampleapi/internal/model"
	"exampleapi/internal/repository"
	"exampleapi/internal/validator"
)

// AuthorBioService manages the single bio of an author.
type AuthorBioService interface {
	Get(ctx context.Context, authorID int64) (*model.AuthorBio, error)

	// Put creates the author's bio or replaces its body. A missing author is ErrNotFound.
	Put(ctx context.Context, authorID int64, in *model.AuthorBioInput) (*model.AuthorBio, error)

	Delete(ctx context.Context, authorID int64) error
}

type authorBioService struct {
	repo     repository.AuthorBioRepository
	validate *validator.Validator
}

func NewAuthorBioService(repo repository.AuthorBioRepository, v *validator.Validator) AuthorBioService {
	return &authorBioService{repo: repo, validate: v}
}

func (s *authorBioService) Get(ctx context.Context, authorID int64) (*model.AuthorBio, error) {
	bio, err := s.repo.FindByAuthor(ctx, authorID)
	if err != nil {
		return nil, translate(err)
	}
	return bio, nil
}

func (s *authorBioService) Put(ctx context.Context, authorID int64, in *model.AuthorBioInput) (*model.AuthorBio, error) {
	if in == nil {
		return nil, ErrMalformedInput
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	bio, err := s.repo.Upsert(ctx, authorID, in.Body)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, ErrNotFound
		}
		return nil, translate(err)
	}
	return bio, nil
}

func (s *authorBioService) Delete(ctx context.Context, authorID int64) error {
	if err := s.repo.DeleteByAuthor(ctx, authorID); err != nil {
		return translate(err)
	}
	return nil
}
