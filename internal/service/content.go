package service

import (
	"exampleapi/internal/model"
	"exampleapi/internal/repository"
	"exampleapi/internal/validator"
)

func NewBlogService(repo repository.CRUD[model.Blog], v *validator.Validator) Resource[model.Blog, model.BlogInput] {
	return newCRUDService(repo, v,
		func(in *model.BlogInput) *model.Blog {
			return &model.Blog{Name: in.Name, Tagline: in.Tagline}
		},
		func(b *model.Blog) *model.BlogInput {
			return &model.BlogInput{Name: b.Name, Tagline: b.Tagline}
		},
	)
}

func NewAuthorService(repo repository.CRUD[model.Author], v *validator.Validator) Resource[model.Author, model.AuthorInput] {
	return newCRUDService(repo, v,
		func(in *model.AuthorInput) *model.Author {
			return &model.Author{Name: in.Name, Email: in.Email}
		},
		func(a *model.Author) *model.AuthorInput {
			return &model.AuthorInput{Name: a.Name, Email: a.Email}
		},
	)
}

// NewEntryService builds the entries use cases. Counters missing from the
// request are stored as 0.
func NewEntryService(repo repository.CRUD[model.Entry], v *validator.Validator) Resource[model.Entry, model.EntryInput] {
	return newCRUDService(repo, v,
		func(in *model.EntryInput) *model.Entry {
			return &model.Entry{
				Blog:       *in.Blog,
				Headline:   in.Headline,
				BodyText:   in.BodyText,
				PubDate:    in.PubDate,
				ModDate:    in.ModDate,
				Authors:    in.Authors,
				NComments:  in.NComments,
				NPingbacks: in.NPingbacks,
				Rating:     in.Rating,
			}
		},
		func(e *model.Entry) *model.EntryInput {
			return &model.EntryInput{
				Blog:       ptr(e.Blog),
				Headline:   e.Headline,
				BodyText:   clonePtr(e.BodyText),
				PubDate:    clonePtr(e.PubDate),
				ModDate:    clonePtr(e.ModDate),
				Authors:    append([]int64(nil), e.Authors...),
				NComments:  e.NComments,
				NPingbacks: e.NPingbacks,
				Rating:     e.Rating,
			}
		},
	)
}

func NewCommentService(repo repository.CRUD[model.Comment], v *validator.Validator) Resource[model.Comment, model.CommentInput] {
	return newCRUDService(repo, v,
		func(in *model.CommentInput) *model.Comment {
			return &model.Comment{Entry: *in.Entry, Body: in.Body, Author: in.Author}
		},
		func(c *model.Comment) *model.CommentInput {
			return &model.CommentInput{Entry: ptr(c.Entry), Body: c.Body, Author: clonePtr(c.Author)}
		},
	)
}
