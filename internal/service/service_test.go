package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"exampleapi/internal/model"
	"exampleapi/internal/repository"
	repoMocks "exampleapi/internal/repository/mocks"
	"exampleapi/internal/validator"
)

func TestBlogService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         *model.BlogInput
		setupMocks func(mRepo *repoMocks.MockCRUD[model.Blog])
		wantErr    error
		wantFields []string
	}{
		{
			name: "happy path",
			in:   &model.BlogInput{Name: "Go", Tagline: "gophers"},
			setupMocks: func(mRepo *repoMocks.MockCRUD[model.Blog]) {
				mRepo.On("Create", ctx, &model.Blog{Name: "Go", Tagline: "gophers"}).
					Return(&model.Blog{ID: 1, Name: "Go", Tagline: "gophers"}, nil)
			},
		},
		{
			name:       "missing name",
			in:         &model.BlogInput{Tagline: "gophers"},
			setupMocks: func(mRepo *repoMocks.MockCRUD[model.Blog]) {},
			wantFields: []string{"name"},
		},
		{
			name:       "nil input",
			in:         nil,
			setupMocks: func(mRepo *repoMocks.MockCRUD[model.Blog]) {},
			wantErr:    ErrMalformedInput,
		},
		{
			name: "repository error",
			in:   &model.BlogInput{Name: "Go", Tagline: "gophers"},
			setupMocks: func(mRepo *repoMocks.MockCRUD[model.Blog]) {
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockCRUD[model.Blog])
			tt.setupMocks(mRepo)
			svc := NewBlogService(mRepo, validator.New())

			blog, err := svc.Create(ctx, tt.in)

			switch {
			case tt.wantFields != nil:
				var verr *validator.ValidationError
				require.True(t, errors.As(err, &verr))
				for _, f := range tt.wantFields {
					assert.Contains(t, verr.Errors, f)
				}
				mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			case tt.wantErr != nil:
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, blog)
			default:
				require.NoError(t, err)
				assert.Equal(t, int64(1), blog.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestEntryService_Create_DefaultCounters(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockCRUD[model.Entry])
	svc := NewEntryService(mRepo, validator.New())

	blogID := int64(3)
	mRepo.On("Create", ctx, mock.MatchedBy(func(e *model.Entry) bool {
		return e.Blog == 3 && e.NComments == 0 && e.NPingbacks == 0 && e.Rating == 0
	})).Return(&model.Entry{ID: 9, Blog: 3, Headline: "Hi", Authors: []int64{}}, nil)

	entry, err := svc.Create(ctx, &model.EntryInput{Blog: &blogID, Headline: "Hi"})

	require.NoError(t, err)
	assert.Equal(t, 0, entry.NComments)
	assert.Equal(t, 0, entry.NPingbacks)
	assert.Equal(t, 0, entry.Rating)
	mRepo.AssertExpectations(t)
}

func TestEntryService_Create_UnknownBlog(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockCRUD[model.Entry])
	svc := NewEntryService(mRepo, validator.New())

	blogID := int64(404)
	mRepo.On("Create", ctx, mock.Anything).
		Return(nil, fmt.Errorf("%w: entries_blog_id_fkey", repository.ErrInvalidReference))

	entry, err := svc.Create(ctx, &model.EntryInput{Blog: &blogID, Headline: "Hi"})

	assert.Nil(t, entry)
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestCRUDService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		limit, offset int
		wantQuery     repository.PageQuery
	}{
		{name: "defaults", limit: 0, offset: -5, wantQuery: repository.PageQuery{Limit: DefaultLimit, Offset: 0}},
		{name: "capped", limit: 5000, offset: 10, wantQuery: repository.PageQuery{Limit: MaxLimit, Offset: 10}},
		{name: "as given", limit: 20, offset: 40, wantQuery: repository.PageQuery{Limit: 20, Offset: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockCRUD[model.Blog])
			svc := NewBlogService(mRepo, validator.New())

			mRepo.On("List", ctx, tt.wantQuery).Return(&repository.PageResult[model.Blog]{
				Items: []model.Blog{{ID: 1, Name: "Go"}},
				Total: 1,
			}, nil)

			res, err := svc.List(ctx, tt.limit, tt.offset)

			require.NoError(t, err)
			assert.Equal(t, 1, res.Total)
			assert.Len(t, res.Items, 1)
			mRepo.AssertExpectations(t)
		})
	}
}

func TestCRUDService_Get(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockCRUD[model.Author])
	svc := NewAuthorService(mRepo, validator.New())

	t.Run("found", func(t *testing.T) {
		mRepo.On("FindByID", ctx, int64(1)).Return(&model.Author{ID: 1, Name: "Ann"}, nil).Once()

		a, err := svc.Get(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "Ann", a.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo.On("FindByID", ctx, int64(2)).Return(nil, sql.ErrNoRows).Once()

		a, err := svc.Get(ctx, 2)

		assert.Nil(t, a)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCRUDService_Patch(t *testing.T) {
	ctx := context.Background()
	body := "original body"
	pub := model.NewDate(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	current := &model.Entry{
		ID:        7,
		Blog:      1,
		Headline:  "Old",
		BodyText:  &body,
		PubDate:   &pub,
		Authors:   []int64{2},
		NComments: 4,
		Rating:    5,
	}

	t.Run("only supplied fields change", func(t *testing.T) {
		mRepo := new(repoMocks.MockCRUD[model.Entry])
		svc := NewEntryService(mRepo, validator.New())

		mRepo.On("FindByID", ctx, int64(7)).Return(current, nil)
		mRepo.On("Update", ctx, int64(7), mock.MatchedBy(func(e *model.Entry) bool {
			return e.Headline == "New" &&
				e.Blog == 1 &&
				e.BodyText != nil && *e.BodyText == "original body" &&
				e.PubDate != nil && e.PubDate.String() == "2024-01-02" &&
				len(e.Authors) == 1 && e.Authors[0] == 2 &&
				e.NComments == 4 && e.Rating == 5
		})).Return(&model.Entry{ID: 7, Headline: "New"}, nil)

		entry, err := svc.Patch(ctx, 7, func(in *model.EntryInput) error {
			in.Headline = "New"
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, "New", entry.Headline)
		assert.Equal(t, "original body", *current.BodyText)
		mRepo.AssertExpectations(t)
	})

	t.Run("merged input is validated", func(t *testing.T) {
		mRepo := new(repoMocks.MockCRUD[model.Entry])
		svc := NewEntryService(mRepo, validator.New())
		mRepo.On("FindByID", ctx, int64(7)).Return(current, nil)

		_, err := svc.Patch(ctx, 7, func(in *model.EntryInput) error {
			in.Headline = ""
			return nil
		})

		var verr *validator.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Errors, "headline")
		mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		mRepo := new(repoMocks.MockCRUD[model.Entry])
		svc := NewEntryService(mRepo, validator.New())
		mRepo.On("FindByID", ctx, int64(7)).Return(current, nil)

		_, err := svc.Patch(ctx, 7, func(in *model.EntryInput) error {
			return errors.New("unexpected EOF")
		})

		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockCRUD[model.Entry])
		svc := NewEntryService(mRepo, validator.New())
		mRepo.On("FindByID", ctx, int64(8)).Return(nil, sql.ErrNoRows)

		_, err := svc.Patch(ctx, 8, func(in *model.EntryInput) error { return nil })

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCRUDService_Delete(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockCRUD[model.Comment])
	svc := NewCommentService(mRepo, validator.New())

	mRepo.On("Delete", ctx, int64(1)).Return(nil).Once()
	mRepo.On("Delete", ctx, int64(2)).Return(sql.ErrNoRows).Once()

	assert.NoError(t, svc.Delete(ctx, 1))
	assert.ErrorIs(t, svc.Delete(ctx, 2), ErrNotFound)
	mRepo.AssertExpectations(t)
}

func TestProfileDatumService_Create_RequiredScores(t *testing.T) {
	ctx := context.Background()
	category, reach, base := int64(1), int64(10), int64(100)
	score := 0.3

	tests := []struct {
		name      string
		in        *model.ProfileDatumInput
		wantField string
	}{
		{
			name:      "missing biased_index",
			in:        &model.ProfileDatumInput{Category: &category, OpportunityScore: &score, ReachAudience: &reach, ReachBase: &base},
			wantField: "biased_index",
		},
		{
			name:      "missing opportunity_score",
			in:        &model.ProfileDatumInput{Category: &category, BiasedIndex: &score, ReachAudience: &reach, ReachBase: &base},
			wantField: "opportunity_score",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockCRUD[model.ProfileDatum])
			svc := NewProfileDatumService(mRepo, validator.New())

			_, err := svc.Create(ctx, tt.in)

			var verr *validator.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Errors, tt.wantField)
			mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, ErrNotFound, translate(sql.ErrNoRows))
	assert.ErrorIs(t, translate(fmt.Errorf("%w: fk", repository.ErrInvalidReference)), ErrInvalidReference)
	assert.ErrorIs(t, translate(fmt.Errorf("%w: uniq", repository.ErrDuplicate)), ErrConflict)
	assert.ErrorIs(t, translate(fmt.Errorf("%w: 22003", repository.ErrInvalidValue)), ErrInvalidValue)

	other := errors.New("other")
	assert.Equal(t, other, translate(other))
}
