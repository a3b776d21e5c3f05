package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"exampleapi/internal/http/middleware"
	"exampleapi/internal/model"
	repoMocks "exampleapi/internal/repository/mocks"
	"exampleapi/internal/repository/postgres"
	"exampleapi/internal/service"
	serviceMocks "exampleapi/internal/service/mocks"
	"exampleapi/internal/validator"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		StrictRouting: true,
		ErrorHandler:  ErrorHandler(),
	})
	app.Use(middleware.RequestID())
	return app
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := newTestApp()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
		assert.NotEmpty(t, body.RequestID)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := newTestApp()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListResource(t *testing.T) {
	mockSvc := new(serviceMocks.MockResource[model.Blog, model.BlogInput])
	app := newTestApp()
	app.Get("/blogs", ListResource[model.Blog, model.BlogInput](mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &service.ListResult[model.Blog]{
			Items: []model.Blog{{ID: 1, Name: "Beatles Blog", Tagline: "All the latest Beatles news."}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, 10, 5).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/blogs?limit=10&offset=5", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data  []model.Blog `json:"data"`
			Total int          `json:"total"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 1, body.Total)
		require.Len(t, body.Data, 1)
		assert.Equal(t, "Beatles Blog", body.Data[0].Name)
	})

	t.Run("defaults", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, service.DefaultLimit, 0).
			Return(&service.ListResult[model.Blog]{Items: []model.Blog{}}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/blogs", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("invalid limit", func(t *testing.T) {
		for _, q := range []string{"limit=abc", "limit=0", "limit=-3"} {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/blogs?"+q, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
			assert.Equal(t, "INVALID_LIMIT", decodeError(t, resp).Error.Code, q)
		}
	})

	t.Run("invalid offset", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/blogs?offset=-1", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_OFFSET", decodeError(t, resp).Error.Code)
	})

	t.Run("internal error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, service.DefaultLimit, 0).Return(nil, errors.New("connection reset")).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/blogs", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		body := decodeError(t, resp)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.NotContains(t, body.Error.Message, "connection reset")
	})

	mockSvc.AssertExpectations(t)
}

func TestCreateResource(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResource[model.Blog, model.BlogInput])
		app := newTestApp()
		app.Post("/blogs", CreateResource[model.Blog, model.BlogInput](mockSvc))

		in := &model.BlogInput{Name: "Beatles Blog", Tagline: "All the latest Beatles news."}
		mockSvc.On("Create", mock.Anything, in).
			Return(&model.Blog{ID: 7, Name: in.Name, Tagline: in.Tagline}, nil).Once()

		resp, err := app.Test(jsonRequest(http.MethodPost, "/blogs", in))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var got model.Blog
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, int64(7), got.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("blog without name is rejected", func(t *testing.T) {
		repo := new(repoMocks.MockCRUD[model.Blog])
		app := newTestApp()
		app.Post("/blogs", CreateResource(service.NewBlogService(repo, validator.New())))

		resp, err := app.Test(jsonRequest(http.MethodPost, "/blogs", map[string]string{"tagline": "x"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		assert.Equal(t, "name is required", body.Error.Fields["name"])
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("datum without biased_index or opportunity_score is rejected", func(t *testing.T) {
		repo := new(repoMocks.MockCRUD[model.ProfileDatum])
		app := newTestApp()
		app.Post("/datum", CreateResource(service.NewProfileDatumService(repo, validator.New())))

		resp, err := app.Test(jsonRequest(http.MethodPost, "/datum", map[string]any{
			"category":       1,
			"reach_audience": 10,
			"reach_base":     100,
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeError(t, resp)
		assert.Contains(t, body.Error.Fields, "biased_index")
		assert.Contains(t, body.Error.Fields, "opportunity_score")
	})

	t.Run("malformed body", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResource[model.Blog, model.BlogInput])
		app := newTestApp()
		app.Post("/blogs", CreateResource[model.Blog, model.BlogInput](mockSvc))

		req := httptest.NewRequest(http.MethodPost, "/blogs", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid reference", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResource[model.Comment, model.CommentInput])
		app := newTestApp()
		app.Post("/comments", CreateResource[model.Comment, model.CommentInput](mockSvc))

		mockSvc.On("Create", mock.Anything, mock.AnythingOfType("*model.CommentInput")).
			Return(nil, fmt.Errorf("%w: comments_entry_id_fkey", service.ErrInvalidReference)).Once()

		resp, err := app.Test(jsonRequest(http.MethodPost, "/comments", map[string]any{"entry": 99, "body": "hi"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_REFERENCE", decodeError(t, resp).Error.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResource[model.Target, model.TargetInput])
		app := newTestApp()
		app.Post("/targets", CreateResource[model.Target, model.TargetInput](mockSvc))

		mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrConflict).Once()

		resp, err := app.Test(jsonRequest(http.MethodPost, "/targets", map[string]any{}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONFLICT", decodeError(t, resp).Error.Code)
	})
}

func TestGetResource(t *testing.T) {
	mockSvc := new(serviceMocks.MockResource[model.Entry, model.EntryInput])
	app := newTestApp()
	app.Get("/entries/:id", GetResource[model.Entry, model.EntryInput](mockSvc))

	t.Run("success with zero counters", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(3)).
			Return(&model.Entry{ID: 3, Blog: 1, Headline: "Hello", Authors: []int64{}}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/entries/3", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, float64(0), body["n_comments"])
		assert.Equal(t, float64(0), body["n_pingbacks"])
		assert.Equal(t, float64(0), body["rating"])
		assert.Equal(t, []any{}, body["authors"])
		assert.Nil(t, body["pub_date"])
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(404)).Return(nil, service.ErrNotFound).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/entries/404", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		for _, id := range []string{"abc", "0", "-1"} {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/entries/"+id, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, id)
			assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code, id)
		}
	})

	mockSvc.AssertExpectations(t)
}

func TestUpdateResource(t *testing.T) {
	mockSvc := new(serviceMocks.MockResource[model.Author, model.AuthorInput])
	app := newTestApp()
	app.Put("/authors/:id", UpdateResource[model.Author, model.AuthorInput](mockSvc))

	in := &model.AuthorInput{Name: "Paul", Email: "paul@example.com"}
	mockSvc.On("Update", mock.Anything, int64(2), in).
		Return(&model.Author{ID: 2, Name: in.Name, Email: in.Email}, nil).Once()

	resp, err := app.Test(jsonRequest(http.MethodPut, "/authors/2", in))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got model.Author
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "paul@example.com", got.Email)
	mockSvc.AssertExpectations(t)
}

func TestPatchResource(t *testing.T) {
	t.Run("decodes only supplied fields", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResource[model.Blog, model.BlogInput])
		app := newTestApp()
		app.Patch("/blogs/:id", PatchResource[model.Blog, model.BlogInput](mockSvc))

		mockSvc.On("Patch", mock.Anything, int64(1), &model.BlogInput{Tagline: "new"}).
			Return(&model.Blog{ID: 1, Name: "kept", Tagline: "new"}, nil).Once()

		resp, err := app.Test(jsonRequest(http.MethodPatch, "/blogs/1", map[string]string{"tagline": "new"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("overlay keeps stored fields", func(t *testing.T) {
		repo := new(repoMocks.MockCRUD[model.Blog])
		app := newTestApp()
		app.Patch("/blogs/:id", PatchResource(service.NewBlogService(repo, validator.New())))

		repo.On("FindByID", mock.Anything, int64(1)).
			Return(&model.Blog{ID: 1, Name: "Beatles Blog", Tagline: "old"}, nil).Once()
		repo.On("Update", mock.Anything, int64(1), &model.Blog{Name: "Beatles Blog", Tagline: "new"}).
			Return(&model.Blog{ID: 1, Name: "Beatles Blog", Tagline: "new"}, nil).Once()

		resp, err := app.Test(jsonRequest(http.MethodPatch, "/blogs/1", map[string]string{"tagline": "new"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got model.Blog
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "Beatles Blog", got.Name)
		assert.Equal(t, "new", got.Tagline)
		repo.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResource[model.Blog, model.BlogInput])
		app := newTestApp()
		app.Patch("/blogs/:id", PatchResource[model.Blog, model.BlogInput](mockSvc))

		req := httptest.NewRequest(http.MethodPatch, "/blogs/1", bytes.NewBufferString("[1,"))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})
}

func TestDeleteResource(t *testing.T) {
	mockSvc := new(serviceMocks.MockResource[model.Comment, model.CommentInput])
	app := newTestApp()
	app.Delete("/comments/:id", DeleteResource[model.Comment, model.CommentInput](mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(5)).Return(nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/comments/5", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(6)).Return(service.ErrNotFound).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/comments/6", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestAuthorBioHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthorBioService)
	app := newTestApp()
	app.Get("/authors/:id/bio", GetAuthorBio(mockSvc))
	app.Put("/authors/:id/bio", PutAuthorBio(mockSvc))
	app.Delete("/authors/:id/bio", DeleteAuthorBio(mockSvc))

	t.Run("get missing bio", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(1)).Return(nil, service.ErrNotFound).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/authors/1/bio", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("put", func(t *testing.T) {
		in := &model.AuthorBioInput{Body: "Bass and vocals."}
		mockSvc.On("Put", mock.Anything, int64(1), in).
			Return(&model.AuthorBio{ID: 4, Author: 1, Body: in.Body}, nil).Once()

		resp, err := app.Test(jsonRequest(http.MethodPut, "/authors/1/bio", in))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got model.AuthorBio
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, int64(1), got.Author)
	})

	t.Run("put validation error", func(t *testing.T) {
		verr := &validator.ValidationError{Errors: map[string]string{"body": "body is required"}}
		mockSvc.On("Put", mock.Anything, int64(2), &model.AuthorBioInput{}).Return(nil, verr).Once()

		resp, err := app.Test(jsonRequest(http.MethodPut, "/authors/2/bio", map[string]string{}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "body is required", decodeError(t, resp).Error.Fields["body"])
	})

	t.Run("delete", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(1)).Return(nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/authors/1/bio", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("invalid author id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/authors/x/bio", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func newRoutedApp(t *testing.T) (*fiber.App, Services) {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svcs := Services{
		Blogs:      new(serviceMocks.MockResource[model.Blog, model.BlogInput]),
		Entries:    new(serviceMocks.MockResource[model.Entry, model.EntryInput]),
		Authors:    new(serviceMocks.MockResource[model.Author, model.AuthorInput]),
		Comments:   new(serviceMocks.MockResource[model.Comment, model.CommentInput]),
		Datum:      new(serviceMocks.MockResource[model.ProfileDatum, model.ProfileDatumInput]),
		Categories: new(serviceMocks.MockResource[model.FacebookAdTargetingCategory, model.FacebookAdTargetingCategoryInput]),
		Targets:    new(serviceMocks.MockResource[model.Target, model.TargetInput]),
		Profiles:   new(serviceMocks.MockResource[model.Profile, model.ProfileInput]),
		AuthorBios: new(serviceMocks.MockAuthorBioService),
	}

	app := newTestApp()
	RegisterRoutes(app, db, svcs)
	return app, svcs
}

func TestRegisterRoutes(t *testing.T) {
	app, svcs := newRoutedApp(t)

	t.Run("collection is routed", func(t *testing.T) {
		blogs := svcs.Blogs.(*serviceMocks.MockResource[model.Blog, model.BlogInput])
		blogs.On("List", mock.Anything, service.DefaultLimit, 0).
			Return(&service.ListResult[model.Blog]{Items: []model.Blog{{ID: 1, Name: "b"}}, Total: 1}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/blogs", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		blogs.AssertExpectations(t)
	})

	t.Run("trailing slash is not routed", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/blogs/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("unknown route", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/widgets", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("wrong method", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/healthz", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("api root", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Len(t, body, len(collections))
		assert.Equal(t, "http://example.com/datum", body["datum"])
	})
}

func TestErrorHandler_InternalError(t *testing.T) {
	app := newTestApp()
	app.Get("/panic", func(c *fiber.Ctx) error {
		return sql.ErrConnDone
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeError(t, resp)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.Equal(t, "internal server error", body.Error.Message)
}

func TestErrorHandler_ClientErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fiber.ErrRequestEntityTooLarge, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE"},
		{fiber.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE"},
		{fiber.ErrTeapot, http.StatusTeapot, "CLIENT_ERROR"},
		{fiber.ErrServiceUnavailable, http.StatusServiceUnavailable, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			var recorded any
			app := newTestApp()
			app.Get("/x", func(c *fiber.Ctx) error {
				err := ErrorHandler()(c, tt.err)
				recorded = c.Locals(middleware.ErrorLocalKey)
				return err
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, decodeError(t, resp).Error.Code)

			if tt.status >= http.StatusInternalServerError {
				assert.NotNil(t, recorded)
			} else {
				assert.Nil(t, recorded)
			}
		})
	}
}

func TestCreateEntry_ValuesPostgresCannotStore(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	app := newTestApp()
	app.Post("/entries", CreateResource(service.NewEntryService(postgres.NewEntryPostgres(db), validator.New())))

	t.Run("counter above int4 range is a validation error", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/entries", map[string]any{
			"blog": 1, "headline": "h", "n_comments": 3000000000,
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		assert.Contains(t, body.Error.Fields, "n_comments")
	})

	t.Run("NUL in headline is a validation error", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/entries", map[string]any{
			"blog": 1, "headline": "a\u0000b",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decodeError(t, resp).Error.Fields, "headline")
	})

	t.Run("data exception from postgres is a client error", func(t *testing.T) {
		dbMock.ExpectBegin()
		dbMock.ExpectQuery("INSERT INTO entries").
			WillReturnError(&pgconn.PgError{Code: "22003", Message: "integer out of range"})
		dbMock.ExpectRollback()

		resp, err := app.Test(jsonRequest(http.MethodPost, "/entries", map[string]any{
			"blog": 1, "headline": "h", "rating": 5,
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeError(t, resp)
		assert.Equal(t, "INVALID_VALUE", body.Error.Code)
		assert.NotContains(t, body.Error.Message, "integer out of range")
	})

	assert.NoError(t, dbMock.ExpectationsWereMet())
}
