package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isodigm/blogcms/internal/api"
	"github.com/isodigm/blogcms/internal/domain"
	internal_errors "github.com/isodigm/blogcms/internal/errors"
	"github.com/isodigm/blogcms/internal/middleware"
)

// asUser mimics the auth middleware by planting an account in the context
// under the same key.
func asUser(user domain.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserKey, &user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func setupBlogRouter(h *Handler, viewer *domain.User) *chi.Mux {
	router := chi.NewRouter()

	router.Get("/api/blog/posts", h.ListPosts)
	router.Get("/api/blog/posts/{slug}", h.GetPostBySlug)
	router.Get("/api/blog/posts/{id}/comments", h.ListComments)
	router.Post("/api/blog/posts/{id}/comments", h.CreateComment)
	router.Get("/api/blog/categories", h.ListCategories)

	router.Group(func(r chi.Router) {
		if viewer != nil {
			r.Use(asUser(*viewer))
		}
		r.Post("/api/blog/admin/posts", h.CreatePost)
		r.Get("/api/blog/admin/posts", h.ListAllPosts)
		r.Get("/api/blog/admin/posts/{id}", h.GetPost)
		r.Put("/api/blog/admin/posts/{id}", h.UpdatePost)
		r.Delete("/api/blog/admin/posts/{id}", h.DeletePost)
		r.Get("/api/blog/admin/comments/pending", h.ListPendingComments)
		r.Put("/api/blog/admin/comments/{id}/approve", h.ApproveComment)
		r.Put("/api/blog/admin/comments/{id}/reject", h.RejectComment)
		r.Delete("/api/blog/admin/comments/{id}", h.DeleteComment)
		r.Post("/api/blog/admin/categories", h.CreateCategory)
		r.Put("/api/blog/admin/categories/{id}", h.UpdateCategory)
		r.Delete("/api/blog/admin/categories/{id}", h.DeleteCategory)
		r.Get("/api/settings", h.GetSettings)
		r.Put("/api/settings", h.UpdateSettings)
	})
	return router
}

func TestListPostsHandler(t *testing.T) {
	h := newTestHandler()
	h.posts = &MockPostService{
		PostsFunc: func(filter domain.PostFilter, includeUnpublished bool) ([]domain.Post, error) {
			assert.False(t, includeUnpublished)
			assert.Equal(t, "go", filter.Category)
			assert.Equal(t, 5, filter.Limit)
			assert.Equal(t, domain.UserId(42), filter.AuthorId)
			return []domain.Post{{Id: 1, Title: "First", Slug: "first"}}, nil
		},
	}
	router := setupBlogRouter(h, nil)

	req := createRequest(t, http.MethodGet, "/api/blog/posts?category=go&limit=5&author=42", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp api.PostsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Empty(t, resp.Posts[0].Content, "list view omits bodies")
}

func TestListPostsHandlerBadLimit(t *testing.T) {
	router := setupBlogRouter(newTestHandler(), nil)
	req := createRequest(t, http.MethodGet, "/api/blog/posts?limit=abc", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetPostBySlugHandler(t *testing.T) {
	h := newTestHandler()
	h.posts = &MockPostService{
		PublishedPostBySlugFunc: func(slug string) (domain.Post, error) {
			if slug != "hello-world" {
				return domain.Post{}, internal_errors.NotFound("Post not found")
			}
			return domain.Post{Id: 1, Slug: slug, Content: "body", Status: domain.PostPublished}, nil
		},
	}
	h.comments = &MockCommentService{
		CommentsForPostFunc: func(postId domain.PostId, includeAll bool) ([]domain.Comment, error) {
			assert.False(t, includeAll)
			return []domain.Comment{{Id: 9, PostId: postId, Content: "Nice post!", Status: domain.CommentApproved}}, nil
		},
	}
	router := setupBlogRouter(h, nil)

	req := createRequest(t, http.MethodGet, "/api/blog/posts/hello-world", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"content":"body"`)

	var resp api.PostResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Comments, 1)
	assert.Equal(t, "Nice post!", resp.Comments[0].Content)

	req = createRequest(t, http.MethodGet, "/api/blog/posts/missing", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreatePostHandler(t *testing.T) {
	t.Run("authored by context user", func(t *testing.T) {
		h := newTestHandler()
		var gotAuthor domain.UserId
		h.posts = &MockPostService{
			CreatePostFunc: func(authorId domain.UserId, draft domain.PostDraftData) (domain.Post, error) {
				gotAuthor = authorId
				return domain.Post{Id: 1, Title: draft.Title, AuthorId: authorId}, nil
			},
		}
		router := setupBlogRouter(h, &domain.User{Id: 42, Admin: true})

		req := createRequest(t, http.MethodPost, "/api/blog/admin/posts",
			[]byte(`{"title":"Hello","content":"Body"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, domain.UserId(42), gotAuthor)
	})

	t.Run("no user in context", func(t *testing.T) {
		router := setupBlogRouter(newTestHandler(), nil)
		req := createRequest(t, http.MethodPost, "/api/blog/admin/posts",
			[]byte(`{"title":"Hello","content":"Body"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing title", func(t *testing.T) {
		router := setupBlogRouter(newTestHandler(), &domain.User{Id: 42, Admin: true})
		req := createRequest(t, http.MethodPost, "/api/blog/admin/posts", []byte(`{"content":"Body"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateDeletePostHandlers(t *testing.T) {
	h := newTestHandler()
	admin := &domain.User{Id: 1, Admin: true}
	router := setupBlogRouter(h, admin)

	req := createRequest(t, http.MethodPut, "/api/blog/admin/posts/3", []byte(`{"title":"T","content":"C"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = createRequest(t, http.MethodDelete, "/api/blog/admin/posts/3", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	req = createRequest(t, http.MethodPut, "/api/blog/admin/posts/abc", []byte(`{"title":"T","content":"C"}`))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateCommentHandler(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		h := newTestHandler()
		var gotViewer *domain.User
		h.comments = &MockCommentService{
			CreateCommentFunc: func(postId domain.PostId, draft domain.CommentDraftData, viewer *domain.User) (domain.Comment, error) {
				gotViewer = viewer
				assert.Equal(t, domain.PostId(5), postId)
				assert.Equal(t, "Alice", draft.AuthorName)
				return domain.Comment{Id: 1, PostId: postId, Status: domain.CommentPending}, nil
			},
		}
		router := setupBlogRouter(h, nil)

		req := createRequest(t, http.MethodPost, "/api/blog/posts/5/comments",
			[]byte(`{"content":"Nice","author_name":"Alice","author_email":"alice@example.com"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Nil(t, gotViewer)
	})

	t.Run("comment response hides email", func(t *testing.T) {
		h := newTestHandler()
		h.comments = &MockCommentService{
			CreateCommentFunc: func(postId domain.PostId, draft domain.CommentDraftData, viewer *domain.User) (domain.Comment, error) {
				return domain.Comment{Id: 1, PostId: postId, AuthorName: "Alice", AuthorEmail: "alice@example.com", IpAddress: "10.0.0.1"}, nil
			},
		}
		router := setupBlogRouter(h, nil)

		req := createRequest(t, http.MethodPost, "/api/blog/posts/5/comments",
			[]byte(`{"content":"Nice","author_name":"Alice","author_email":"alice@example.com"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.NotContains(t, rr.Body.String(), "alice@example.com")
		assert.NotContains(t, rr.Body.String(), "10.0.0.1")
	})
}

func TestCommentModerationHandlers(t *testing.T) {
	h := newTestHandler()
	var approved, rejected domain.CommentId
	h.comments = &MockCommentService{
		ApproveCommentFunc: func(id domain.CommentId) error { approved = id; return nil },
		RejectCommentFunc:  func(id domain.CommentId) error { rejected = id; return nil },
	}
	router := setupBlogRouter(h, &domain.User{Id: 1, Admin: true})

	req := createRequest(t, http.MethodPut, "/api/blog/admin/comments/9/approve", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.CommentId(9), approved)

	req = createRequest(t, http.MethodPut, "/api/blog/admin/comments/10/reject", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.CommentId(10), rejected)
}

func TestCategoryHandlers(t *testing.T) {
	h := newTestHandler()
	router := setupBlogRouter(h, &domain.User{Id: 1, Admin: true})

	req := createRequest(t, http.MethodPost, "/api/blog/admin/categories", []byte(`{"name":"Go"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code)

	req = createRequest(t, http.MethodPost, "/api/blog/admin/categories", []byte(`{}`))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = createRequest(t, http.MethodGet, "/api/blog/categories", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestSettingsHandlers(t *testing.T) {
	h := newTestHandler()
	var written map[string]string
	h.settings = &MockSettingsService{
		UpdateSettingsFunc: func(values map[string]string) (map[string]string, error) {
			written = values
			return values, nil
		},
	}
	router := setupBlogRouter(h, &domain.User{Id: 1, Admin: true})

	req := createRequest(t, http.MethodGet, "/api/settings", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "site_name")

	req = createRequest(t, http.MethodPut, "/api/settings", []byte(`{"site_name":"My Blog"}`))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "My Blog", written["site_name"])
}
