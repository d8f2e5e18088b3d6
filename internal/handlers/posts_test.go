package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/service"
)

var errTestInfra = errors.New("infra down")

// newPostsRouter wires a router whose middleware authenticates as userID.
func newPostsRouter(posts *mockPosts, userID string) http.Handler {
	return newTestRouter(&service.Service{
		Authorization: &mockAuth{parseID: userID},
		Posts:         posts,
	})
}

func doReq(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePost(t *testing.T) {
	t.Run("success returns post with author snapshot", func(t *testing.T) {
		posts := &mockPosts{post: &models.Post{
			ID: "p1", UserID: "u1", Text: "hi", Name: "A", Avatar: "http://ava/a",
			Likes: []models.Like{}, Comments: []models.Comment{}, CreatedAt: time.Now().UTC(),
		}}
		r := newPostsRouter(posts, "u1")

		w := doReq(t, r, http.MethodPost, "/api/posts", `{"text":"hi"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d; body=%s", w.Code, w.Body.String())
		}

		var out models.Post
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if out.ID != "p1" || out.Name != "A" {
			t.Fatalf("unexpected post: %+v", out)
		}
		if posts.lastUserID != "u1" || posts.lastText != "hi" {
			t.Fatalf("service args: user=%q text=%q", posts.lastUserID, posts.lastText)
		}
	})

	t.Run("missing text yields 400 with message", func(t *testing.T) {
		posts := &mockPosts{}
		r := newPostsRouter(posts, "u1")

		w := doReq(t, r, http.MethodPost, "/api/posts", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status: got %d; body=%s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Text is required") {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		if posts.lastText != "" {
			t.Fatalf("service called despite validation failure")
		}
	})
}

func TestListPosts(t *testing.T) {
	posts := &mockPosts{posts: []models.Post{{ID: "p2"}, {ID: "p1"}}}
	r := newPostsRouter(posts, "u1")

	w := doReq(t, r, http.MethodGet, "/api/posts", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d; body=%s", w.Code, w.Body.String())
	}

	var out []models.Post
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 2 || out[0].ID != "p2" {
		t.Fatalf("unexpected posts: %+v", out)
	}
}

func TestGetPost(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		posts := &mockPosts{getErr: service.ErrPostNotFound}
		r := newPostsRouter(posts, "u1")

		w := doReq(t, r, http.MethodGet, "/api/posts/nope", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status: got %d; body=%s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Post not found") {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("found", func(t *testing.T) {
		posts := &mockPosts{post: &models.Post{ID: "p1", Text: "hi"}}
		r := newPostsRouter(posts, "u1")

		w := doReq(t, r, http.MethodGet, "/api/posts/p1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d; body=%s", w.Code, w.Body.String())
		}
		if posts.lastPostID != "p1" {
			t.Fatalf("service got post id %q", posts.lastPostID)
		}
	})
}

func TestDeletePost(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantIn   string
	}{
		{name: "success", wantCode: http.StatusOK, wantIn: "Post removed"},
		{name: "not found", err: service.ErrPostNotFound, wantCode: http.StatusNotFound, wantIn: "Post not found"},
		{name: "non-author forbidden", err: service.ErrForbidden, wantCode: http.StatusForbidden, wantIn: "User not authorized"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			posts := &mockPosts{deleteErr: tc.err}
			r := newPostsRouter(posts, "u1")

			w := doReq(t, r, http.MethodDelete, "/api/posts/p1", "")
			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d; body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tc.wantIn) {
				t.Fatalf("body %s does not contain %q", w.Body.String(), tc.wantIn)
			}
			if posts.lastPostID != "p1" || posts.lastUserID != "u1" {
				t.Fatalf("service args: post=%q user=%q", posts.lastPostID, posts.lastUserID)
			}
		})
	}
}

func TestLikeUnlike(t *testing.T) {
	t.Run("like returns like list", func(t *testing.T) {
		posts := &mockPosts{likes: []models.Like{{UserID: "u1"}}}
		r := newPostsRouter(posts, "u1")

		w := doReq(t, r, http.MethodPut, "/api/posts/like/p1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d; body=%s", w.Code, w.Body.String())
		}

		var out []models.Like
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(out) != 1 || out[0].UserID != "u1" {
			t.Fatalf("unexpected likes: %+v", out)
		}
	})

	t.Run("already liked yields 400", func(t *testing.T) {
		posts := &mockPosts{likeErr: service.ErrAlreadyLiked}
		r := newPostsRouter(posts, "u1")

		w := doReq(t, r, http.MethodPut, "/api/posts/like/p1", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status: got %d; body=%s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Post already liked") {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("not liked yields 400", func(t *testing.T) {
		posts := &mockPosts{unlikeErr: service.ErrNotLiked}
		r := newPostsRouter(posts, "u1")

		w := doReq(t, r, http.MethodPut, "/api/posts/unlike/p1", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status: got %d; body=%s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Post has not been liked") {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("like on missing post yields 404", func(t *testing.T) {
		posts := &mockPosts{likeErr: service.ErrPostNotFound}
		r := newPostsRouter(posts, "u1")

		w := doReq(t, r, http.MethodPut, "/api/posts/like/nope", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status: got %d; body=%s", w.Code, w.Body.String())
		}
	})
}

func TestComments(t *testing.T) {
	t.Run("add returns the created comment", func(t *testing.T) {
		posts := &mockPosts{comment: &models.Comment{ID: "c1", UserID: "u1", Text: "nice", Name: "A"}}
		r := newPostsRouter(posts, "u1")

		w := doReq(t, r, http.MethodPost, "/api/posts/comment/p1", `{"text":"nice"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d; body=%s", w.Code, w.Body.String())
		}

		var out models.Comment
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if out.ID != "c1" || out.Name != "A" {
			t.Fatalf("unexpected comment: %+v", out)
		}
		if posts.lastPostID != "p1" || posts.lastText != "nice" {
			t.Fatalf("service args: post=%q text=%q", posts.lastPostID, posts.lastText)
		}
	})

	t.Run("empty text yields 400", func(t *testing.T) {
		posts := &mockPosts{}
		r := newPostsRouter(posts, "u1")

		w := doReq(t, r, http.MethodPost, "/api/posts/comment/p1", `{"text":""}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status: got %d; body=%s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Text is required") {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("delete returns remaining comments", func(t *testing.T) {
		posts := &mockPosts{comments: []models.Comment{{ID: "c2"}}}
		r := newPostsRouter(posts, "u1")

		w := doReq(t, r, http.MethodDelete, "/api/posts/comment/p1/c1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d; body=%s", w.Code, w.Body.String())
		}
		if posts.lastPostID != "p1" || posts.lastCommentID != "c1" || posts.lastUserID != "u1" {
			t.Fatalf("service args: post=%q comment=%q user=%q",
				posts.lastPostID, posts.lastCommentID, posts.lastUserID)
		}

		var out []models.Comment
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(out) != 1 || out[0].ID != "c2" {
			t.Fatalf("unexpected comments: %+v", out)
		}
	})

	t.Run("delete by non-author yields 403", func(t *testing.T) {
		posts := &mockPosts{delComErr: service.ErrForbidden}
		r := newPostsRouter(posts, "u1")

		w := doReq(t, r, http.MethodDelete, "/api/posts/comment/p1/c1", "")
		if w.Code != http.StatusForbidden {
			t.Fatalf("status: got %d; body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("delete missing comment yields 404", func(t *testing.T) {
		posts := &mockPosts{delComErr: service.ErrCommentNotFound}
		r := newPostsRouter(posts, "u1")

		w := doReq(t, r, http.MethodDelete, "/api/posts/comment/p1/nope", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status: got %d; body=%s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "Comment not found") {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestStoreFailureMapsToServerError(t *testing.T) {
	posts := &mockPosts{listErr: errTestInfra}
	r := newPostsRouter(posts, "u1")

	w := doReq(t, r, http.MethodGet, "/api/posts", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d; body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Server Error") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
