package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/service"
)

// In-memory repositories so the full stack (router, middleware, services,
// token signing) runs without a database.

type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[string]*models.User{}} }

func (m *memUsers) Create(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.users {
		if e.Email == u.Email {
			return fmt.Errorf("unique constraint: email %q", u.Email)
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

type memPosts struct {
	mu    sync.Mutex
	posts map[string]*models.Post
}

func newMemPosts() *memPosts { return &memPosts{posts: map[string]*models.Post{}} }

func (m *memPosts) Create(ctx context.Context, p *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.posts[p.ID] = &cp
	return nil
}

func (m *memPosts) GetByID(ctx context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memPosts) List(ctx context.Context) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Post
	for _, p := range m.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memPosts) Save(ctx context.Context, p *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.posts[p.ID] = &cp
	return nil
}

func (m *memPosts) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.posts, id)
	return nil
}

func TestEndToEnd_RegisterPostLikeUnlike(t *testing.T) {
	users := newMemUsers()
	posts := newMemPosts()
	feed := service.NewFeedHub()
	cfg := service.TokenConfig{Secret: []byte("e2e-secret"), TTL: time.Hour}

	svc := &service.Service{
		Authorization: service.NewAuthService(users, cfg),
		Posts:         service.NewPostService(posts, users, feed),
		Feed:          feed,
	}
	r := newTestRouter(svc)

	do := func(method, path, body, token string) *httptest.ResponseRecorder {
		t.Helper()
		w := httptest.NewRecorder()
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		r.ServeHTTP(w, req)
		return w
	}

	// register
	w := do(http.MethodPost, "/api/users", `{"name":"A","email":"a@x.com","password":"secret1"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	var tokenResp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &tokenResp); err != nil || tokenResp.Token == "" {
		t.Fatalf("register token: err=%v body=%s", err, w.Body.String())
	}
	token := tokenResp.Token

	// second registration with the same email fails, no second user
	w = do(http.MethodPost, "/api/users", `{"name":"B","email":"a@x.com","password":"secret2"}`, "")
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "User already exists") {
		t.Fatalf("duplicate register: %d %s", w.Code, w.Body.String())
	}
	if len(users.users) != 1 {
		t.Fatalf("duplicate registration created a user")
	}

	// create post with author snapshot
	w = do(http.MethodPost, "/api/posts", `{"text":"hi"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("create post: %d %s", w.Code, w.Body.String())
	}
	var post models.Post
	if err := json.Unmarshal(w.Body.Bytes(), &post); err != nil {
		t.Fatalf("unmarshal post: %v", err)
	}
	if post.Name != "A" || post.Text != "hi" {
		t.Fatalf("author snapshot missing: %+v", post)
	}

	// list includes the post first
	w = do(http.MethodGet, "/api/posts", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("list posts: %d %s", w.Code, w.Body.String())
	}
	var list []models.Post
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(list) == 0 || list[0].ID != post.ID {
		t.Fatalf("post not first in list: %+v", list)
	}

	// like
	w = do(http.MethodPut, "/api/posts/like/"+post.ID, "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("like: %d %s", w.Code, w.Body.String())
	}
	var likes []models.Like
	if err := json.Unmarshal(w.Body.Bytes(), &likes); err != nil || len(likes) != 1 {
		t.Fatalf("like list: err=%v body=%s", err, w.Body.String())
	}

	// like again
	w = do(http.MethodPut, "/api/posts/like/"+post.ID, "", token)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Post already liked") {
		t.Fatalf("double like: %d %s", w.Code, w.Body.String())
	}

	// unlike
	w = do(http.MethodPut, "/api/posts/unlike/"+post.ID, "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("unlike: %d %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &likes); err != nil || len(likes) != 0 {
		t.Fatalf("like list after unlike: err=%v body=%s", err, w.Body.String())
	}

	// comment, then delete it
	w = do(http.MethodPost, "/api/posts/comment/"+post.ID, `{"text":"nice"}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("comment: %d %s", w.Code, w.Body.String())
	}
	var comment models.Comment
	if err := json.Unmarshal(w.Body.Bytes(), &comment); err != nil || comment.ID == "" {
		t.Fatalf("comment body: err=%v body=%s", err, w.Body.String())
	}
	if comment.Name != "A" {
		t.Fatalf("comment snapshot missing: %+v", comment)
	}

	w = do(http.MethodDelete, "/api/posts/comment/"+post.ID+"/"+comment.ID, "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete comment: %d %s", w.Code, w.Body.String())
	}

	// requests without a token are rejected
	w = do(http.MethodGet, "/api/posts", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list: %d %s", w.Code, w.Body.String())
	}

	// current user roundtrip, no password leaked
	w = do(http.MethodGet, "/api/auth", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("current user: %d %s", w.Code, w.Body.String())
	}
	var me models.User
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil || me.Email != "a@x.com" {
		t.Fatalf("current user body: err=%v body=%s", err, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("password leaked: %s", w.Body.String())
	}
}
