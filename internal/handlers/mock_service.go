package handlers

import (
	"context"
	"net/http"

	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerToken string
	registerErr   error
	loginToken    string
	loginErr      error
	parseID       string
	parseErr      error
	currentUser   *models.User
	currentErr    error

	lastRegister   service.RegisterParams
	lastLoginEmail string
	lastLoginPass  string
	lastParseToken string
	lastCurrentID  string
}

func (m *mockAuth) Register(ctx context.Context, p service.RegisterParams) (string, error) {
	m.lastRegister = p
	return m.registerToken, m.registerErr
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (string, error) {
	m.lastLoginEmail = email
	m.lastLoginPass = password
	return m.loginToken, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

func (m *mockAuth) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	m.lastCurrentID = userID
	return m.currentUser, m.currentErr
}

type mockPosts struct {
	post       *models.Post
	posts      []models.Post
	likes      []models.Like
	comment    *models.Comment
	comments   []models.Comment
	createErr  error
	listErr    error
	getErr     error
	deleteErr  error
	likeErr    error
	unlikeErr  error
	commentErr error
	delComErr  error

	lastUserID    string
	lastText      string
	lastPostID    string
	lastCommentID string
}

func (m *mockPosts) Create(ctx context.Context, userID, text string) (*models.Post, error) {
	m.lastUserID = userID
	m.lastText = text
	return m.post, m.createErr
}

func (m *mockPosts) List(ctx context.Context) ([]models.Post, error) {
	return m.posts, m.listErr
}

func (m *mockPosts) GetByID(ctx context.Context, id string) (*models.Post, error) {
	m.lastPostID = id
	return m.post, m.getErr
}

func (m *mockPosts) Delete(ctx context.Context, id, userID string) error {
	m.lastPostID = id
	m.lastUserID = userID
	return m.deleteErr
}

func (m *mockPosts) Like(ctx context.Context, id, userID string) ([]models.Like, error) {
	m.lastPostID = id
	m.lastUserID = userID
	return m.likes, m.likeErr
}

func (m *mockPosts) Unlike(ctx context.Context, id, userID string) ([]models.Like, error) {
	m.lastPostID = id
	m.lastUserID = userID
	return m.likes, m.unlikeErr
}

func (m *mockPosts) AddComment(ctx context.Context, id, userID, text string) (*models.Comment, error) {
	m.lastPostID = id
	m.lastUserID = userID
	m.lastText = text
	return m.comment, m.commentErr
}

func (m *mockPosts) DeleteComment(ctx context.Context, postID, commentID, userID string) ([]models.Comment, error) {
	m.lastPostID = postID
	m.lastCommentID = commentID
	m.lastUserID = userID
	return m.comments, m.delComErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
