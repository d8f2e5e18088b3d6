package service

import (
	"context"
	"errors"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/repository"
)

// Domain errors. Handlers map these to HTTP statuses with errors.Is.
var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrForbidden          = errors.New("user not authorized")
	ErrAlreadyLiked       = errors.New("post already liked")
	ErrNotLiked           = errors.New("post has not been liked")
)

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// Authorization covers registration, login and token handling.
type Authorization interface {
	Register(ctx context.Context, p RegisterParams) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ParseToken(accessToken string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

// Posts exposes post CRUD plus like/comment mutations. Every mutation is an
// ownership- or invariant-checked read-modify-write against the store.
type Posts interface {
	Create(ctx context.Context, userID, text string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Delete(ctx context.Context, id, userID string) error
	Like(ctx context.Context, id, userID string) ([]models.Like, error)
	Unlike(ctx context.Context, id, userID string) ([]models.Like, error)
	AddComment(ctx context.Context, id, userID, text string) (*models.Comment, error)
	DeleteComment(ctx context.Context, postID, commentID, userID string) ([]models.Comment, error)
}

// Feed is the in-process broadcast hub behind the live websocket feed.
type Feed interface {
	Subscribe() (<-chan FeedEvent, func())
	Publish(e FeedEvent)
}

type Service struct {
	Authorization
	Posts
	Feed
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg TokenConfig) *Service {
	feed := NewFeedHub()
	return &Service{
		Authorization: NewAuthService(repos.Users, cfg),
		Posts:         NewPostService(repos.Posts, repos.Users, feed),
		Feed:          feed,
	}
}

// DefaultTokenTTL matches the validity window of issued credentials.
const DefaultTokenTTL = 100 * time.Hour

// TokenConfig is injected into the auth service at construction; the signing
// secret is never read from ambient state.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
}
