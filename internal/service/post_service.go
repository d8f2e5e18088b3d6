package service

import (
	"context"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/repository"

	"github.com/google/uuid"
)

// PostService implements post CRUD and the like/comment invariants.
// Mutations follow one shape: load the post document, apply a pure transform
// on its like/comment lists, persist once, publish a feed event.
type PostService struct {
	posts repository.Posts
	users repository.Users
	feed  Feed
}

func NewPostService(posts repository.Posts, users repository.Users, feed Feed) *PostService {
	return &PostService{posts: posts, users: users, feed: feed}
}

var _ Posts = (*PostService)(nil)

// Create persists a new post carrying a snapshot of the author's current
// name and avatar.
func (s *PostService) Create(ctx context.Context, userID, text string) (*models.Post, error) {
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	p := &models.Post{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Likes:     []models.Like{},
		Comments:  []models.Comment{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}

	s.publish(EventPostCreated, p.ID, p)
	return p, nil
}

// List returns all posts, most recent first.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx)
}

// GetByID returns a single post. A malformed id simply misses the lookup.
func (s *PostService) GetByID(ctx context.Context, id string) (*models.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// Delete removes a post. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, id, userID string) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return ErrForbidden
	}
	return s.posts.Delete(ctx, id)
}

// Like prepends a like from userID. At most one like per (post, user).
func (s *PostService) Like(ctx context.Context, id, userID string) ([]models.Like, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.LikedBy(userID) {
		return nil, ErrAlreadyLiked
	}

	p.Likes = p.LikesWith(userID)
	if err := s.posts.Save(ctx, p); err != nil {
		return nil, err
	}

	s.publish(EventPostLiked, p.ID, p.Likes)
	return p.Likes, nil
}

// Unlike removes userID's like, failing if none exists.
func (s *PostService) Unlike(ctx context.Context, id, userID string) ([]models.Like, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	likes, found := p.LikesWithout(userID)
	if !found {
		return nil, ErrNotLiked
	}

	p.Likes = likes
	if err := s.posts.Save(ctx, p); err != nil {
		return nil, err
	}

	s.publish(EventPostUnliked, p.ID, p.Likes)
	return p.Likes, nil
}

// AddComment prepends a comment carrying the commenter's name/avatar
// snapshot at comment time.
func (s *PostService) AddComment(ctx context.Context, id, userID, text string) (*models.Comment, error) {
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c := models.Comment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: time.Now().UTC(),
	}
	p.Comments = p.CommentsWith(c)
	if err := s.posts.Save(ctx, p); err != nil {
		return nil, err
	}

	s.publish(EventCommentAdded, p.ID, c)
	return &c, nil
}

// DeleteComment removes a comment by id. Only the comment's author may
// delete it; the remaining comment list is returned.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID, userID string) ([]models.Comment, error) {
	p, err := s.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	c := p.FindComment(commentID)
	if c == nil {
		return nil, ErrCommentNotFound
	}
	if c.UserID != userID {
		return nil, ErrForbidden
	}

	p.Comments, _ = p.CommentsWithout(commentID)
	if err := s.posts.Save(ctx, p); err != nil {
		return nil, err
	}

	s.publish(EventCommentDeleted, p.ID, p.Comments)
	return p.Comments, nil
}

func (s *PostService) publish(typ, postID string, data any) {
	if s.feed == nil {
		return
	}
	s.feed.Publish(FeedEvent{Type: typ, PostID: postID, Data: data})
}
