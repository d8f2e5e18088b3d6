package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"devconnect/internal/models"
)

// PostRepository stores each post as a single row; the likes and comments
// sequences live in JSON columns so a post round-trips as one document.
type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

var _ Posts = (*PostRepository)(nil)

const (
	insertPostSQL = `INSERT INTO posts (id, user_id, text, name, avatar, likes, comments, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	selectPostSQL = `SELECT id, user_id, text, name, avatar, likes, comments, created_at FROM posts`

	selectPostByIDSQL = selectPostSQL + ` WHERE id = ?`
	listPostsSQL      = selectPostSQL + ` ORDER BY created_at DESC`

	updatePostSQL = `UPDATE posts SET likes = ?, comments = ? WHERE id = ?`
	deletePostSQL = `DELETE FROM posts WHERE id = ?`
)

// Create inserts a new post row.
func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	likes, comments, err := marshalNested(p)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertPostSQL,
		p.ID, p.UserID, p.Text, p.Name, p.Avatar, likes, comments, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert post %q: %w", p.ID, err)
	}
	return nil
}

// GetByID fetches a post by id. Returns (nil, nil) if not found.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, selectPostByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select post %q: %w", id, err)
	}
	return p, nil
}

// List returns all posts, most recent first.
func (r *PostRepository) List(ctx context.Context) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, listPostsSQL)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Save rewrites the mutable parts of a post (likes and comments).
func (r *PostRepository) Save(ctx context.Context, p *models.Post) error {
	likes, comments, err := marshalNested(p)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, updatePostSQL, likes, comments, p.ID); err != nil {
		return fmt.Errorf("update post %q: %w", p.ID, err)
	}
	return nil
}

// Delete removes a post row.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deletePostSQL, id); err != nil {
		return fmt.Errorf("delete post %q: %w", id, err)
	}
	return nil
}

func marshalNested(p *models.Post) (likes, comments []byte, err error) {
	if likes, err = json.Marshal(p.Likes); err != nil {
		return nil, nil, fmt.Errorf("marshal likes for post %q: %w", p.ID, err)
	}
	if comments, err = json.Marshal(p.Comments); err != nil {
		return nil, nil, fmt.Errorf("marshal comments for post %q: %w", p.ID, err)
	}
	return likes, comments, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*models.Post, error) {
	var (
		p        models.Post
		likes    []byte
		comments []byte
	)
	if err := s.Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &likes, &comments, &p.CreatedAt); err != nil {
		return nil, err
	}
	if len(likes) > 0 {
		if err := json.Unmarshal(likes, &p.Likes); err != nil {
			return nil, fmt.Errorf("unmarshal likes for post %q: %w", p.ID, err)
		}
	}
	if len(comments) > 0 {
		if err := json.Unmarshal(comments, &p.Comments); err != nil {
			return nil, fmt.Errorf("unmarshal comments for post %q: %w", p.ID, err)
		}
	}
	if p.Likes == nil {
		p.Likes = []models.Like{}
	}
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	return &p, nil
}
