package models

import "time"

// Like references the user who liked a post. One per (post, user).
type Like struct {
	UserID string `json:"user_id"`
}

// Comment carries an author snapshot (name/avatar at comment time),
// independent of later user edits.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// Post is a single feed entry. UserID is the author and is immutable after
// creation; Name/Avatar are snapshots taken when the post was created.
// Likes and Comments are ordered most recent first.
type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

// LikedBy reports whether userID already has a like on the post.
func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// LikesWith returns a new like list with a like from userID prepended.
// The receiver is not modified; callers persist the returned slice.
func (p *Post) LikesWith(userID string) []Like {
	out := make([]Like, 0, len(p.Likes)+1)
	out = append(out, Like{UserID: userID})
	return append(out, p.Likes...)
}

// LikesWithout returns a new like list with the first like from userID
// removed, and whether such a like existed.
func (p *Post) LikesWithout(userID string) ([]Like, bool) {
	for i, l := range p.Likes {
		if l.UserID == userID {
			out := make([]Like, 0, len(p.Likes)-1)
			out = append(out, p.Likes[:i]...)
			return append(out, p.Likes[i+1:]...), true
		}
	}
	return p.Likes, false
}

// CommentsWith returns a new comment list with c prepended.
func (p *Post) CommentsWith(c Comment) []Comment {
	out := make([]Comment, 0, len(p.Comments)+1)
	out = append(out, c)
	return append(out, p.Comments...)
}

// FindComment returns the comment with the given id, or nil.
func (p *Post) FindComment(commentID string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}

// CommentsWithout returns a new comment list with the identified comment
// removed, and whether it existed.
func (p *Post) CommentsWithout(commentID string) ([]Comment, bool) {
	for i, c := range p.Comments {
		if c.ID == commentID {
			out := make([]Comment, 0, len(p.Comments)-1)
			out = append(out, p.Comments[:i]...)
			return append(out, p.Comments[i+1:]...), true
		}
	}
	return p.Comments, false
}
