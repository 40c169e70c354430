package models

import (
	"time"
)

// Post is the post aggregate. Name and avatar are snapshots of the author at
// creation time; later profile changes do not alter existing posts. Likes and
// comments are embedded and the whole document is rewritten on save.
type Post struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user" bson:"user_id"`
	Text      string    `json:"text" bson:"text"`
	Name      string    `json:"name" bson:"name"`
	Avatar    string    `json:"avatar" bson:"avatar"`
	Likes     []Like    `json:"likes" bson:"likes"`
	Comments  []Comment `json:"comments" bson:"comments"`
	CreatedAt time.Time `json:"date" bson:"date"`
}

// Like records that a user liked the post. A user appears at most once.
type Like struct {
	UserID string `json:"user" bson:"user_id"`
}

// Comment carries a snapshot of the commenting user's name at creation time.
type Comment struct {
	ID        string    `json:"id" bson:"id"`
	UserID    string    `json:"user" bson:"user_id"`
	Text      string    `json:"text" bson:"text"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"date" bson:"date"`
}

type CreatePostRequest struct {
	Text string `json:"text"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

func (r *CreatePostRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Text == "" {
		errors["text"] = "Text is required"
	}

	return errors
}

func (r *CommentRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Text == "" {
		errors["text"] = "Text is required"
	}

	return errors
}

// HasLike reports whether the user already liked the post.
func (p *Post) HasLike(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// AddLike prepends a like for the user. Callers must check HasLike first to
// preserve set semantics.
func (p *Post) AddLike(userID string) {
	p.Likes = append([]Like{{UserID: userID}}, p.Likes...)
}

// RemoveLike removes the user's like. Returns false when the user never liked
// the post; the like list is left unchanged in that case.
func (p *Post) RemoveLike(userID string) bool {
	for i, l := range p.Likes {
		if l.UserID == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return true
		}
	}
	return false
}

// AddComment prepends the comment, newest first.
func (p *Post) AddComment(c Comment) {
	p.Comments = append([]Comment{c}, p.Comments...)
}

// FindComment returns the comment with the given id, or nil.
func (p *Post) FindComment(id string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}

// RemoveComment removes the comment with the given id, matching strictly on
// the id field. Returns false when no comment matches.
func (p *Post) RemoveComment(id string) bool {
	for i, c := range p.Comments {
		if c.ID == id {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return true
		}
	}
	return false
}
