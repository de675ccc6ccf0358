package domain

import "time"

// Like records a single user's like on a post.
type Like struct {
	UserID string `json:"user"`
}

// Post is a blog entry. The author name and picture are a snapshot taken when
// the post was written and are not kept in sync with the user record.
type Post struct {
	ID              string    `json:"id"`
	AuthorID        string    `json:"user"`
	Header          string    `json:"header"`
	Body            string    `json:"body"`
	AuthorFirstName string    `json:"firstName"`
	AuthorLastName  string    `json:"lastName"`
	AuthorPicture   string    `json:"picture,omitempty"`
	PostedOn        time.Time `json:"postedOn"`
	LastEdited      time.Time `json:"lastEdited"`
	IsDeleted       bool      `json:"isDeleted"`
	Likes           []Like    `json:"likes"`
}

// LikedBy reports whether userID appears in the post's likes.
func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// PostDraft is the validated input for writing or editing a post.
type PostDraft struct {
	Header  string `json:"header"  validate:"required"              msg:"Header is required"`
	Body    string `json:"body"    validate:"required"              msg:"Body is required"`
	Picture string `json:"picture" validate:"omitempty,url,max=2048" msg:"Picture must be a valid URL"`
}
