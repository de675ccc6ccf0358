package handler

import (
	"time"

	"github.com/bloglane/blog-api/internal/core/domain"
	"github.com/bloglane/blog-api/internal/core/ports"
)

// errorEnvelope documents the error body rendered by the central error handler.
type errorEnvelope struct {
	Errors []domain.FieldError `json:"errors"`
}

type listPostsQuery struct {
	Page   int    `json:"page"   query:"page"   validate:"omitempty,min=1"              msg:"page must be a positive number"`
	Limit  int    `json:"limit"  query:"limit"  validate:"omitempty,min=1,max=100"      msg:"limit must be between 1 and 100"`
	Author string `json:"author" query:"author" validate:"omitempty,hexadecimal,len=24" msg:"author must be a user id"`
}

type likeResponse struct {
	UserID string `json:"user"`
}

type postResponse struct {
	ID         string         `json:"id"`
	User       string         `json:"user"`
	Header     string         `json:"header"`
	Body       string         `json:"body"`
	FirstName  string         `json:"firstName"`
	LastName   string         `json:"lastName"`
	Picture    string         `json:"picture,omitempty"`
	PostedOn   time.Time      `json:"postedOn"`
	LastEdited time.Time      `json:"lastEdited"`
	Likes      []likeResponse `json:"likes"`
}

type likesResponse struct {
	Likes []likeResponse `json:"likes"`
}

type paginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type listPostsResponse struct {
	Data       []postResponse `json:"data"`
	Pagination paginationMeta `json:"pagination"`
}

func toLikes(in []domain.Like) []likeResponse {
	out := make([]likeResponse, 0, len(in))
	for _, l := range in {
		out = append(out, likeResponse{UserID: l.UserID})
	}
	return out
}

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		ID:         p.ID,
		User:       p.AuthorID,
		Header:     p.Header,
		Body:       p.Body,
		FirstName:  p.AuthorFirstName,
		LastName:   p.AuthorLastName,
		Picture:    p.AuthorPicture,
		PostedOn:   p.PostedOn,
		LastEdited: p.LastEdited,
		Likes:      toLikes(p.Likes),
	}
}

func toListResponse(r *ports.ListPostsResult) listPostsResponse {
	data := make([]postResponse, 0, len(r.Items))
	for _, p := range r.Items {
		data = append(data, toPostResponse(p))
	}
	return listPostsResponse{
		Data: data,
		Pagination: paginationMeta{
			Page:       r.Page,
			Limit:      r.Limit,
			Total:      r.Total,
			TotalPages: r.TotalPages,
		},
	}
}
