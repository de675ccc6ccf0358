package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloglane/blog-api/internal/api/metrics"
	"github.com/bloglane/blog-api/internal/core/domain"
	"github.com/bloglane/blog-api/internal/core/ports"
)

// PostHandler handles HTTP requests for blog posts. Every route requires a token.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// CreatePost publishes a new post for the caller.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      domain.PostDraft  true  "Post content"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  errorEnvelope
// @Failure      403   {object}  errorEnvelope
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req domain.PostDraft
	if err := c.Bind(&req); err != nil {
		return bindError()
	}

	p, err := h.service.CreatePost(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	metrics.PostWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toPostResponse(p))
}

// ListPosts returns a page of live posts, newest first.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Param        author  query     string  false  "Filter by author id"
// @Success      200     {object}  listPostsResponse
// @Failure      400     {object}  errorEnvelope
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	var q listPostsQuery
	if err := c.Bind(&q); err != nil {
		return bindError()
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	res, err := h.service.ListPosts(c.Request().Context(), ports.ListPostsInput{
		AuthorID: q.Author,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(res))
}

// GetPost returns one live post.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      404  {object}  errorEnvelope
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	p, err := h.service.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(p))
}

// UpdatePost edits the caller's own post.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string            true  "Post id"
// @Param        body  body      domain.PostDraft  true  "New content"
// @Success      200   {object}  postResponse
// @Failure      403   {object}  errorEnvelope
// @Failure      404   {object}  errorEnvelope
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req domain.PostDraft
	if err := c.Bind(&req); err != nil {
		return bindError()
	}

	p, err := h.service.UpdatePost(c.Request().Context(), userID, c.Param("id"), req)
	if err != nil {
		return err
	}
	metrics.PostWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toPostResponse(p))
}

// DeletePost soft-deletes the caller's own post.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  msgResponse
// @Failure      403  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeletePost(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	metrics.PostWritesTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, msgResponse{Msg: "Post removed"})
}

// LikePost adds the caller's like.
//
// @Summary      Like a post
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  likesResponse
// @Failure      400  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /posts/{id}/like [put]
func (h *PostHandler) LikePost(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	likes, err := h.service.LikePost(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	metrics.PostWritesTotal.WithLabelValues("like").Inc()
	return c.JSON(http.StatusOK, likesResponse{Likes: toLikes(likes)})
}

// UnlikePost removes the caller's like.
//
// @Summary      Unlike a post
// @Tags         posts
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  likesResponse
// @Failure      400  {object}  errorEnvelope
// @Failure      404  {object}  errorEnvelope
// @Router       /posts/{id}/unlike [put]
func (h *PostHandler) UnlikePost(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	likes, err := h.service.UnlikePost(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	metrics.PostWritesTotal.WithLabelValues("unlike").Inc()
	return c.JSON(http.StatusOK, likesResponse{Likes: toLikes(likes)})
}
