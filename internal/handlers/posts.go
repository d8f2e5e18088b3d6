package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Request DTO shared by post creation and commenting.
type textRequest struct {
	Text string `json:"text" binding:"required"`
}

var textMessages = map[string]string{
	"Text": "Text is required",
}

// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      textRequest  true  "Post text"
// @Success      200   {object}  models.Post
// @Failure      400   {object}  map[string]interface{}  "errors"
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/posts [post]
// @Security     BearerAuth
func (h *Handler) createPost(c *gin.Context) {
	var input textRequest
	if ok := h.bindAndValidate(c, &input, textMessages); !ok {
		return
	}

	post, err := h.services.Posts.Create(c.Request.Context(), callerID(c), input.Text)
	if err != nil {
		h.respondError(c, "post_create_failed", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// @Summary      List posts, newest first
// @Tags         posts
// @Produce      json
// @Success      200  {array}   models.Post
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/posts [get]
// @Security     BearerAuth
func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.services.Posts.List(c.Request.Context())
	if err != nil {
		h.respondError(c, "post_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// @Summary      Get one post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  models.Post
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/{id} [get]
// @Security     BearerAuth
func (h *Handler) getPost(c *gin.Context) {
	post, err := h.services.Posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, "post_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// @Summary      Delete a post (author only)
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deletePost(c *gin.Context) {
	if err := h.services.Posts.Delete(c.Request.Context(), c.Param("id"), callerID(c)); err != nil {
		h.respondError(c, "post_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Post removed"})
}

// @Summary      Like a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {array}   models.Like
// @Failure      400  {object}  map[string]string  "already liked"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/like/{id} [put]
// @Security     BearerAuth
func (h *Handler) likePost(c *gin.Context) {
	likes, err := h.services.Posts.Like(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		h.respondError(c, "post_like_failed", err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

// @Summary      Unlike a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {array}   models.Like
// @Failure      400  {object}  map[string]string  "not liked"
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/unlike/{id} [put]
// @Security     BearerAuth
func (h *Handler) unlikePost(c *gin.Context) {
	likes, err := h.services.Posts.Unlike(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		h.respondError(c, "post_unlike_failed", err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Post id"
// @Param        body  body      textRequest  true  "Comment text"
// @Success      200   {object}  models.Comment
// @Failure      400   {object}  map[string]interface{}  "errors"
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/posts/comment/{id} [post]
// @Security     BearerAuth
func (h *Handler) addComment(c *gin.Context) {
	var input textRequest
	if ok := h.bindAndValidate(c, &input, textMessages); !ok {
		return
	}

	comment, err := h.services.Posts.AddComment(c.Request.Context(), c.Param("id"), callerID(c), input.Text)
	if err != nil {
		h.respondError(c, "comment_add_failed", err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// @Summary      Delete a comment (comment author only)
// @Tags         posts
// @Produce      json
// @Param        post_id     path      string  true  "Post id"
// @Param        comment_id  path      string  true  "Comment id"
// @Success      200  {array}   models.Comment
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/posts/comment/{post_id}/{comment_id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteComment(c *gin.Context) {
	comments, err := h.services.Posts.DeleteComment(
		c.Request.Context(), c.Param("post_id"), c.Param("comment_id"), callerID(c))
	if err != nil {
		h.respondError(c, "comment_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
