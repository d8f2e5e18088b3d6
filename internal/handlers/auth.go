package handlers

import (
	"errors"
	"net/http"

	"devconnect/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Request DTOs validated at the boundary. Messages mirror the field checks;
// every violated field is reported, not just the first.
type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var registerMessages = map[string]string{
	"Name":     "Name is required",
	"Email":    "Please enter a valid email",
	"Password": "Please enter a password with 6 or more characters",
}

var loginMessages = map[string]string{
	"Email":    "Please enter a valid email",
	"Password": "Password is required",
}

type errorItem struct {
	Msg string `json:"msg"`
}

// bindAndValidate binds the body into dst and on failure writes a 400 with
// the full list of violated fields. Returns false if the request was handled.
func (h *Handler) bindAndValidate(c *gin.Context, dst any, messages map[string]string) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		items := make([]errorItem, 0, len(verrs))
		for _, fe := range verrs {
			msg, ok := messages[fe.Field()]
			if !ok {
				msg = fe.Error()
			}
			items = append(items, errorItem{Msg: msg})
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": items})
		return false
	}

	if h.log != nil {
		h.log.Infow("bad_request_body", "err", err)
	}
	c.JSON(http.StatusBadRequest, gin.H{"errors": []errorItem{{Msg: "Invalid request body"}}})
	return false
}

// respondError maps domain errors to HTTP responses; anything unexpected is
// logged and reported as a 500.
func (h *Handler) respondError(c *gin.Context, logKey string, err error) {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"errors": []errorItem{{Msg: "User already exists"}}})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"errors": []errorItem{{Msg: "Invalid credentials"}}})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
	case errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "Comment not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"msg": "User not authorized"})
	case errors.Is(err, service.ErrAlreadyLiked):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Post already liked"})
	case errors.Is(err, service.ErrNotLiked):
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Post has not been liked"})
	default:
		if h.log != nil {
			h.log.Errorw(logKey, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration payload"
// @Success      200   {object}  map[string]string  "token"
// @Failure      400   {object}  map[string]interface{}  "errors"
// @Failure      500   {object}  map[string]string
// @Router       /api/users [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if ok := h.bindAndValidate(c, &input, registerMessages); !ok {
		return
	}

	token, err := h.services.Register(c.Request.Context(), service.RegisterParams{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		h.respondError(c, "register_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary      Log in and get a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  map[string]string  "token"
// @Failure      400   {object}  map[string]interface{}  "errors"
// @Failure      500   {object}  map[string]string
// @Router       /api/auth [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindAndValidate(c, &input, loginMessages); !ok {
		return
	}

	token, err := h.services.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		h.respondError(c, "login_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary      Get the authenticated user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/auth [get]
// @Security     BearerAuth
func (h *Handler) currentUser(c *gin.Context) {
	u, err := h.services.CurrentUser(c.Request.Context(), callerID(c))
	if err != nil {
		h.respondError(c, "current_user_failed", err)
		return
	}
	c.JSON(http.StatusOK, u)
}
