package http

import (
	"net/http"

	"github.com/vuminhhoangg/E-Store-sub000/internal/auth"
	"github.com/vuminhhoangg/E-Store-sub000/internal/user"
	"github.com/vuminhhoangg/E-Store-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

func setAccessTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("access_token", token, int(user.TokenTTL.Seconds()), "/", "", false, true)
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, u, err := h.users.Register(c.Request.Context(), user.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	setAccessTokenCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": toUserResponse(u)})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, u, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	setAccessTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": toUserResponse(u)})
}

// Logout revokes the presented token and clears the cookie. Requests without
// a token still get the cookie cleared.
func (h *Handler) Logout(c *gin.Context) {
	if tokenStr := auth.ExtractAccessToken(c.Request); tokenStr != "" {
		if err := h.users.Logout(c.Request.Context(), tokenStr); err != nil {
			respondError(c, err)
			return
		}
	}

	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) Me(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	u, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}
