package httpserver

import (
	"net/http"

	authsvc "storefront/internal/service/auth"
	cartsvc "storefront/internal/service/cart"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName"`
}

func (h *handlers) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}
	ctx := c.Request.Context()
	if _, err := h.deps.Auth.Register(ctx, authsvc.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	}); err != nil {
		h.fail(c, "register", err)
		return
	}
	h.signIn(c, req, http.StatusCreated)
}

func (h *handlers) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}
	h.signIn(c, req, http.StatusOK)
}

// signIn issues an access token and moves any guest cart onto the account.
func (h *handlers) signIn(c *gin.Context, req credentialsRequest, status int) {
	ctx := c.Request.Context()
	u, token, err := h.deps.Auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		h.fail(c, "sign in", err)
		return
	}
	if id := guestID(c); id != "" {
		if _, err := h.deps.Carts.Merge(ctx, cartsvc.GuestKey(id), cartsvc.UserKey(u.ID)); err != nil {
			h.logger.Printf("http: merge guest cart failed user_id=%s error=%v", u.ID, err)
		}
	}
	c.JSON(status, gin.H{
		"user":        toUserResponse(u),
		"accessToken": token,
		"tokenType":   "Bearer",
		"expiresIn":   h.deps.Auth.AccessTTLSeconds(),
	})
}

func (h *handlers) logout(c *gin.Context) {
	if err := h.deps.Auth.SignOut(c.Request.Context(), currentToken(c)); err != nil {
		h.fail(c, "logout", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) me(c *gin.Context) {
	c.JSON(http.StatusOK, toUserResponse(currentUser(c)))
}

func (h *handlers) issueGuest(c *gin.Context) {
	token, id, err := h.deps.Guests.Issue(c.Request.Context())
	if err != nil {
		h.fail(c, "issue guest token", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"guestToken": token,
		"guestId":    id,
		"expiresIn":  h.deps.Guests.AccessTTLSeconds(),
	})
}
