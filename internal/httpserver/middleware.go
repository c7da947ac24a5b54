package httpserver

import (
	"log"
	"net/http"
	"strings"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"

	"github.com/gin-gonic/gin"
)

const (
	guestHeader = "X-Guest-Token"

	ctxUser    = "storefront.user"
	ctxToken   = "storefront.token"
	ctxGuestID = "storefront.guest"
)

// identify resolves the bearer token and guest token, if any. A token that is
// present but invalid is rejected rather than ignored.
func identify(logger *log.Logger, auth AuthService, guests GuestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			u, err := auth.CurrentUser(c.Request.Context(), token)
			if err != nil {
				if statusFor(err) == http.StatusInternalServerError {
					logger.Printf("http: identify user failed path=%s error=%v", c.FullPath(), err)
				}
				writeError(c, err)
				c.Abort()
				return
			}
			c.Set(ctxUser, u)
			c.Set(ctxToken, token)
		}
		if token := strings.TrimSpace(c.GetHeader(guestHeader)); token != "" {
			guestID, err := guests.Lookup(c.Request.Context(), token)
			if err != nil {
				writeError(c, err)
				c.Abort()
				return
			}
			c.Set(ctxGuestID, guestID)
		}
		c.Next()
	}
}

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("authentication required"))
			return
		}
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUser(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody("admin role required"))
			return
		}
		c.Next()
	}
}

// requireSession needs either a signed-in user or a guest token.
func requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionKey(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("guest token or sign-in required"))
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

func currentToken(c *gin.Context) string {
	return c.GetString(ctxToken)
}

func guestID(c *gin.Context) string {
	return c.GetString(ctxGuestID)
}

// sessionKey picks the signed-in user's cart over the guest cart.
func sessionKey(c *gin.Context) string {
	if u := currentUser(c); u != nil {
		return cartsvc.UserKey(u.ID)
	}
	if id := guestID(c); id != "" {
		return cartsvc.GuestKey(id)
	}
	return ""
}
