package httpserver

import (
	"net/http"

	cartsvc "storefront/internal/service/cart"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type couponRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *handlers) respondCart(c *gin.Context, op string, s cartsvc.Summary, err error) {
	if err != nil {
		h.fail(c, op, err)
		return
	}
	c.JSON(http.StatusOK, toCartResponse(s))
}

func (h *handlers) getCart(c *gin.Context) {
	s, err := h.deps.Carts.Get(c.Request.Context(), sessionKey(c))
	h.respondCart(c, "get cart", s, err)
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "productId is required")
		return
	}
	s, err := h.deps.Carts.Add(c.Request.Context(), sessionKey(c), req.ProductID)
	h.respondCart(c, "add cart item", s, err)
}

func (h *handlers) setCartQuantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "quantity is required")
		return
	}
	s, err := h.deps.Carts.SetQuantity(c.Request.Context(), sessionKey(c), c.Param("productId"), *req.Quantity)
	h.respondCart(c, "set cart quantity", s, err)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	s, err := h.deps.Carts.Remove(c.Request.Context(), sessionKey(c), c.Param("productId"))
	h.respondCart(c, "remove cart item", s, err)
}

func (h *handlers) clearCart(c *gin.Context) {
	if err := h.deps.Carts.Clear(c.Request.Context(), sessionKey(c)); err != nil {
		h.fail(c, "clear cart", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) applyCoupon(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "code is required")
		return
	}
	s, err := h.deps.Carts.ApplyCoupon(c.Request.Context(), sessionKey(c), req.Code)
	h.respondCart(c, "apply coupon", s, err)
}

func (h *handlers) removeCoupon(c *gin.Context) {
	s, err := h.deps.Carts.RemoveCoupon(c.Request.Context(), sessionKey(c))
	h.respondCart(c, "remove coupon", s, err)
}
