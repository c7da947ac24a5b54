package httpserver

import (
	"net/http"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *handlers) checkout(c *gin.Context) {
	var info domain.CustomerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		badRequest(c, "invalid customer info")
		return
	}
	res, err := h.deps.Orders.Checkout(c.Request.Context(), currentUser(c), info)
	if err != nil {
		h.fail(c, "checkout", err)
		return
	}
	body := gin.H{"order": toOrderResponse(*res.Order)}
	if res.HandoffURL != "" {
		body["handoffUrl"] = res.HandoffURL
	}
	if res.HandoffError != "" {
		body["handoffError"] = res.HandoffError
	}
	c.JSON(http.StatusCreated, body)
}

func (h *handlers) listMyOrders(c *gin.Context) {
	orders, err := h.deps.Orders.ListMine(c.Request.Context(), currentUser(c), c.Query("status"))
	if err != nil {
		h.fail(c, "list orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": toOrderResponses(orders), "count": len(orders)})
}

func (h *handlers) orderStats(c *gin.Context) {
	stats, err := h.deps.Orders.Stats(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, "order stats", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":     stats.Total,
		"delivered": stats.Delivered,
		"open":      stats.Open,
		"cancelled": stats.Cancelled,
	})
}

func (h *handlers) getOrder(c *gin.Context) {
	o, err := h.deps.Orders.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		h.fail(c, "get order", err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*o))
}

func (h *handlers) adminListOrders(c *gin.Context) {
	orders, err := h.deps.Orders.ListAll(c.Request.Context(), currentUser(c), c.Query("status"))
	if err != nil {
		h.fail(c, "admin list orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": toOrderResponses(orders), "count": len(orders)})
}

func (h *handlers) updateOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}
	o, err := h.deps.Orders.UpdateStatus(c.Request.Context(), currentUser(c), c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, "update order status", err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*o))
}
