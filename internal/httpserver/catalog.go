package httpserver

import (
	"net/http"

	productsvc "storefront/internal/service/product"
	"storefront/internal/storefront/orderstatus"

	"github.com/gin-gonic/gin"
)

func (h *handlers) listProducts(c *gin.Context) {
	page, err := h.deps.Products.Browse(c.Request.Context(), c.Query("category"), c.Query("q"))
	if err != nil {
		h.fail(c, "list products", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products":   toProductResponses(page.Products),
		"categories": page.Categories,
		"category":   page.Category,
		"query":      page.Query,
		"total":      page.Total,
		"count":      len(page.Products),
		"degraded":   page.Degraded,
	})
}

func (h *handlers) getProduct(c *gin.Context) {
	p, degraded, err := h.deps.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get product", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": toProductResponse(*p), "degraded": degraded})
}

func (h *handlers) listCategories(c *gin.Context) {
	cats, degraded, err := h.deps.Products.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, "list categories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats, "degraded": degraded})
}

func (h *handlers) listStatuses(c *gin.Context) {
	statuses := orderstatus.All()
	out := make([]statusResponse, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, toStatusResponse(s))
	}
	c.JSON(http.StatusOK, gin.H{"statuses": out})
}

func (h *handlers) adminListProducts(c *gin.Context) {
	listing, err := h.deps.Products.List(c.Request.Context())
	if err != nil {
		h.fail(c, "admin list products", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toProductResponses(listing.Products), "degraded": listing.Degraded})
}

func (h *handlers) createProduct(c *gin.Context) {
	var in productsvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid product payload")
		return
	}
	p, err := h.deps.Products.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create product", err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(*p))
}

func (h *handlers) updateProduct(c *gin.Context) {
	var patch productsvc.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid product payload")
		return
	}
	p, err := h.deps.Products.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.fail(c, "update product", err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(*p))
}

func (h *handlers) deleteProduct(c *gin.Context) {
	if err := h.deps.Products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete product", err)
		return
	}
	c.Status(http.StatusNoContent)
}
