package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobdesk/marketplace-api/internal/model"
	"github.com/jobdesk/marketplace-api/internal/repository"
)

// ProductHandler serves the per-owner product CRUD. Ownership is enforced
// by the repository WHERE clauses, so a product belonging to another user
// produces the same 404 as a product that does not exist.
type ProductHandler struct {
	Products *repository.ProductRepo
}

func NewProductHandler(products *repository.ProductRepo) *ProductHandler {
	if products == nil {
		panic("nil repository passed to NewProductHandler")
	}
	return &ProductHandler{Products: products}
}

type productReq struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

type productResp struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func toProductResp(p model.Product) productResp {
	return productResp{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		CreatedAt: p.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt: p.UpdatedAt.UTC().Format(timestampLayout),
	}
}

// validateProductReq aggregates every violated field into one map. With
// requireAll set, absent fields are violations too (create); otherwise
// only present fields are checked (partial update).
func validateProductReq(req productReq, requireAll bool) map[string]string {
	errs := map[string]string{}
	if req.Name == nil {
		if requireAll {
			errs["name"] = "Product name is required"
		}
	} else if msg := validateProductName(*req.Name); msg != "" {
		errs["name"] = msg
	}
	if req.Price == nil {
		if requireAll {
			errs["price"] = "Product price is required"
		}
	} else if msg := validateProductPrice(*req.Price); msg != "" {
		errs["price"] = msg
	}
	return errs
}

// List handles GET /api/products, newest id first.
func (h *ProductHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	products, err := h.Products.ListByOwner(ctx, userID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}
	out := make([]productResp, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResp(p))
	}
	return respondSuccess(c, "Products retrieved successfully", out)
}

// Get handles GET /api/products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
	}
	id, ok := parseIDParam(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "Invalid product id", nil)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.GetForOwner(ctx, id, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return respondError(c, http.StatusNotFound, "Product not found",
				map[string]string{"product": "Product does not exist or you do not have access"})
		}
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}
	return respondSuccess(c, "Product retrieved successfully", toProductResp(p))
}

// Create handles POST /api/products. All field violations come back in a
// single 422 response.
func (h *ProductHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
	}
	var req productReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	if errs := validateProductReq(req, true); len(errs) > 0 {
		return respondValidation(c, "Validation failed", errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.Create(ctx, userID, *req.Name, *req.Price)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to create product", nil)
	}
	return respondCreated(c, "Product created successfully", toProductResp(p))
}

// Update handles PUT/PATCH /api/products/:id. Only the fields present in
// the body change.
func (h *ProductHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
	}
	id, ok := parseIDParam(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "Invalid product id", nil)
	}
	var req productReq
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request body", nil)
	}
	if errs := validateProductReq(req, false); len(errs) > 0 {
		return respondValidation(c, "Validation failed", errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.GetForOwner(ctx, id, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return respondError(c, http.StatusNotFound, "Product not found",
				map[string]string{"product": "Product does not exist or you do not have access"})
		}
		return respondError(c, http.StatusInternalServerError, "Query failed", nil)
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}

	updated, err := h.Products.Update(ctx, p)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to update product", nil)
	}
	return respondSuccess(c, "Product updated successfully", toProductResp(updated))
}

// Delete handles DELETE /api/products/:id.
func (h *ProductHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
	}
	id, ok := parseIDParam(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "Invalid product id", nil)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Products.Delete(ctx, id, userID); err != nil {
		if err == repository.ErrNotFound {
			return respondError(c, http.StatusNotFound, "Product not found",
				map[string]string{"product": "Product does not exist or you do not have access"})
		}
		return respondError(c, http.StatusInternalServerError, "Failed to delete product", nil)
	}
	return respondSuccess(c, "Product deleted successfully", nil)
}
