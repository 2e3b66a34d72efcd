package adminapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"github.com/talkincode/shopcore/internal/catalog"
	"github.com/talkincode/shopcore/internal/storage"
)

func (h *Handler) listProducts(c echo.Context) error {
	products, err := h.app.CatalogService().List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, products)
}

// productInput assembles a catalog.ProductInput from the multipart form.
// Absent fields stay nil so updates remain partial.
func (h *Handler) productInput(c echo.Context) (catalog.ProductInput, error) {
	var input catalog.ProductInput

	if name := strings.TrimSpace(c.FormValue("name")); name != "" {
		input.Name = &name
	}
	if raw := c.FormValue("price"); raw != "" {
		price, err := cast.ToFloat64E(raw)
		if err != nil {
			return input, catalog.ErrInvalidProduct
		}
		input.Price = &price
	}
	if raw := c.FormValue("stock"); raw != "" {
		stock, err := cast.ToIntE(raw)
		if err != nil {
			return input, catalog.ErrInvalidProduct
		}
		input.Stock = &stock
	}

	image, imageName, err := readImagePart(c)
	if err != nil {
		return input, err
	}
	input.Image = image
	input.ImageName = imageName
	return input, nil
}

func (h *Handler) createProduct(c echo.Context) error {
	input, err := h.productInput(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}

	product, err := h.app.CatalogService().Create(c.Request().Context(), input)
	switch {
	case errors.Is(err, catalog.ErrInvalidProduct):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name, positive price and non-negative stock are required", nil)
	case errors.Is(err, storage.ErrUnsupportedFormat):
		return fail(c, http.StatusBadRequest, "STORAGE_ERROR", "Unsupported image format", nil)
	case errors.Is(err, storage.ErrStoreFailed):
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to store image", err.Error())
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}

	return created(c, product)
}

func (h *Handler) updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	input, err := h.productInput(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}

	product, err := h.app.CatalogService().Update(c.Request().Context(), id, input)
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	case errors.Is(err, catalog.ErrInvalidProduct):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Supplied fields failed validation", nil)
	case errors.Is(err, storage.ErrUnsupportedFormat):
		return fail(c, http.StatusBadRequest, "STORAGE_ERROR", "Unsupported image format", nil)
	case errors.Is(err, storage.ErrStoreFailed):
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to store image", err.Error())
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}

	return ok(c, product)
}

func (h *Handler) deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	// idempotent: deleting a missing ID is still a success
	if err := h.app.CatalogService().Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"message": "product deleted"})
}

type reduceStockPayload struct {
	Quantity int `json:"quantity" form:"quantity"`
}

func (h *Handler) reduceStock(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var payload reduceStockPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity", nil)
	}

	remaining, err := h.app.CatalogService().ReduceStock(c.Request().Context(), id, payload.Quantity)
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	case errors.Is(err, catalog.ErrInsufficientStock):
		return fail(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", "Not enough stock", nil)
	case errors.Is(err, catalog.ErrInvalidProduct):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Quantity must be positive", nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to reduce stock", err.Error())
	}

	return ok(c, map[string]interface{}{
		"message":      "stock reduced",
		"currentStock": remaining,
	})
}
