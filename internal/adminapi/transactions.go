package adminapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/shopcore/internal/ledger"
)

type transactionPayload struct {
	ProductName string  `json:"productName" form:"productName"`
	Quantity    int     `json:"quantity" form:"quantity"`
	TotalPrice  float64 `json:"totalPrice" form:"totalPrice"`
}

func (h *Handler) createTransaction(c echo.Context) error {
	var payload transactionPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse transaction", nil)
	}

	tx, err := h.app.LedgerService().Record(c.Request().Context(),
		payload.ProductName, payload.Quantity, payload.TotalPrice)
	switch {
	case errors.Is(err, ledger.ErrInvalidTransaction):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Product name, positive quantity and total are required", nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to record sale", err.Error())
	}

	return created(c, tx)
}

func (h *Handler) listTransactions(c echo.Context) error {
	txs, err := h.app.LedgerService().List(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query transactions", err.Error())
	}
	return ok(c, txs)
}
