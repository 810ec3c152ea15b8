package handler

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/lagunartea/club-ledger/internal/booking"
    "github.com/lagunartea/club-ledger/internal/service"
)

const (
    defaultRecent = 10
    maxRecent     = 100
)

// LedgerHandler serves cart checkouts, the recent activity list and member
// statements.
type LedgerHandler struct {
    Svc *service.BookingService
    Log *zap.Logger
}

// NewLedgerHandler panics on a nil service.
func NewLedgerHandler(svc *service.BookingService, log *zap.Logger) *LedgerHandler {
    if svc == nil {
        panic("nil service passed to NewLedgerHandler")
    }
    return &LedgerHandler{Svc: svc, Log: log}
}

type checkoutRequest struct {
    MemberID uint64             `json:"member_id" validate:"required"`
    Items    []booking.CartLine `json:"items" validate:"required,min=1,max=50,dive"`
}

// Checkout handles POST /v1/charges/checkout.  The whole cart becomes one
// charge; the response is 201 with that charge.
func (h *LedgerHandler) Checkout(c echo.Context) error {
    var req checkoutRequest
    if err := bindValid(c, &req); err != nil {
        return respondError(c, h.Log, err)
    }
    ch, err := h.Svc.Checkout(c.Request().Context(), req.MemberID, req.Items)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, ch)
}

// RecentCharges handles GET /v1/charges/recent?limit=N.
func (h *LedgerHandler) RecentCharges(c echo.Context) error {
    n := defaultRecent
    if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
        v, err := strconv.Atoi(raw)
        if err != nil || v < 1 || v > maxRecent {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be between 1 and 100", "field": "limit"})
        }
        n = v
    }
    list, err := h.Svc.RecentCharges(c.Request().Context(), n)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, list)
}

// Statement handles GET /v1/statements[?member_id=N].  With a member the
// response also carries the member's accumulated total.
func (h *LedgerHandler) Statement(c echo.Context) error {
    var memberID *uint64
    if raw := c.QueryParam("member_id"); raw != "" {
        id, ok := parseUintParam(raw)
        if !ok {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid member id", "field": "member_id"})
        }
        memberID = &id
    }
    rep, err := h.Svc.Statement(c.Request().Context(), memberID)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, rep)
}

// DeleteCharge handles DELETE /v1/charges/:id (admin only).
func (h *LedgerHandler) DeleteCharge(c echo.Context) error {
    id := strings.TrimSpace(c.Param("id"))
    if id == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid charge id"})
    }
    if err := h.Svc.DeleteCharge(c.Request().Context(), id); err != nil {
        return respondError(c, h.Log, err)
    }
    return c.NoContent(http.StatusNoContent)
}
