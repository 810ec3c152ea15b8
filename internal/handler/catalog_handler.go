package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"
    "go.uber.org/zap"

    "github.com/lagunartea/club-ledger/internal/model"
    "github.com/lagunartea/club-ledger/internal/service"
)

// CatalogHandler serves the member roster and the price list, and their
// admin maintenance.
type CatalogHandler struct {
    Svc *service.BookingService
    Log *zap.Logger
}

// NewCatalogHandler panics on a nil service.
func NewCatalogHandler(svc *service.BookingService, log *zap.Logger) *CatalogHandler {
    if svc == nil {
        panic("nil service passed to NewCatalogHandler")
    }
    return &CatalogHandler{Svc: svc, Log: log}
}

type memberRequest struct {
    ID        uint64  `json:"id"`
    FirstName string  `json:"first_name" validate:"required,max=100"`
    LastName  string  `json:"last_name" validate:"required,max=100"`
    Phone     *string `json:"phone" validate:"omitempty,max=32"`
}

type itemRequest struct {
    ID        string          `json:"id"`
    Name      string          `json:"name" validate:"required,max=120"`
    Icon      *string         `json:"icon" validate:"omitempty,max=16"`
    Price     decimal.Decimal `json:"price"`
    Category  string          `json:"category" validate:"required,oneof=drink service fee"`
    SortOrder int             `json:"sort_order" validate:"min=0"`
}

// ListMembers handles GET /v1/members.
func (h *CatalogHandler) ListMembers(c echo.Context) error {
    return c.JSON(http.StatusOK, h.Svc.Members(c.Request().Context()))
}

// ListItems handles GET /v1/items.
func (h *CatalogHandler) ListItems(c echo.Context) error {
    items, err := h.Svc.Items(c.Request().Context())
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, items)
}

// CreateMember handles POST /v1/admin/members.
func (h *CatalogHandler) CreateMember(c echo.Context) error {
    var req memberRequest
    if err := bindValid(c, &req); err != nil {
        return respondError(c, h.Log, err)
    }
    m := model.Member{ID: req.ID, FirstName: req.FirstName, LastName: req.LastName, Phone: req.Phone}
    if err := h.Svc.CreateMember(c.Request().Context(), m); err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, m)
}

// UpdateMember handles PUT /v1/admin/members/:id.  The path id wins over
// any id in the body.
func (h *CatalogHandler) UpdateMember(c echo.Context) error {
    id, ok := parseUintParam(c.Param("id"))
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid member id"})
    }
    var req memberRequest
    if err := bindValid(c, &req); err != nil {
        return respondError(c, h.Log, err)
    }
    m := model.Member{ID: id, FirstName: req.FirstName, LastName: req.LastName, Phone: req.Phone}
    if err := h.Svc.UpdateMember(c.Request().Context(), m); err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, m)
}

// DeleteMember handles DELETE /v1/admin/members/:id.
func (h *CatalogHandler) DeleteMember(c echo.Context) error {
    id, ok := parseUintParam(c.Param("id"))
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid member id"})
    }
    if err := h.Svc.DeleteMember(c.Request().Context(), id); err != nil {
        return respondError(c, h.Log, err)
    }
    return c.NoContent(http.StatusNoContent)
}

func (r itemRequest) item(id string) model.Item {
    return model.Item{
        ID:        id,
        Name:      r.Name,
        Icon:      r.Icon,
        Price:     r.Price,
        Category:  model.ItemCategory(r.Category),
        SortOrder: r.SortOrder,
    }
}

// CreateItem handles POST /v1/admin/items.
func (h *CatalogHandler) CreateItem(c echo.Context) error {
    var req itemRequest
    if err := bindValid(c, &req); err != nil {
        return respondError(c, h.Log, err)
    }
    it := req.item(req.ID)
    if err := h.Svc.CreateItem(c.Request().Context(), it); err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, it)
}

// UpdateItem handles PUT /v1/admin/items/:id.
func (h *CatalogHandler) UpdateItem(c echo.Context) error {
    var req itemRequest
    if err := bindValid(c, &req); err != nil {
        return respondError(c, h.Log, err)
    }
    it := req.item(c.Param("id"))
    if err := h.Svc.UpdateItem(c.Request().Context(), it); err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, it)
}

// DeleteItem handles DELETE /v1/admin/items/:id.
func (h *CatalogHandler) DeleteItem(c echo.Context) error {
    if err := h.Svc.DeleteItem(c.Request().Context(), c.Param("id")); err != nil {
        return respondError(c, h.Log, err)
    }
    return c.NoContent(http.StatusNoContent)
}
