package handler

import (
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/lagunartea/club-ledger/internal/booking"
    "github.com/lagunartea/club-ledger/internal/model"
    "github.com/lagunartea/club-ledger/internal/service"
)

// BookingHandler serves the calendar, day views and reservation writes.
type BookingHandler struct {
    Svc *service.BookingService
    Log *zap.Logger
}

// NewBookingHandler panics on a nil service.
func NewBookingHandler(svc *service.BookingService, log *zap.Logger) *BookingHandler {
    if svc == nil {
        panic("nil service passed to NewBookingHandler")
    }
    return &BookingHandler{Svc: svc, Log: log}
}

// reservationRequest is the body of POST /v1/reservations.  Validation is
// left to the builder so errors come back in a fixed order.
type reservationRequest struct {
    MemberID        uint64                 `json:"member_id"`
    Date            string                 `json:"date"`
    StartSlot       string                 `json:"start_slot"`
    Kind            model.ResourceKind     `json:"kind"`
    Diners          int                    `json:"diners"`
    MemberDiners    int                    `json:"member_diners"`
    Spaces          []model.Space          `json:"spaces"`
    KitchenServices []model.KitchenService `json:"kitchen_services"`
    LightIncluded   bool                   `json:"light_included"`
}

// Calendar handles GET /v1/calendar?month=YYYY-MM.  The current month is
// used when month is omitted.
func (h *BookingHandler) Calendar(c echo.Context) error {
    today := h.Svc.Today()
    year, month := today.Year(), today.Month()
    if raw := strings.TrimSpace(c.QueryParam("month")); raw != "" {
        t, err := time.Parse("2006-01", raw)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must be YYYY-MM", "field": "month"})
        }
        year, month = t.Year(), t.Month()
    }
    grid, err := h.Svc.Calendar(c.Request().Context(), year, month)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, grid)
}

// DayReservations handles GET /v1/days/:date/reservations.
func (h *BookingHandler) DayReservations(c echo.Context) error {
    date := c.Param("date")
    list, err := h.Svc.DayReservations(c.Request().Context(), date)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "date":         date,
        "selectable":   h.Svc.IsSelectable(date),
        "reservations": list,
    })
}

// CreateReservation handles POST /v1/reservations.  It answers 201 with
// the reservation and the charge it produced, if any.
func (h *BookingHandler) CreateReservation(c echo.Context) error {
    var req reservationRequest
    if err := bindValid(c, &req); err != nil {
        return respondError(c, h.Log, err)
    }
    b, err := h.Svc.Book(c.Request().Context(), booking.ReservationInput{
        MemberID:        req.MemberID,
        Date:            req.Date,
        StartSlot:       req.StartSlot,
        Kind:            req.Kind,
        Diners:          req.Diners,
        MemberDiners:    req.MemberDiners,
        Spaces:          req.Spaces,
        KitchenServices: req.KitchenServices,
        LightIncluded:   req.LightIncluded,
    })
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, b)
}

// DeleteReservation handles DELETE /v1/reservations/:id (admin only).
func (h *BookingHandler) DeleteReservation(c echo.Context) error {
    id := strings.TrimSpace(c.Param("id"))
    if id == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    if err := h.Svc.CancelReservation(c.Request().Context(), id); err != nil {
        return respondError(c, h.Log, err)
    }
    return c.NoContent(http.StatusNoContent)
}

func parseUintParam(raw string) (uint64, bool) {
    n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
    return n, err == nil && n > 0
}
