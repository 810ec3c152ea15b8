package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/lagunartea/club-ledger/internal/middleware"
    "github.com/lagunartea/club-ledger/internal/utils"
)

// AdminAuthHandler exchanges the shared admin secret for a short-lived JWT.
// Only the bcrypt hash of the secret is held.
type AdminAuthHandler struct {
    SecretHash string
    JWTSecret  string
    TTL        time.Duration
    Log        *zap.Logger
}

type loginRequest struct {
    Secret string `json:"secret" validate:"required"`
}

// Login handles POST /v1/admin/login.
func (h *AdminAuthHandler) Login(c echo.Context) error {
    var req loginRequest
    if err := bindValid(c, &req); err != nil {
        return respondError(c, h.Log, err)
    }
    if !utils.VerifySecret(h.SecretHash, req.Secret) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }
    tok, err := utils.NewAccessToken(h.JWTSecret, "admin", middleware.RoleAdmin, h.TTL)
    if err != nil {
        return respondError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, tok)
}
