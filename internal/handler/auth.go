package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/galaxy-cinema-booking/internal/config"
	"github.com/iliyamo/galaxy-cinema-booking/internal/middleware"
	"github.com/iliyamo/galaxy-cinema-booking/internal/utils"
)

// AuthHandler issues admin tokens for the configured admin account.
type AuthHandler struct {
	Cfg config.Config
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{Cfg: cfg}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the admin credentials and returns a bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	if !h.Cfg.AdminEnabled() {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "admin login is disabled"})
	}
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.Cfg.AdminUsername)) == 1
	passOK := utils.VerifyPassword(h.Cfg.AdminPasswordHash, req.Password)
	if !userOK || !passOK {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewAccessToken(h.Cfg.AdminJWTSecret, req.Username, middleware.RoleAdmin, h.Cfg.AccessTTLMin)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "issue token failed", err)
	}
	return c.JSON(http.StatusOK, tok)
}
