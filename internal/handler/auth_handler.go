package handler

import (
	"net/http"
	"time"

	"spc-api/internal/service"
	"spc-api/pkg/logger"
	"spc-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var authService *service.AuthService

// InitAuthHandler wires the auth workflow service into the handler package
func InitAuthHandler(svc *service.AuthService) {
	authService = svc
}

// Login authenticates a user and returns a fresh token pair
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	// Parse request
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	resp, err := authService.Login(req.Email, req.Password)
	if err != nil {
		log.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		prometheus.RecordAuthError("login_failure")
		return serviceError(c, log, err)
	}

	prometheus.IncreaseActiveTokens()
	log.Info("User logged in", zap.String("email", resp.Email), zap.Uint("user_id", resp.UserID))
	return c.JSON(http.StatusOK, resp)
}

// Register creates a new user with the default role and returns the same
// response shape as Login
func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	// Parse request
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" {
		log.Warn("Incomplete registration data", zap.String("email", req.Email))
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	resp, err := authService.Register(req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		log.Warn("Registration failed", zap.String("email", req.Email), zap.Error(err))
		prometheus.RecordAuthError("registration_failure")
		return serviceError(c, log, err)
	}

	prometheus.IncreaseActiveTokens()
	log.Info("User registered", zap.String("email", resp.Email), zap.Uint("user_id", resp.UserID))
	return c.JSON(http.StatusOK, resp)
}

// RefreshToken exchanges a refresh token for a new token pair. The request
// body is the raw refresh token as a JSON string.
func RefreshToken(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RefreshCounter.Inc()

	var refreshToken string
	if err := c.Bind(&refreshToken); err != nil {
		log.Error("Failed to parse refresh token request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	resp, err := authService.RefreshToken(refreshToken)
	if err != nil {
		log.Warn("Token refresh failed", zap.Error(err))
		prometheus.RecordAuthError("invalid_refresh_token")
		return serviceError(c, log, err)
	}

	log.Info("Refresh token rotated", zap.String("email", resp.Email), zap.Uint("user_id", resp.UserID))
	return c.JSON(http.StatusOK, resp)
}

// RevokeToken clears a user's refresh token. The request body is the user's
// email as a JSON string.
func RevokeToken(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RevokeCounter.Inc()

	var userEmail string
	if err := c.Bind(&userEmail); err != nil {
		log.Error("Failed to parse revoke request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	revoked, err := authService.RevokeRefreshToken(userEmail)
	if err != nil {
		log.Error("Token revocation failed", zap.Error(err))
		prometheus.RecordAuthError("revocation_failure")
		return serviceError(c, log, err)
	}
	if !revoked {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "failed to revoke token"})
	}

	prometheus.DecreaseActiveTokens()
	log.Info("Refresh token revoked", zap.String("email", userEmail))
	return c.JSON(http.StatusOK, echo.Map{"message": "token revoked successfully"})
}
