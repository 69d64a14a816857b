package handler

import (
	"net/http"
	"time"
)

// TokenIssuer mints signed bearer tokens. Implemented by auth.JWTValidator.
type TokenIssuer interface {
	Generate(userID string, ttl time.Duration) (string, error)
}

type TestTokenResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// TokenHandler serves development bearer tokens. It is only mounted when
// AUTH_ENABLE_TEST_TOKEN is set; never enable it in production.
type TokenHandler struct {
	issuer TokenIssuer
	userID string
	ttl    time.Duration
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(issuer TokenIssuer, userID string, ttl time.Duration) *TokenHandler {
	return &TokenHandler{issuer: issuer, userID: userID, ttl: ttl}
}

// TestToken handles GET /auth/test-token
func (h *TokenHandler) TestToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.issuer.Generate(h.userID, h.ttl)
	if err != nil {
		Error(w, http.StatusInternalServerError, "internal_error", "Failed to generate token")
		return
	}

	JSON(w, http.StatusOK, TestTokenResponse{
		Token:   token,
		Message: "Use in Authorization header as: Bearer <token>",
	})
}
