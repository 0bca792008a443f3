package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/pdro-dev/wheelscreener/internal/external/oplab"
	"github.com/pdro-dev/wheelscreener/internal/synth"
	"github.com/pdro-dev/wheelscreener/pkg/logger"
)

// UserHandler serves the vendor account lookup with a mock fallback
type UserHandler struct {
	vendor *oplab.Client
	synth  *synth.Source
	logger *logger.Logger
}

func NewUserHandler(vendor *oplab.Client, src *synth.Source, log *logger.Logger) *UserHandler {
	return &UserHandler{
		vendor: vendor,
		synth:  src,
		logger: log,
	}
}

// Get returns account information for the caller's token. When vendor
// credentials are configured the vendor response is passed through;
// otherwise (or when the vendor call fails) a mock premium account is
// returned so the frontend keeps working without a paid plan.
// GET /api/user
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	token := requestToken(r)
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Token required")
		return
	}

	if h.vendor != nil && h.vendor.Enabled() {
		info, err := h.vendor.FetchUserInfo(r.Context())
		if err == nil {
			respondJSON(w, http.StatusOK, info)
			return
		}
		h.logger.WithError(err).Warn("vendor user lookup failed, serving mock account")
	}

	used := int(h.synth.Int64Between(100, 5000))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":    "user_123",
		"name":  "Mock User",
		"email": "mock.user@example.com",
		"plan":  "premium",
		"apiQuota": map[string]int{
			"daily":     10000,
			"used":      used,
			"remaining": 10000 - used,
		},
		"permissions": []string{"read", "screening", "fundamentals"},
		"lastLogin":   time.Now().UTC(),
	})
}

// requestToken extracts the caller token from the Authorization bearer
// header or the legacy x-oplab-token header
func requestToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if strings.HasPrefix(auth, "Bearer ") {
			return strings.TrimPrefix(auth, "Bearer ")
		}
		return auth
	}
	return r.Header.Get("x-oplab-token")
}
