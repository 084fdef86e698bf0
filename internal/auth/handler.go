package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aguayodev/charla-api/internal/httputil"
	"github.com/aguayodev/charla-api/internal/i18n"
	"github.com/aguayodev/charla-api/internal/logging"
	"github.com/aguayodev/charla-api/internal/user"
)

// Handler contains HTTP handlers for the authentication endpoints
type Handler struct {
	service      *Service
	rateLimiter  RateLimiter
	messages     *i18n.Catalog
	logger       *logging.Logger
	isProduction bool
}

func NewHandler(service *Service, rateLimiter RateLimiter, messages *i18n.Catalog, logger *logging.Logger, isProduction bool) *Handler {
	return &Handler{
		service:      service,
		rateLimiter:  rateLimiter,
		messages:     messages,
		logger:       logger,
		isProduction: isProduction,
	}
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the base64 data URL of the new picture
type UpdateProfileRequest struct {
	ProfilePic string `json:"profilePic"`
}

// MessageResponse represents a plain informational response
type MessageResponse struct {
	Message string `json:"message"`
}

// Signup handles user registration
// @Summary      Register a new user
// @Description  Create an account with full name, email and password. Sets the session cookie on success.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup data"
// @Success      201 {object} user.User
// @Failure      400 {object} httputil.ErrorResponse "Missing fields, short password or email already registered"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.limitExceeded(w, r, "signup") {
		return
	}

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid signup request body", "error", err.Error())
		h.respondError(w, i18n.MsgInvalidRequestBody, httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	newUser, err := h.service.Signup(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			logger.Warn("signup failed: missing fields")
			h.respondError(w, i18n.MsgMissingFields, httputil.CodeMissingFields, http.StatusBadRequest)
		case errors.Is(err, ErrPasswordTooShort):
			logger.Warn("signup failed: password too short")
			h.respondError(w, i18n.MsgPasswordTooShort, httputil.CodePasswordTooShort, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidEmailFormat):
			logger.Warn("signup failed: invalid email format")
			h.respondError(w, i18n.MsgInvalidEmail, httputil.CodeInvalidEmailFormat, http.StatusBadRequest)
		case errors.Is(err, user.ErrDuplicateEmail):
			logger.Warn("signup failed: email already exists")
			h.respondError(w, i18n.MsgUserExists, httputil.CodeEmailAlreadyExists, http.StatusBadRequest)
		default:
			logger.Error("signup failed: internal error", "error", err.Error())
			h.respondError(w, i18n.MsgInternalError, httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	token, err := h.service.IssueSession(newUser.ID, newUser.Email)
	if err != nil {
		logger.Error("signup failed: could not issue session", "error", err.Error())
		h.respondError(w, i18n.MsgInternalError, httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("user signed up", "user_id", newUser.ID)

	SetSessionCookie(w, token, h.service.SessionDuration(), h.isProduction)
	httputil.RespondJSON(w, newUser, http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate with email and password. Sets the session cookie on success.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} user.User
// @Failure      400 {object} httputil.ErrorResponse "Invalid credentials"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.limitExceeded(w, r, "login") {
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		h.respondError(w, i18n.MsgInvalidRequestBody, httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	existing, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password must be indistinguishable here,
		// down to the exact response bytes.
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login failed: invalid credentials")
			h.respondError(w, i18n.MsgInvalidCredentials, httputil.CodeInvalidCredentials, http.StatusBadRequest)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		h.respondError(w, i18n.MsgInternalError, httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	token, err := h.service.IssueSession(existing.ID, existing.Email)
	if err != nil {
		logger.Error("login failed: could not issue session", "error", err.Error())
		h.respondError(w, i18n.MsgInternalError, httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("user logged in", "user_id", existing.ID)

	SetSessionCookie(w, token, h.service.SessionDuration(), h.isProduction)
	httputil.RespondJSON(w, existing, http.StatusOK)
}

// Logout handles user logout
// @Summary      User logout
// @Description  Clears the session cookie. The session token is self-contained, so nothing is revoked server-side.
// @Tags         auth
// @Produce      json
// @Success      200 {object} MessageResponse
// @Router       /api/auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	ClearSessionCookie(w, h.isProduction)

	logger.Info("user logged out")

	httputil.RespondJSON(w, MessageResponse{Message: h.messages.Get(i18n.MsgLogoutOK)}, http.StatusOK)
}

// UpdateProfile handles profile picture updates
// @Summary      Update profile picture
// @Description  Upload a new profile picture as a base64 data URL and record its hosted URL.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "Profile picture data URL"
// @Success      200 {object} user.User
// @Failure      400 {object} httputil.ErrorResponse "Missing image payload"
// @Failure      401 {object} httputil.ErrorResponse "Not authenticated"
// @Failure      500 {object} httputil.ErrorResponse "Upload or store fault"
// @Router       /api/auth/profile [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, i18n.MsgInternalError, httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid profile update request body", "error", err.Error())
		h.respondError(w, i18n.MsgInvalidRequestBody, httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateProfilePic(r.Context(), userID, req.ProfilePic)
	if err != nil {
		if errors.Is(err, ErrProfilePicRequired) {
			logger.Warn("profile update failed: missing image payload")
			h.respondError(w, i18n.MsgProfilePicRequired, httputil.CodeProfilePicRequired, http.StatusBadRequest)
			return
		}
		logger.Error("profile update failed: internal error", "error", err.Error())
		h.respondError(w, i18n.MsgInternalError, httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("profile picture updated", "user_id", userID)

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// Check handles the session-liveness probe
// @Summary      Check authentication
// @Description  Echo the authenticated user's public fields. Used by the front end on load.
// @Tags         auth
// @Produce      json
// @Success      200 {object} user.User
// @Failure      401 {object} httputil.ErrorResponse "Not authenticated"
// @Router       /api/auth/check [get]
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, i18n.MsgInternalError, httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	current, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		logger.Error("check auth failed: internal error", "error", err.Error())
		h.respondError(w, i18n.MsgInternalError, httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, current, http.StatusOK)
}

// limitExceeded applies the IP rate limit for a credential endpoint. Limiter
// faults fail open: an unavailable Redis must not block logins.
func (h *Handler) limitExceeded(w http.ResponseWriter, r *http.Request, purpose string) bool {
	logger := logging.GetLoggerFromContext(r.Context())
	ip := getClientIP(r)

	allowed, err := h.rateLimiter.Allow(r.Context(), ip, purpose)
	if err != nil {
		logger.Error("failed to check IP rate limit", "error", err.Error())
	} else if !allowed {
		logger.Warn("IP rate limit exceeded", "ip", ip, "purpose", purpose)
		h.respondError(w, i18n.MsgTooManyRequests, httputil.CodeTooManyRequests, http.StatusTooManyRequests)
		return true
	}

	if err := h.rateLimiter.Record(r.Context(), ip, purpose); err != nil {
		logger.Error("failed to record IP request", "error", err.Error())
	}
	return false
}

func (h *Handler) respondError(w http.ResponseWriter, msg i18n.Key, code string, statusCode int) {
	httputil.RespondErrorWithCode(w, h.messages.Get(msg), code, statusCode)
}

// getClientIP extracts the client IP address from the request
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header first (behind proxy/load balancer)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := r.RemoteAddr
	// RemoteAddr format is "IP:port", extract just the IP
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
