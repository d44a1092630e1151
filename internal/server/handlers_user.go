package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/foliolab/folio/internal/interfaces"
	"github.com/foliolab/folio/internal/models"
)

// --- User handlers ---

// validateUsername checks that a username is safe for storage.
// Rejects empty, too long, null bytes, and control characters.
func validateUsername(username string) string {
	if username == "" {
		return "username is required"
	}
	if len(username) > 128 {
		return "username must be 128 characters or fewer"
	}
	for _, c := range username {
		if c < 0x20 || c == 0x7f {
			return "username contains invalid control characters"
		}
	}
	return ""
}

// handleUserCreate handles POST /api/users, registering a new user.
// Registration also creates the user's default portfolio.
func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if errMsg := validateUsername(req.Username); errMsg != "" {
		WriteError(w, http.StatusBadRequest, errMsg)
		return
	}
	if req.Email == "" {
		WriteError(w, http.StatusBadRequest, "email is required")
		return
	}
	if req.Password == "" {
		WriteError(w, http.StatusBadRequest, "password is required")
		return
	}

	ctx := r.Context()
	users := s.app.Store.Users()

	// Uniqueness on both username and email.
	if _, err := users.GetByUsername(ctx, req.Username); err == nil {
		WriteError(w, http.StatusConflict, fmt.Sprintf("user '%s' already exists", req.Username))
		return
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		s.logger.Error().Err(err).Msg("Username lookup failed")
		WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	if _, err := users.GetByEmail(ctx, req.Email); err == nil {
		WriteError(w, http.StatusConflict, fmt.Sprintf("email '%s' already registered", req.Email))
		return
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		s.logger.Error().Err(err).Msg("Email lookup failed")
		WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	// Hash password with bcrypt (truncate to 72 bytes, the bcrypt input limit)
	passwordBytes := []byte(req.Password)
	if len(passwordBytes) > 72 {
		passwordBytes = passwordBytes[:72]
	}
	hash, err := bcrypt.GenerateFromPassword(passwordBytes, 10)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	now := time.Now().UTC()
	user, err := users.Create(ctx, &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("username", req.Username).Msg("Failed to save user")
		WriteError(w, http.StatusInternalServerError, "failed to save user")
		return
	}

	// Every account starts with a default portfolio so the dashboard has
	// something to land on.
	portfolio, err := s.app.Store.Portfolios().Create(ctx, &models.Portfolio{
		UserID:      user.ID,
		Name:        "Default Portfolio",
		Description: "Automatically created portfolio",
		IsActive:    true,
		CreatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to create default portfolio")
		WriteError(w, http.StatusInternalServerError, "failed to create default portfolio")
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"user":      userResponse(user),
		"portfolio": portfolio,
	})
}

// handleUserMe handles GET /api/users/me, returning the authenticated user profile.
func (s *Server) handleUserMe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uc, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	user, err := s.app.Store.Users().Get(r.Context(), uc.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "user not found")
		} else {
			s.logger.Error().Err(err).Int64("user_id", uc.UserID).Msg("User load failed")
			WriteError(w, http.StatusInternalServerError, "failed to load user")
		}
		return
	}

	WriteJSON(w, http.StatusOK, userResponse(user))
}

// handleAuthLogin handles POST /api/auth/login, authenticating and issuing a JWT.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if !s.loginLimiter.Allow(r.RemoteAddr) {
		WriteError(w, http.StatusTooManyRequests, "too many login attempts")
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	user, err := s.app.Store.Users().GetByUsername(ctx, req.Username)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	passwordBytes := []byte(req.Password)
	if len(passwordBytes) > 72 {
		passwordBytes = passwordBytes[:72]
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordBytes); err != nil {
		WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.signJWT(user)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign JWT for login")
		WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  userResponse(user),
	})
}

// signJWT issues an HS256 token for the user.
func (s *Server) signJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.app.Config.Auth.GetTokenExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.app.Config.Auth.JWTSecret))
}

// userResponse builds a safe response view, omitting the password hash.
func userResponse(user *models.User) map[string]interface{} {
	return map[string]interface{}{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"name":       user.Name,
		"role":       user.Role,
		"created_at": user.CreatedAt,
	}
}
