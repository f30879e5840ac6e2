package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dialpro/apiserver/internal/auth"
	"github.com/dialpro/apiserver/internal/session"
	"github.com/dialpro/apiserver/types"
)

const defaultTokenTTL = 24 * time.Hour

// AuthHandler exposes the session lifecycle over HTTP. The session
// manager owns the actual state; tokens are just the transport
// credential handed back to the client.
type AuthHandler struct {
	sessions *session.Manager
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(sessions *session.Manager, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		secret:   []byte(jwtSecret),
		tokenTTL: defaultTokenTTL,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, sessions *session.Manager, jwtSecret string) {
	handler := NewAuthHandler(sessions, jwtSecret)

	r.Post("/login", handler.Login)
	r.With(handler.RequireAuth).Post("/logout", handler.Logout)
	r.With(handler.RequireAuth).Get("/me", handler.Me)
}

// RequireAuth enforces bearer-token authentication and injects the
// authenticated user into the request context.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return requireAuth(h.secret)(next)
}

// RequireAuth constructs auth middleware for other routers.
func RequireAuth(jwtSecret string) func(http.Handler) http.Handler {
	return requireAuth([]byte(jwtSecret))
}

// RequireAdmin rejects non-admin users. It must run after auth
// middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole(types.RoleAdmin)(next)
}

// RequireEmployee rejects non-employee users. It must run after auth
// middleware.
func RequireEmployee(next http.Handler) http.Handler {
	return requireRole(types.RoleEmployee)(next)
}

func requireRole(role types.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := userFromContext(r.Context())
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if user.Role != role {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requireAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			user, err := parseTokenUser(tokenString, secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithUser(r.Context(), user)))
		})
	}
}

// Login validates credentials through the session manager and returns
// the established user plus a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing credentials")
		return
	}

	user, err := h.sessions.Login(r.Context(), req.Email, req.Password, types.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, session.ErrLoginInProgress):
			writeError(w, http.StatusConflict, "login already in progress")
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			writeError(w, http.StatusInternalServerError, "failed to authenticate")
		}
		return
	}

	token, err := issueToken(user, h.secret, h.tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}

// Logout destroys the session. It is idempotent: logging out with no
// active session still returns success.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the current authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

type sessionClaims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

func issueToken(user types.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: string(user.Role),
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseTokenUser(tokenString string, secret []byte) (types.User, error) {
	claims := sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return types.User{}, err
	}
	if !token.Valid {
		return types.User{}, errors.New("invalid token")
	}

	user := types.User{
		Email: strings.TrimSpace(claims.Subject),
		Role:  types.Role(claims.Role),
		Name:  claims.Name,
	}
	if user.Email == "" || !user.Role.Valid() {
		return types.User{}, errors.New("invalid claims")
	}
	return user, nil
}

func bearerToken(r *http.Request) (string, error) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}
