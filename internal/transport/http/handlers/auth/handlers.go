package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/auth"
	"atelier/internal/requestctx"
	"atelier/internal/transport/http/api"
)

const tokenTTL = 12 * time.Hour

type Handler struct {
	db        *pgxpool.Pool
	jwtSecret string
}

func NewHandler(db *pgxpool.Pool, jwtSecret string) *Handler {
	return &Handler{db: db, jwtSecret: jwtSecret}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.handleLogin)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "malformed request body", reqID)
		return
	}
	if req.Username == "" || req.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_credentials", "username and password are required", reqID)
		return
	}

	var (
		userID       string
		name         string
		role         string
		passwordHash string
	)
	err := h.db.QueryRow(r.Context(),
		`SELECT id, name, role, password_hash FROM users WHERE username = $1 AND is_active`,
		req.Username,
	).Scan(&userID, &name, &role, &passwordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid username or password", reqID)
		return
	}
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "login failed", reqID)
		return
	}

	if err := auth.CheckPassword(passwordHash, req.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid username or password", reqID)
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, auth.Claims{UserID: userID, Name: name, Role: role}, tokenTTL)
	if err != nil {
		slog.Error("token generation failed", "error", err)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "login failed", reqID)
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  map[string]string{"id": userID, "name": name, "role": role},
	}, reqID)
}
