package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-quest-go/internal/user/entity"
	"github.com/ovaphlow/pitchfork/service-quest-go/pkg/utilities"
)

// Handler exposes HTTP endpoints for user operations (register / login / profile).
type Handler struct {
	svc      *UserService
	logger   *zap.SugaredLogger
	validate *validator.Validate
}

func NewHandler(svc *UserService, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger, validate: validator.New()}
}

// RegisterRequest request body for register endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest login payload. An empty or oversized password is left to the
// hash comparison so it fails as invalid credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password"`
}

// LoginResponse carries the summary under the keys clients already use.
type LoginResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
	Nome    string `json:"nome"`
	Email   string `json:"email"`
	Pontos  int    `json:"pontos"`
}

type ProfileView struct {
	ID     int64  `json:"id"`
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	Pontos int    `json:"pontos"`
}

type ProfileResponse struct {
	User ProfileView `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid register payload", "err", err)
		utilities.WriteMessage(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.Debugw("register validation failed", "err", err)
		utilities.WriteMessage(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if _, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			utilities.WriteMessage(w, http.StatusConflict, "email already registered")
			return
		}
		// max=72 counts runes; bcrypt limits bytes
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			utilities.WriteMessage(w, http.StatusBadRequest, "invalid payload")
			return
		}
		h.logger.Warnw("register failed", "err", err)
		utilities.WriteMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}
	utilities.WriteMessage(w, http.StatusCreated, "user registered successfully")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debugw("invalid login payload", "err", err)
		utilities.WriteMessage(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utilities.WriteMessage(w, http.StatusBadRequest, "invalid payload")
		return
	}
	sum, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			utilities.WriteMessage(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Warnw("login failed", "err", err)
		utilities.WriteMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}
	utilities.WriteJSON(w, http.StatusOK, LoginResponse{
		Message: "login successful",
		UserID:  sum.ID,
		Nome:    sum.Name,
		Email:   sum.Email,
		Pontos:  sum.Points,
	})
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		utilities.WriteMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}
	sum, err := h.svc.Profile(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utilities.WriteMessage(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Warnw("profile failed", "user_id", id, "err", err)
		utilities.WriteMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}
	utilities.WriteJSON(w, http.StatusOK, ProfileResponse{User: profileView(sum)})
}

func profileView(s *entity.Summary) ProfileView {
	return ProfileView{ID: s.ID, Nome: s.Name, Email: s.Email, Pontos: s.Points}
}
