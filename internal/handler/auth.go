package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/homerender/internal/model"
	"github.com/templui/homerender/internal/service"
	"github.com/templui/homerender/internal/session"
	"github.com/templui/homerender/internal/ui"
	"github.com/templui/homerender/internal/ui/pages"
)

type authHandler struct {
	base
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService, sessions *session.Manager) *authHandler {
	return &authHandler{
		base:        base{sessions: sessions},
		authService: authService,
	}
}

func (h *authHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	p := h.page(w, r, "Log in")
	ui.Render(w, r, pages.Login(p, pages.AuthForm{Next: r.URL.Query().Get("next")}))
}

func (h *authHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	p := h.page(w, r, "Register")
	ui.Render(w, r, pages.Register(p, pages.AuthForm{Next: r.URL.Query().Get("next")}))
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	form := pages.AuthForm{
		Email: strings.TrimSpace(r.FormValue("email")),
		Next:  r.FormValue("next"),
	}

	user, err := h.authService.Login(form.Email, r.FormValue("password"))
	if err != nil {
		status := http.StatusInternalServerError
		form.Error = "Something went wrong. Please try again."
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			status = http.StatusUnauthorized
			form.Error = "Invalid email or password."
		case errors.Is(err, service.ErrValidation):
			status = http.StatusBadRequest
			form.Error = err.Error()
		default:
			slog.Error("login failed", "error", err)
		}
		p := h.page(w, r, "Log in")
		ui.RenderStatus(w, r, status, pages.Login(p, form))
		return
	}

	h.signIn(w, r, user, "Welcome back, "+user.DisplayName()+".", form.Next)
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	form := pages.AuthForm{
		Email: strings.TrimSpace(r.FormValue("email")),
		Name:  strings.TrimSpace(r.FormValue("name")),
		Next:  r.FormValue("next"),
	}

	user, err := h.authService.Register(form.Email, form.Name, r.FormValue("password"))
	if err != nil {
		status := http.StatusInternalServerError
		form.Error = "Something went wrong. Please try again."
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			status = http.StatusConflict
			form.Error = "An account with this email already exists."
		case errors.Is(err, service.ErrValidation):
			status = http.StatusBadRequest
			form.Error = err.Error()
		default:
			slog.Error("registration failed", "error", err)
		}
		p := h.page(w, r, "Register")
		ui.RenderStatus(w, r, status, pages.Register(p, form))
		return
	}

	h.signIn(w, r, user, "Your account is ready.", form.Next)
}

func (h *authHandler) signIn(w http.ResponseWriter, r *http.Request, user *model.User, message, next string) {
	err := h.authService.SignIn(w, user)
	if err != nil {
		slog.Error("failed to sign in", "error", err, "user_id", user.ID)
		h.flashRedirect(w, r, session.FlashError, "Could not log you in. Please try again.", "/login")
		return
	}
	h.flashRedirect(w, r, session.FlashSuccess, message, safeNext(next))
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	h.flashRedirect(w, r, session.FlashInfo, "You have been logged out.", "/")
}
