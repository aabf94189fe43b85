// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/middleware"
	requestutil "github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/request"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/respond"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/sec"
)

// Handler exposes the identity provider endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs the auth HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the authentication endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)

	router.With(middleware.RequireAuth).Get("/me", handler.me)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Post("/users/{id}/approve", handler.approveOrganizer)
}

// # Request Payloads

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
	Role        string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type approveOrganizerRequest struct {
	Approved bool `json:"approved"`
}

// loginResponse bundles the account with its issued tokens.
type loginResponse struct {
	User   *User      `json:"user"`
	Tokens *TokenPair `json:"tokens"`
}

// # Handlers

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	payload := &registerRequest{}
	if err := requestutil.DecodeJSON(request, payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	role := sec.UserRole(payload.Role)
	if payload.Role == "" {
		role = sec.RoleUser
	}

	user, err := handler.service.Register(request.Context(),
		payload.Email, payload.Password, payload.DisplayName, payload.Phone, role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, user)
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	payload := &loginRequest{}
	if err := requestutil.DecodeJSON(request, payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, tokens, err := handler.service.Login(request.Context(),
		payload.Email, payload.Password, request.UserAgent(), request.RemoteAddr)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, loginResponse{User: user, Tokens: tokens})
}

func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	payload := &refreshRequest{}
	if err := requestutil.DecodeJSON(request, payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tokens, err := handler.service.Refresh(request.Context(),
		payload.RefreshToken, request.UserAgent(), request.RemoteAddr)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tokens)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	payload := &refreshRequest{}
	if err := requestutil.DecodeJSON(request, payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Logout(request.Context(), payload.RefreshToken); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) approveOrganizer(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.ID(request, "id")

	payload := &approveOrganizerRequest{}
	if err := requestutil.DecodeJSON(request, payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ApproveOrganizer(request.Context(), userID, payload.Approved); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
