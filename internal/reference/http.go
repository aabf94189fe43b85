// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/respond"
)

// Handler exposes the read-only reference endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs the reference HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the reference endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/categories", handler.listCategories)
	router.Get("/tags", handler.listTags)
	router.Get("/activity-types", handler.listActivityTypes)
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.ListTags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) listActivityTypes(writer http.ResponseWriter, request *http.Request) {
	types, err := handler.service.ListActivityTypes(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, types)
}
