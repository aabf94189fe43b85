// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/apperr"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/middleware"
	requestutil "github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/request"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/respond"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/sec"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/pkg/pagination"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/pkg/query"
)

// maxImageUploadBytes bounds multipart image uploads (8 MiB).
const maxImageUploadBytes = 8 << 20

// Handler exposes the catalog facade over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs the catalog HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the catalog endpoints.
//
// # Route Map
//
//	GET    /                  public catalog (anonymous allowed)
//	GET    /manage            organizer's own management view
//	GET    /moderation        administrator moderation queue
//	GET    /trash             administrator trash view
//	GET    /all               administrator catalog (pending + approved)
//	GET    /{idOrSlug}        single activity by UUID or slug
//	POST   /                  create (approved organizer or admin)
//	PATCH  /{id}              partial update
//	DELETE /{id}              soft delete (trash)
//	POST   /{id}/restore      restore from trash
//	DELETE /{id}/purge        permanent removal (trash only)
//	POST   /{id}/approve      moderation decision (admin)
//	POST   /{id}/image        multipart image upload
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listPublic)

	// Named management views go before the catch-all identifier route.
	router.With(middleware.RequireAuth).Get("/manage", handler.listOwn)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Get("/moderation", handler.listModeration)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Get("/trash", handler.listTrash)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Get("/all", handler.listAdminCatalog)

	router.Get("/{idOrSlug}", handler.getActivity)

	router.With(middleware.RequireAuth).Group(func(authed chi.Router) {
		authed.Post("/", handler.createActivity)
		authed.Patch("/{id}", handler.updateActivity)
		authed.Delete("/{id}", handler.softDeleteActivity)
		authed.Post("/{id}/restore", handler.restoreActivity)
		authed.Delete("/{id}/purge", handler.purgeActivity)
		authed.Post("/{id}/image", handler.uploadImage)
	})

	router.With(middleware.RequireRole(sec.RoleAdmin)).Post("/{id}/approve", handler.approveActivity)
}

// # Identity & Filter Extraction

// identityFromRequest maps the (possibly absent) auth claims to a requester
// identity. Anonymous requests yield the zero identity.
func identityFromRequest(request *http.Request) Identity {
	claims := requestutil.Claims(request)
	if claims == nil {
		return Identity{}
	}
	return Identity{
		SubjectID: claims.UserID,
		Role:      sec.UserRole(claims.Role),
		Approved:  claims.Approved,
	}
}

// filterFromRequest parses the list filter from query parameters.
func filterFromRequest(request *http.Request) Filter {
	params := request.URL.Query()

	return Filter{
		Query:                  params.Get("q"),
		CategoryID:             params.Get("category"),
		ActivityType:           params.Get("type"),
		Location:               params.Get("location"),
		PriceMin:               query.Float(params.Get("min_price")),
		PriceMax:               query.Float(params.Get("max_price")),
		FreeOnly:               query.Bool(params.Get("free")),
		TagIDs:                 query.IntSlice(params["tags"]),
		AllowDegradedTagFilter: query.Bool(params.Get("allow_degraded_tags")),
		Sort:                   params.Get("sort"),
		SortDir:                params.Get("dir"),
	}
}

// # List Views

func (handler *Handler) listPublic(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, ViewPublic)
}

func (handler *Handler) listOwn(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, ViewOwn)
}

func (handler *Handler) listModeration(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, ViewModeration)
}

func (handler *Handler) listTrash(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, ViewTrash)
}

func (handler *Handler) listAdminCatalog(writer http.ResponseWriter, request *http.Request) {
	handler.list(writer, request, ViewAdminCatalog)
}

// list is the shared implementation behind every view endpoint.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request, view ViewKind) {
	requester := identityFromRequest(request)
	filter := filterFromRequest(request)
	page := pagination.FromRequest(request)

	result, err := handler.service.List(request.Context(), requester, view, filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Empty pages serialize as [] rather than null.
	activities := result.Activities
	if activities == nil {
		activities = []*Activity{}
	}

	meta := pagination.NewMeta(page.Page, page.Limit, result.Total)
	if result.DegradedTagFilter {
		respond.PaginatedDegraded(writer, activities, meta)
		return
	}
	respond.Paginated(writer, activities, meta)
}

// # Single Record

func (handler *Handler) getActivity(writer http.ResponseWriter, request *http.Request) {
	requester := identityFromRequest(request)
	idOrSlug := requestutil.ID(request, "idOrSlug")

	activity, err := handler.service.Get(request.Context(), requester, idOrSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, activity)
}

// # Mutations

func (handler *Handler) createActivity(writer http.ResponseWriter, request *http.Request) {
	requester := identityFromRequest(request)

	activity := &Activity{}
	if err := requestutil.DecodeJSON(request, activity); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, degraded, err := handler.service.Create(request.Context(), requester, activity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if degraded {
		// Base record exists but tag associations were lost: degraded success.
		respond.CreatedDegraded(writer, created)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateActivity(writer http.ResponseWriter, request *http.Request) {
	requester := identityFromRequest(request)
	id := requestutil.ID(request, "id")

	update := &ActivityUpdate{}
	if err := requestutil.DecodeJSON(request, update); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, degraded, err := handler.service.Update(request.Context(), requester, id, update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if degraded {
		respond.OKDegraded(writer, updated)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) softDeleteActivity(writer http.ResponseWriter, request *http.Request) {
	requester := identityFromRequest(request)
	id := requestutil.ID(request, "id")

	if err := handler.service.SoftDelete(request.Context(), requester, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) restoreActivity(writer http.ResponseWriter, request *http.Request) {
	requester := identityFromRequest(request)
	id := requestutil.ID(request, "id")

	if err := handler.service.Restore(request.Context(), requester, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) purgeActivity(writer http.ResponseWriter, request *http.Request) {
	requester := identityFromRequest(request)
	id := requestutil.ID(request, "id")

	if err := handler.service.Purge(request.Context(), requester, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// approveRequest is the moderation decision payload.
type approveRequest struct {
	Approved bool `json:"approved"`
}

func (handler *Handler) approveActivity(writer http.ResponseWriter, request *http.Request) {
	requester := identityFromRequest(request)
	id := requestutil.ID(request, "id")

	payload := &approveRequest{}
	if err := requestutil.DecodeJSON(request, payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Approve(request.Context(), requester, id, payload.Approved); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Image Upload

func (handler *Handler) uploadImage(writer http.ResponseWriter, request *http.Request) {
	requester := identityFromRequest(request)
	id := requestutil.ID(request, "id")

	request.Body = http.MaxBytesReader(writer, request.Body, maxImageUploadBytes)
	if err := request.ParseMultipartForm(maxImageUploadBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Image upload too large or malformed"))
		return
	}

	file, header, err := request.FormFile("image")
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Missing 'image' form field"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	imageURL, err := handler.service.UploadImage(request.Context(), requester, id, header.Filename, contentType, file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"image_url": imageURL})
}
