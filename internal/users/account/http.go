// Copyright (c) 2026 Musée Virtuel. All rights reserved.
// Author: dev@musee-virtuel.sn

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teranga-labs/musee-api/internal/platform/ctxutil"
	"github.com/teranga-labs/musee-api/internal/platform/middleware"
	requestutil "github.com/teranga-labs/musee-api/internal/platform/request"
	"github.com/teranga-labs/musee-api/internal/platform/respond"
	"github.com/teranga-labs/musee-api/internal/platform/sec"
	"github.com/teranga-labs/musee-api/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(middleware.RequireAuth).Get("/me", handler.profile)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Get("/", handler.listUsers)
		adminRoute.Patch("/{id}/active", handler.setActive)
		adminRoute.Delete("/{id}", handler.deleteUser)
	})
}

func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Profile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, err := handler.service.ListUsers(request.Context(), ctxutil.CallerRole(request.Context()))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	total := len(users)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.Limit()
	if end > total {
		end = total
	}

	respond.Paginated(writer, users[start:end], pagination.NewMeta(params, int64(total)))
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (handler *Handler) setActive(writer http.ResponseWriter, request *http.Request) {
	targetID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setActiveRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.SetActive(request.Context(), ctxutil.CallerRole(request.Context()), targetID, input.Active)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	targetID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	callerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteUser(request.Context(), ctxutil.CallerRole(request.Context()), callerID, targetID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
