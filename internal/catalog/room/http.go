package room

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teranga-labs/musee-api/internal/platform/ctxutil"
	"github.com/teranga-labs/musee-api/internal/platform/middleware"
	requestutil "github.com/teranga-labs/musee-api/internal/platform/request"
	"github.com/teranga-labs/musee-api/internal/platform/respond"
	"github.com/teranga-labs/musee-api/internal/platform/sec"
	"github.com/teranga-labs/musee-api/pkg/convert"
	"github.com/teranga-labs/musee-api/pkg/pointer"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listRooms)
	router.Get("/search", handler.searchRooms)
	router.Get("/themes", handler.listThemes)
	router.Get("/accessibility-levels", handler.listAccessibilityLevels)
	router.Get("/{id}", handler.getRoom)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createRoom)
		adminRoute.Patch("/{id}", handler.updateRoom)
		adminRoute.Delete("/{id}", handler.deleteRoom)
	})
}

func (handler *Handler) listRooms(writer http.ResponseWriter, request *http.Request) {
	rooms, err := handler.service.GetAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rooms)
}

func (handler *Handler) getRoom(writer http.ResponseWriter, request *http.Request) {
	roomID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetByID(request.Context(), roomID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) searchRooms(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := Filter{
		Query: query.Get("q"),
		Theme: query.Get("theme"),
	}
	if raw := query.Get("accessibility"); raw != "" {
		filter.Accessibility = ParseAccessibility(raw)
	}
	if raw := query.Get("has_audio"); raw != "" {
		filter.HasAudio = pointer.To(convert.ToBool(raw, false))
	}

	rooms, err := handler.service.Search(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rooms)
}

func (handler *Handler) listThemes(writer http.ResponseWriter, request *http.Request) {
	themes, err := handler.service.AvailableThemes(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, themes)
}

func (handler *Handler) listAccessibilityLevels(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, AccessibilityLevels())
}

func (handler *Handler) createRoom(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), ctxutil.CallerRole(request.Context()), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

func (handler *Handler) updateRoom(writer http.ResponseWriter, request *http.Request) {
	roomID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), ctxutil.CallerRole(request.Context()), roomID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteRoom(writer http.ResponseWriter, request *http.Request) {
	roomID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), ctxutil.CallerRole(request.Context()), roomID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
