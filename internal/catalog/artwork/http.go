package artwork

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teranga-labs/musee-api/internal/platform/ctxutil"
	"github.com/teranga-labs/musee-api/internal/platform/middleware"
	requestutil "github.com/teranga-labs/musee-api/internal/platform/request"
	"github.com/teranga-labs/musee-api/internal/platform/respond"
	"github.com/teranga-labs/musee-api/internal/platform/sec"
	"github.com/teranga-labs/musee-api/pkg/convert"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listArtworks)
	router.Get("/search", handler.searchArtworks)
	router.Get("/popular", handler.listPopular)
	router.Get("/categories", handler.listCategories)
	router.Get("/room/{roomID}", handler.listByRoom)
	router.Get("/category/{category}", handler.listByCategory)
	router.Get("/{id}", handler.viewArtwork)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/", handler.createArtwork)
		adminRoute.Post("/{id}/qrcode", handler.generateQRCode)
		adminRoute.Patch("/{id}", handler.updateArtwork)
		adminRoute.Delete("/{id}", handler.deleteArtwork)
	})
}

func (handler *Handler) listArtworks(writer http.ResponseWriter, request *http.Request) {
	artworks, err := handler.service.GetAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, artworks)
}

// viewArtwork returns one artwork and, unless disabled via
// ?increment_view=false, counts the visit.
func (handler *Handler) viewArtwork(writer http.ResponseWriter, request *http.Request) {
	artworkID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	increment := convert.ToBool(request.URL.Query().Get("increment_view"), true)

	found, err := handler.service.View(request.Context(), artworkID, increment)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

func (handler *Handler) searchArtworks(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := Filter{
		Query:    query.Get("q"),
		Category: query.Get("category"),
		Period:   query.Get("period"),
		Origin:   query.Get("origin"),
		RoomID:   convert.ToInt(query.Get("room_id"), 0),
	}
	limit := convert.ToInt(query.Get("limit"), 0)

	artworks, err := handler.service.Search(request.Context(), filter, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, artworks)
}

func (handler *Handler) listPopular(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	limit := convert.ToInt(query.Get("limit"), popularCacheSize)

	artworks, err := handler.service.GetPopular(request.Context(), limit, query.Get("category"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, artworks)
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.Categories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

func (handler *Handler) listByRoom(writer http.ResponseWriter, request *http.Request) {
	roomID, err := requestutil.IntID(request, "roomID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	artworks, err := handler.service.GetByRoom(request.Context(), roomID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, artworks)
}

func (handler *Handler) listByCategory(writer http.ResponseWriter, request *http.Request) {
	category := requestutil.Param(request, "category")

	artworks, err := handler.service.GetByCategory(request.Context(), category)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, artworks)
}

func (handler *Handler) createArtwork(writer http.ResponseWriter, request *http.Request) {
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

func (handler *Handler) generateQRCode(writer http.ResponseWriter, request *http.Request) {
	artworkID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.GenerateQRCode(request.Context(), ctxutil.CallerRole(request.Context()), artworkID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) updateArtwork(writer http.ResponseWriter, request *http.Request) {
	artworkID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), ctxutil.CallerRole(request.Context()), artworkID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

func (handler *Handler) deleteArtwork(writer http.ResponseWriter, request *http.Request) {
	artworkID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), ctxutil.CallerRole(request.Context()), artworkID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
