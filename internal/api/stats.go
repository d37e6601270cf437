// Copyright (c) 2026 Musée Virtuel. All rights reserved.
// Author: dev@musee-virtuel.sn

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teranga-labs/musee-api/internal/catalog/artwork"
	"github.com/teranga-labs/musee-api/internal/catalog/room"
	"github.com/teranga-labs/musee-api/internal/platform/respond"
)

// StatsHandler serves the combined catalog statistics consumed by the
// curation dashboard.
type StatsHandler struct {
	rooms    *room.Service
	artworks *artwork.Service
}

func NewStatsHandler(rooms *room.Service, artworks *artwork.Service) *StatsHandler {
	return &StatsHandler{rooms: rooms, artworks: artworks}
}

func (handler *StatsHandler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.overview)
	router.Get("/rooms", handler.roomStats)
	router.Get("/artworks", handler.artworkStats)
}

// overview bundles both aggregates in one payload.
func (handler *StatsHandler) overview(writer http.ResponseWriter, request *http.Request) {
	roomStats, err := handler.rooms.Statistics(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	artworkStats, err := handler.artworks.Statistics(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"rooms":    roomStats,
		"artworks": artworkStats,
	})
}

func (handler *StatsHandler) roomStats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.rooms.Statistics(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}

func (handler *StatsHandler) artworkStats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.artworks.Statistics(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}
