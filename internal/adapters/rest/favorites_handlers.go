package rest

import (
	"encoding/json"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port/usecases_port"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FavoritesHandler - избранное текущего пользователя.
type FavoritesHandler struct {
	addUC        usecases_port.AddToFavoritesUseCasePort
	removeUC     usecases_port.RemoveFromFavoritesUseCasePort
	getObjectsUC usecases_port.GetUserFavoritesUseCasePort
	getIdsUC     usecases_port.GetUserFavoritesIdsUseCasePort
	pagination   PaginationConfig
}

func NewFavoritesHandler(addUC usecases_port.AddToFavoritesUseCasePort,
	removeUC usecases_port.RemoveFromFavoritesUseCasePort,
	getObjectsUC usecases_port.GetUserFavoritesUseCasePort,
	getIdsUC usecases_port.GetUserFavoritesIdsUseCasePort,
	pagination PaginationConfig) *FavoritesHandler {
	return &FavoritesHandler{
		addUC:        addUC,
		removeUC:     removeUC,
		getObjectsUC: getObjectsUC,
		getIdsUC:     getIdsUC,
		pagination:   pagination.withDefaults(),
	}
}

// GetUserFavoritesIds обрабатывает GET /api/v1/favorites/ids
func (h *FavoritesHandler) GetUserFavoritesIds(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetUserFavoritesIds"})

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	ids, err := h.getIdsUC.Execute(r.Context(), userID)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}

	RespondWithJSON(w, http.StatusOK, FavoriteIDsResponse{ListingIDs: ids})
}

// GetUserFavorites обрабатывает GET /api/v1/favorites
func (h *FavoritesHandler) GetUserFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetUserFavorites"})

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	parser := newQueryParser(r.URL.Query())
	sortSpec := parser.parseSortSpec()
	page := parser.parsePageSpec(h.pagination)
	if err := parser.Err(); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	result, err := h.getObjectsUC.Execute(r.Context(), userID, sortSpec, page)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	logger.Info("Successfully retrieved user favorites", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Items),
	})
	RespondWithJSON(w, http.StatusOK, toListingPageResponse(result))
}

// AddToFavorites обрабатывает POST /api/v1/favorites
func (h *FavoritesHandler) AddToFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AddToFavorites"})

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	var reqDTO AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode request body for add favorite", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	listingID, err := uuid.Parse(reqDTO.ListingID)
	if err != nil {
		logger.Warn("Invalid listing_id format in request", port.Fields{"provided_id": reqDTO.ListingID})
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing_id format")
		return
	}

	if err := h.addUC.Execute(r.Context(), userID, listingID); err != nil {
		writeUseCaseError(w, logger.WithFields(port.Fields{"listing_id": listingID}), err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// RemoveFromFavorites обрабатывает DELETE /api/v1/favorites/{listingID}
func (h *FavoritesHandler) RemoveFromFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RemoveFromFavorites"})

	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	listingID, err := parsePathUUID(chi.URLParam(r, "listingID"), "listingID")
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	if err := h.removeUC.Execute(r.Context(), userID, listingID); err != nil {
		writeUseCaseError(w, logger.WithFields(port.Fields{"listing_id": listingID}), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
