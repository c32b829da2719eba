package rest

import (
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port/usecases_port"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SearchObserver получает размер каждой отданной страницы поиска.
type SearchObserver interface {
	ObserveSearchPage(scope string, items int)
}

// ListingsHandler - публичный поиск и "мои объявления".
type ListingsHandler struct {
	searchUC   usecases_port.SearchListingsUseCasePort
	getByIDUC  usecases_port.GetListingByIDUseCasePort
	pagination PaginationConfig
	observer   SearchObserver
}

// NewListingsHandler: observer может быть nil.
func NewListingsHandler(searchUC usecases_port.SearchListingsUseCasePort,
	getByIDUC usecases_port.GetListingByIDUseCasePort,
	pagination PaginationConfig,
	observer SearchObserver) *ListingsHandler {
	return &ListingsHandler{
		searchUC:   searchUC,
		getByIDUC:  getByIDUC,
		pagination: pagination.withDefaults(),
		observer:   observer,
	}
}

// SearchListings обрабатывает GET /api/v1/listings
func (h *ListingsHandler) SearchListings(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, domain.ScopePublic, "SearchListings")
}

// SearchMyListings обрабатывает GET /api/v1/me/listings
func (h *ListingsHandler) SearchMyListings(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, domain.ScopeOwner, "SearchMyListings")
}

func (h *ListingsHandler) search(w http.ResponseWriter, r *http.Request, scope domain.SearchScope, handlerName string) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": handlerName})

	parser := newQueryParser(r.URL.Query())
	req := domain.SearchRequest{
		Criteria:         parser.parseSearchCriteria(),
		Sort:             parser.parseSortSpec(),
		Page:             parser.parsePageSpec(h.pagination),
		RequestingUserID: optionalUserID(r.Context()),
		Scope:            scope,
	}
	if err := parser.Err(); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"skip":     req.Page.Skip,
		"take":     req.Page.Take,
		"sort_by":  req.Sort.Key,
		"sort_dir": req.Sort.Direction,
	})
	handlerLogger.Info("Processing search request", nil)

	result, err := h.searchUC.Execute(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, handlerLogger, err)
		return
	}

	if h.observer != nil {
		h.observer.ObserveSearchPage(string(scope), len(result.Items))
	}
	RespondWithJSON(w, http.StatusOK, toListingPageResponse(result))
}

// GetListing обрабатывает GET /api/v1/listings/{listingID}
func (h *ListingsHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	h.getByID(w, r, domain.ScopePublic, "GetListing")
}

// GetMyListing обрабатывает GET /api/v1/me/listings/{listingID}
func (h *ListingsHandler) GetMyListing(w http.ResponseWriter, r *http.Request) {
	h.getByID(w, r, domain.ScopeOwner, "GetMyListing")
}

func (h *ListingsHandler) getByID(w http.ResponseWriter, r *http.Request, scope domain.SearchScope, handlerName string) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": handlerName})

	listingID, err := parsePathUUID(chi.URLParam(r, "listingID"), "listingID")
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	listing, err := h.getByIDUC.Execute(r.Context(), listingID, optionalUserID(r.Context()), scope)
	if err != nil {
		writeUseCaseError(w, logger.WithFields(port.Fields{"listing_id": listingID}), err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toListingResponse(*listing))
}
