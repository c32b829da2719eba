package rest

import (
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/contextkeys"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port/usecases_port"
	"net/http"
)

type CategoriesHandler struct {
	getCategoriesUC usecases_port.GetCategoriesUseCasePort
}

func NewCategoriesHandler(getCategoriesUC usecases_port.GetCategoriesUseCasePort) *CategoriesHandler {
	return &CategoriesHandler{getCategoriesUC: getCategoriesUC}
}

// GetCategories обрабатывает GET /api/v1/categories
func (h *CategoriesHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetCategories"})

	categories, err := h.getCategoriesUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = toCategoryResponse(c)
	}
	RespondWithJSON(w, http.StatusOK, response)
}
