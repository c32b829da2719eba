package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/port"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// writeUseCaseError переводит доменную ошибку в HTTP-статус.
// Детали ошибок хранилища наружу не отдаются.
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.Warn("Request rejected", port.Fields{"field": validationErr.Field, "reason": validationErr.Reason})
		WriteJSONError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, domain.ErrValidation):
		logger.Warn("Request rejected", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		logger.Info("Requested entity not found", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrDependency):
		logger.Error("Dependency is unavailable", err, nil)
		WriteJSONError(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		logger.Error("Unexpected use case error", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// queryParser разбирает параметры строки запроса. Запоминает первую ошибку,
// после нее остальные параметры уже не важны: ответ все равно будет 400.
type queryParser struct {
	values url.Values
	err    error
}

func newQueryParser(values url.Values) *queryParser {
	return &queryParser{values: values}
}

func (p *queryParser) Err() error {
	return p.err
}

func (p *queryParser) fail(key, reason string) {
	if p.err == nil {
		p.err = domain.NewValidationError(key, reason)
	}
}

func (p *queryParser) raw(key string) (string, bool) {
	value := strings.TrimSpace(p.values.Get(key))
	return value, value != ""
}

func (p *queryParser) has(key string) bool {
	_, ok := p.raw(key)
	return ok
}

func (p *queryParser) parseString(key string) *string {
	value, ok := p.raw(key)
	if !ok {
		return nil
	}
	return &value
}

func (p *queryParser) parseFloat(key string) *float64 {
	value, ok := p.raw(key)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		p.fail(key, "must be a number")
		return nil
	}
	return &f
}

func (p *queryParser) parseInt(key string) *int {
	value, ok := p.raw(key)
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		p.fail(key, "must be an integer")
		return nil
	}
	return &i
}

func (p *queryParser) parseIntOr(key string, def int) int {
	if v := p.parseInt(key); v != nil {
		return *v
	}
	return def
}

func (p *queryParser) parseBool(key string) *bool {
	value, ok := p.raw(key)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		p.fail(key, "must be true or false")
		return nil
	}
	return &b
}

func (p *queryParser) parseUUID(key string) *uuid.UUID {
	value, ok := p.raw(key)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		p.fail(key, "must be a UUID")
		return nil
	}
	return &id
}

func (p *queryParser) parseTime(key string) *time.Time {
	value, ok := p.raw(key)
	if !ok {
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		p.fail(key, "must be an RFC3339 timestamp")
		return nil
	}
	return &t
}

func (p *queryParser) parseFurnishing(key string) *domain.FurnishingStatus {
	value, ok := p.raw(key)
	if !ok {
		return nil
	}
	status, err := domain.ParseFurnishingStatus(value)
	if err != nil {
		p.fail(key, "must be one of unfurnished, partially-furnished, furnished")
		return nil
	}
	return &status
}

// PaginationConfig - размеры страницы по умолчанию и максимальный.
type PaginationConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

func (c PaginationConfig) withDefaults() PaginationConfig {
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = domain.MaxPageSize
	}
	if c.DefaultPageSize <= 0 || c.DefaultPageSize > c.MaxPageSize {
		c.DefaultPageSize = min(domain.DefaultPageSize, c.MaxPageSize)
	}
	return c
}

// parsePageSpec понимает обе формы: page/perPage и skip/take. Смешивать их нельзя.
func (p *queryParser) parsePageSpec(cfg PaginationConfig) domain.PageSpec {
	cfg = cfg.withDefaults()

	byNumber := p.has("page") || p.has("perPage")
	byOffset := p.has("skip") || p.has("take")
	if byNumber && byOffset {
		p.fail("page", "use either page/perPage or skip/take")
		return domain.PageSpec{}
	}

	var (
		spec domain.PageSpec
		err  error
	)
	if byNumber {
		page := p.parseIntOr("page", 1)
		perPage := p.parseIntOr("perPage", cfg.DefaultPageSize)
		if p.err != nil {
			return domain.PageSpec{}
		}
		spec, err = domain.PageFromNumber(page, perPage, cfg.MaxPageSize)
	} else {
		skip := p.parseIntOr("skip", 0)
		take := p.parseIntOr("take", cfg.DefaultPageSize)
		if p.err != nil {
			return domain.PageSpec{}
		}
		spec, err = domain.NewPageSpec(skip, take, cfg.MaxPageSize)
	}
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return domain.PageSpec{}
	}
	return spec
}

func (p *queryParser) parseSortSpec() domain.SortSpec {
	sortBy, _ := p.raw("sortBy")
	sortDir, _ := p.raw("sortDir")
	spec, err := domain.ParseSortSpec(sortBy, strings.ToLower(sortDir))
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		return domain.SortSpec{}
	}
	return spec
}

// parseSearchCriteria собирает фильтры поиска из строки запроса.
func (p *queryParser) parseSearchCriteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		CategoryID: p.parseUUID("categoryId"),
		OwnerID:    p.parseUUID("ownerId"),
		City:       p.parseString("city"),

		MinPrice:   p.parseFloat("minPrice"),
		MaxPrice:   p.parseFloat("maxPrice"),
		MinSurface: p.parseInt("minSurface"),
		MaxSurface: p.parseInt("maxSurface"),
		MinRooms:   p.parseInt("minRooms"),
		MaxRooms:   p.parseInt("maxRooms"),

		Furnishing: p.parseFurnishing("furnishing"),

		Terrace:                     p.parseBool("terrace"),
		Garden:                      p.parseBool("garden"),
		Pool:                        p.parseBool("pool"),
		PetsAllowed:                 p.parseBool("petsAllowed"),
		Elevator:                    p.parseBool("elevator"),
		RampAccess:                  p.parseBool("rampAccess"),
		ExpensesIncluded:            p.parseBool("expensesIncluded"),
		AcceptsAlternativeGuarantee: p.parseBool("acceptsAlternativeGuarantee"),

		TextSearch: p.parseString("q"),

		CreatedAfter:  p.parseTime("createdAfter"),
		CreatedBefore: p.parseTime("createdBefore"),
	}
}

func parsePathUUID(value, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, fmt.Sprintf("%q is not a UUID", value))
	}
	return id, nil
}
