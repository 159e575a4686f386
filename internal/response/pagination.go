// file: internal/response/pagination.go
package response

import (
	"net/http"
	"strconv"

	"vidtube/internal/models"
	"vidtube/internal/services"
)

// ParsePagination reads page and limit query parameters. Absent parameters
// take the given defaults; present parameters must parse as positive
// integers or the whole request is rejected.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) (models.PaginationParams, error) {
	params := models.PaginationParams{Page: 1, Limit: defaultLimit}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return params, services.NewValidationError("page must be a positive integer", err)
		}
		params.Page = page
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return params, services.NewValidationError("limit must be a positive integer", err)
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		params.Limit = limit
	}

	return params, nil
}
