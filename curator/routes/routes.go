// curator/routes/routes.go
package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"curator/curator/controllers"
	"curator/curator/services/gemini"
	"curator/curator/sources/psql/dao"
)

// generic wrapper to reduce boilerplate
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			http.Error(w, err.Error(), status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(res)
	}
}

// errStatus maps the service error taxonomy onto HTTP statuses. Upstream AI
// failures stay generic; their causes are only ever logged.
func errStatus(err error) int {
	switch {
	case errors.Is(err, controllers.ErrValidation), errors.Is(err, gemini.ErrUnknownKind):
		return http.StatusBadRequest
	case errors.Is(err, controllers.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, dao.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, dao.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
