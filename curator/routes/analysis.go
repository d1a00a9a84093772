// curator/routes/analysis.go
package routes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"curator/curator/config"
	"curator/curator/controllers"
	"curator/curator/middlewares"
	"curator/curator/sources/psql/dao"
	"curator/curator/sources/psql/models"
	"curator/curator/types"

	"github.com/go-chi/chi/v5"
)

func AnalysisRoutes(ctrl *controllers.AnalysisController, userDAO *dao.UserDAO, cfg config.Config) chi.Router {
	r := chi.NewRouter()

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg, userDAO))

		gr.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
			user, ok := middlewares.CurrentUser(r.Context())
			if !ok {
				return nil, http.StatusUnauthorized, controllers.ErrUnauthorized
			}
			var req types.AnalysisRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, http.StatusBadRequest, err
			}
			analysis, err := ctrl.Create(r.Context(), user, req.Text, req.Kind)
			if err != nil {
				return nil, errStatus(err), err
			}
			return analysis, http.StatusCreated, nil
		}))

		gr.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
			user, ok := middlewares.CurrentUser(r.Context())
			if !ok {
				return nil, http.StatusUnauthorized, controllers.ErrUnauthorized
			}
			offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
			limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			kind := r.URL.Query().Get("analysis_type")

			analyses, total, err := ctrl.List(r.Context(), user, kind, offset, limit)
			if err != nil {
				return nil, errStatus(err), err
			}
			if analyses == nil {
				analyses = []models.Analysis{}
			}
			return types.AnalysisListResponse{Analyses: analyses, Total: total}, http.StatusOK, nil
		}))

		gr.Get("/{analysis_id}", handleJSON(func(r *http.Request) (any, int, error) {
			user, ok := middlewares.CurrentUser(r.Context())
			if !ok {
				return nil, http.StatusUnauthorized, controllers.ErrUnauthorized
			}
			id, err := strconv.Atoi(chi.URLParam(r, "analysis_id"))
			if err != nil {
				return nil, http.StatusBadRequest, err
			}
			analysis, err := ctrl.Get(r.Context(), user, id)
			if err != nil {
				return nil, errStatus(err), err
			}
			return analysis, http.StatusOK, nil
		}))

		gr.Delete("/{analysis_id}", handleJSON(func(r *http.Request) (any, int, error) {
			user, ok := middlewares.CurrentUser(r.Context())
			if !ok {
				return nil, http.StatusUnauthorized, controllers.ErrUnauthorized
			}
			id, err := strconv.Atoi(chi.URLParam(r, "analysis_id"))
			if err != nil {
				return nil, http.StatusBadRequest, err
			}
			if err := ctrl.Delete(r.Context(), user, id); err != nil {
				return nil, errStatus(err), err
			}
			return types.MessageResponse{Message: "analysis deleted", Status: "success"}, http.StatusOK, nil
		}))
	})

	return r
}
