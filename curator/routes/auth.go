// curator/routes/auth.go
package routes

import (
	"encoding/json"
	"net/http"

	"curator/curator/config"
	"curator/curator/controllers"
	"curator/curator/middlewares"
	"curator/curator/sources/psql/dao"
	"curator/curator/types"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(ctrl *controllers.AuthController, userDAO *dao.UserDAO, cfg config.Config) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		user, err := ctrl.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			return nil, errStatus(err), err
		}
		return user, http.StatusCreated, nil
	}))

	r.Post("/login", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		token, err := ctrl.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			return nil, errStatus(err), err
		}
		return types.TokenResponse{AccessToken: token, TokenType: "bearer"}, http.StatusOK, nil
	}))

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg, userDAO))

		gr.Get("/me", handleJSON(func(r *http.Request) (any, int, error) {
			user, ok := middlewares.CurrentUser(r.Context())
			if !ok {
				return nil, http.StatusUnauthorized, controllers.ErrUnauthorized
			}
			return user, http.StatusOK, nil
		}))
	})

	return r
}
