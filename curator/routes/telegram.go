// curator/routes/telegram.go
package routes

import (
	"encoding/json"
	"net/http"

	"curator/curator/bot"
	"curator/curator/utils/logging"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramRoutes exposes the webhook intake plus management endpoints. The
// bot service is injected; nothing is initialized on first request.
func TelegramRoutes(service *bot.Service) chi.Router {
	r := chi.NewRouter()

	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			logging.ErrorLogger.Error("webhook decode failed", zap.Error(err))
			http.Error(w, "bad update payload", http.StatusBadRequest)
			return
		}
		service.HandleUpdate(r.Context(), update)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	r.Get("/set", handleJSON(func(r *http.Request) (any, int, error) {
		url, err := service.SetWebhook()
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return map[string]string{"status": "webhook set", "url": url}, http.StatusOK, nil
	}))

	r.Get("/info", handleJSON(func(r *http.Request) (any, int, error) {
		info, err := service.WebhookInfo()
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return map[string]any{
			"url":                  info.URL,
			"pending_update_count": info.PendingUpdateCount,
			"last_error_date":      info.LastErrorDate,
			"last_error_message":   info.LastErrorMessage,
			"max_connections":      info.MaxConnections,
		}, http.StatusOK, nil
	}))

	r.Delete("/", handleJSON(func(r *http.Request) (any, int, error) {
		if err := service.DeleteWebhook(); err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return map[string]string{"status": "webhook deleted"}, http.StatusOK, nil
	}))

	return r
}
