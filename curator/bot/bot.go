// curator/bot/bot.go
package bot

import (
	"context"
	"errors"
	"sync"

	"curator/curator/config"
	"curator/curator/services/gemini"
	"curator/curator/sources/psql/dao"
	"curator/curator/utils/logging"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

var ErrMissingBotToken = errors.New("TELEGRAM_BOT_TOKEN is not set")

// Sender is the slice of the Telegram API the handlers need. The real
// client satisfies it; tests swap in a recorder.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Service handles Telegram updates. It is constructed once at process
// startup and injected into the webhook routes; there is no lazily
// initialized global.
type Service struct {
	api        *tgbotapi.BotAPI
	sender     Sender
	userDAO    *dao.UserDAO
	sessionDAO *dao.TelegramSessionDAO
	analysisDAO *dao.AnalysisDAO
	gemini     *gemini.Service
	webhookURL string

	mu      sync.Mutex
	pending map[int64]gemini.Kind // per-chat kind awaiting its text
	lastText map[int64]string     // per-chat text awaiting its kind
}

func NewService(cfg config.Config, userDAO *dao.UserDAO, sessionDAO *dao.TelegramSessionDAO, analysisDAO *dao.AnalysisDAO, geminiService *gemini.Service) (*Service, error) {
	if cfg.TelegramBotToken == "" {
		return nil, ErrMissingBotToken
	}
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, err
	}
	return &Service{
		api:         api,
		sender:      api,
		userDAO:     userDAO,
		sessionDAO:  sessionDAO,
		analysisDAO: analysisDAO,
		gemini:      geminiService,
		webhookURL:  cfg.TelegramWebhookURL,
		pending:     make(map[int64]gemini.Kind),
		lastText:    make(map[int64]string),
	}, nil
}

// HandleUpdate dispatches one webhook update. Errors are logged and
// swallowed; Telegram retries delivery on non-200 responses and a broken
// update should not be retried forever.
func (s *Service) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer logging.LogDuration(ctx, "bot_handle_update")()

	switch {
	case update.CallbackQuery != nil:
		s.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		s.handleMessage(ctx, update.Message)
	}
}

func (s *Service) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	s.saveSession(ctx, msg.From)

	if !msg.IsCommand() {
		s.handleText(ctx, msg)
		return
	}

	switch msg.Command() {
	case "start":
		s.handleStart(ctx, msg)
	case "help":
		s.handleHelp(ctx, msg)
	case "connect":
		s.handleConnect(ctx, msg)
	case "disconnect":
		s.handleDisconnect(ctx, msg)
	case "analyze":
		s.handleAnalyze(ctx, msg)
	case "history":
		s.handleHistory(ctx, msg)
	default:
		s.reply(msg.Chat.ID, msgUnknownCommand)
	}
}

// saveSession upserts the Telegram session on every contact.
func (s *Service) saveSession(ctx context.Context, from *tgbotapi.User) {
	tgID := telegramID(from)
	_, err := s.sessionDAO.UpsertSession(ctx, tgID,
		optional(from.UserName), optional(from.FirstName), optional(from.LastName))
	if err != nil {
		logging.ErrorLogger.Error("session upsert failed",
			zap.String("telegram_id", tgID), zap.Error(err))
	}
}

func (s *Service) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := s.sender.Send(msg); err != nil {
		logging.ErrorLogger.Error("telegram send failed", zap.Error(err))
	}
}

// SetWebhook registers the webhook URL with Telegram.
func (s *Service) SetWebhook() (string, error) {
	url := s.webhookURL + "/webhook/telegram"
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return "", err
	}
	if _, err := s.sender.Request(wh); err != nil {
		return "", err
	}
	return url, nil
}

func (s *Service) DeleteWebhook() error {
	_, err := s.sender.Request(tgbotapi.DeleteWebhookConfig{})
	return err
}

func (s *Service) WebhookInfo() (tgbotapi.WebhookInfo, error) {
	if s.api == nil {
		return tgbotapi.WebhookInfo{}, errors.New("bot api not configured")
	}
	return s.api.GetWebhookInfo()
}
