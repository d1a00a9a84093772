// curator/bot/handlers.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"curator/curator/services/gemini"
	"curator/curator/sources/psql/dao"
	"curator/curator/utils/logging"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func telegramID(from *tgbotapi.User) string {
	return strconv.FormatInt(from.ID, 10)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func analysisKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("😊 Анализ тональности", "analyze_sentiment")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Краткая выжимка", "analyze_summary")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔑 Ключевые слова", "analyze_keywords")),
	)
}

func (s *Service) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	reply := tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf(msgWelcome, msg.From.FirstName))
	reply.ReplyMarkup = analysisKeyboard()
	if _, err := s.sender.Send(reply); err != nil {
		logging.ErrorLogger.Error("telegram send failed", zap.Error(err))
	}
}

func (s *Service) handleHelp(ctx context.Context, msg *tgbotapi.Message) {
	s.reply(msg.Chat.ID, msgHelp)
}

func (s *Service) handleConnect(ctx context.Context, msg *tgbotapi.Message) {
	username := strings.TrimSpace(msg.CommandArguments())
	if username == "" {
		s.reply(msg.Chat.ID, msgConnectUsage)
		return
	}

	user, err := s.userDAO.GetUserByUsername(ctx, username)
	if err != nil {
		logging.ErrorLogger.Error("connect lookup failed", zap.Error(err))
		s.reply(msg.Chat.ID, msgGenericError)
		return
	}
	if user == nil {
		s.reply(msg.Chat.ID, fmt.Sprintf(msgUserNotFound, username))
		return
	}

	tgID := telegramID(msg.From)
	if err := s.userDAO.LinkTelegramID(ctx, user, tgID); err != nil {
		if errors.Is(err, dao.ErrConflict) {
			s.reply(msg.Chat.ID, msgConnectConflict)
			return
		}
		logging.ErrorLogger.Error("connect link failed", zap.Error(err))
		s.reply(msg.Chat.ID, msgGenericError)
		return
	}
	if err := s.sessionDAO.SetSessionUser(ctx, tgID, &user.ID); err != nil {
		logging.ErrorLogger.Error("session link failed", zap.Error(err))
	}

	s.reply(msg.Chat.ID, fmt.Sprintf(msgConnected, username))
}

func (s *Service) handleDisconnect(ctx context.Context, msg *tgbotapi.Message) {
	tgID := telegramID(msg.From)
	user, err := s.userDAO.GetUserByTelegramID(ctx, tgID)
	if err != nil {
		logging.ErrorLogger.Error("disconnect lookup failed", zap.Error(err))
		s.reply(msg.Chat.ID, msgGenericError)
		return
	}
	if user == nil {
		s.reply(msg.Chat.ID, msgNotConnected)
		return
	}
	if err := s.userDAO.UnlinkTelegramID(ctx, user); err != nil {
		logging.ErrorLogger.Error("disconnect unlink failed", zap.Error(err))
		s.reply(msg.Chat.ID, msgGenericError)
		return
	}
	if err := s.sessionDAO.SetSessionUser(ctx, tgID, nil); err != nil {
		logging.ErrorLogger.Error("session unlink failed", zap.Error(err))
	}
	s.reply(msg.Chat.ID, msgDisconnected)
}

func (s *Service) handleAnalyze(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) < 2 {
		s.reply(msg.Chat.ID, msgAnalyzeUsage)
		return
	}

	kind, err := gemini.ParseKind(strings.ToLower(args[0]))
	if err != nil {
		s.reply(msg.Chat.ID, msgInvalidKind)
		return
	}
	text := strings.Join(args[1:], " ")

	s.performAnalysis(ctx, msg.Chat.ID, msg.From, text, kind)
}

func (s *Service) handleHistory(ctx context.Context, msg *tgbotapi.Message) {
	user, err := s.userDAO.GetUserByTelegramID(ctx, telegramID(msg.From))
	if err != nil {
		logging.ErrorLogger.Error("history lookup failed", zap.Error(err))
		s.reply(msg.Chat.ID, msgGenericError)
		return
	}
	if user == nil {
		s.reply(msg.Chat.ID, msgConnectRequired)
		return
	}

	analyses, _, err := s.analysisDAO.ListAnalysesByUser(ctx, user.ID, nil, 0, 5)
	if err != nil {
		logging.ErrorLogger.Error("history fetch failed", zap.Error(err))
		s.reply(msg.Chat.ID, msgGenericError)
		return
	}
	if len(analyses) == 0 {
		s.reply(msg.Chat.ID, msgNoHistory)
		return
	}

	var b strings.Builder
	b.WriteString("📊 Ваши последние анализы:\n\n")
	for i, analysis := range analyses {
		emoji, ok := kindEmojis[analysis.Kind]
		if !ok {
			emoji = "📊"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s\n", emoji, i+1, analysis.Kind))
		b.WriteString(fmt.Sprintf("📝 %s\n", truncate(analysis.OriginalText, 50)))
		b.WriteString(fmt.Sprintf("💡 %s\n", truncate(analysis.Result, 100)))
		b.WriteString(fmt.Sprintf("📅 %s\n\n", analysis.CreatedAt.Format("02.01.2006 15:04")))
	}
	s.reply(msg.Chat.ID, b.String())
}

func (s *Service) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := s.sender.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logging.ErrorLogger.Error("callback ack failed", zap.Error(err))
	}
	if query.Message == nil || !strings.HasPrefix(query.Data, "analyze_") {
		return
	}

	kind, err := gemini.ParseKind(strings.TrimPrefix(query.Data, "analyze_"))
	if err != nil {
		return
	}
	chatID := query.Message.Chat.ID

	// When the keyboard followed a plain-text message, analyze that text
	// right away; otherwise ask for the text.
	s.mu.Lock()
	text, hasText := s.lastText[chatID]
	if hasText {
		delete(s.lastText, chatID)
	} else {
		s.pending[chatID] = kind
	}
	s.mu.Unlock()

	if hasText {
		s.performAnalysis(ctx, chatID, query.From, text, kind)
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, query.Message.MessageID,
		fmt.Sprintf(msgSendTextFor, kindPromptNames[kind.String()]))
	if _, err := s.sender.Send(edit); err != nil {
		logging.ErrorLogger.Error("telegram edit failed", zap.Error(err))
	}
}

func (s *Service) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	s.mu.Lock()
	kind, waiting := s.pending[chatID]
	if waiting {
		delete(s.pending, chatID)
	}
	s.mu.Unlock()

	if waiting {
		s.performAnalysis(ctx, chatID, msg.From, msg.Text, kind)
		return
	}

	if len([]rune(msg.Text)) <= 20 {
		s.reply(chatID, msgTextTooShort)
		return
	}

	s.mu.Lock()
	s.lastText[chatID] = msg.Text
	s.mu.Unlock()

	reply := tgbotapi.NewMessage(chatID, msgChooseKind)
	reply.ReplyMarkup = analysisKeyboard()
	if _, err := s.sender.Send(reply); err != nil {
		logging.ErrorLogger.Error("telegram send failed", zap.Error(err))
	}
}

// performAnalysis runs the gateway call and, when the Telegram identity is
// linked to an account, records the result in that account's history.
func (s *Service) performAnalysis(ctx context.Context, chatID int64, from *tgbotapi.User, text string, kind gemini.Kind) {
	status, err := s.sender.Send(tgbotapi.NewMessage(chatID, msgAnalyzing))
	if err != nil {
		logging.ErrorLogger.Error("telegram send failed", zap.Error(err))
	}

	result, err := s.gemini.Analyze(ctx, text, kind)
	if err != nil {
		s.editOrReply(chatID, status.MessageID, msgAnalysisFailed)
		return
	}

	s.saveAnalysis(ctx, from, text, result)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s **%s**\n\n", kindEmojis[kind.String()], kindTitles[kind.String()]))
	b.WriteString(fmt.Sprintf("📝 **Исходный текст:**\n%s\n\n", truncate(text, 200)))
	b.WriteString(fmt.Sprintf("💡 **Результат:**\n%s\n\n", result.Text))
	if result.Confidence != nil {
		b.WriteString(fmt.Sprintf("🎯 **Уверенность:** %.2f\n", *result.Confidence))
	}
	b.WriteString("✅ Анализ завершен!")

	s.editOrReply(chatID, status.MessageID, b.String())
}

// saveAnalysis persists the result when the sender is linked to a user;
// unlinked identities get their reply but no history row.
func (s *Service) saveAnalysis(ctx context.Context, from *tgbotapi.User, text string, result *gemini.Result) {
	user, err := s.userDAO.GetUserByTelegramID(ctx, telegramID(from))
	if err != nil || user == nil {
		return
	}
	processingTime := fmt.Sprintf("%.2fs", result.Duration.Seconds())
	_, err = s.analysisDAO.CreateAnalysis(ctx, user.ID, text, result.Kind.String(), result.Text, result.Confidence, &processingTime)
	if err != nil {
		logging.ErrorLogger.Error("analysis save failed",
			zap.Int("user_id", user.ID), zap.Error(err))
	}
}

func (s *Service) editOrReply(chatID int64, messageID int, text string) {
	if messageID != 0 {
		edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
		edit.ParseMode = tgbotapi.ModeMarkdown
		if _, err := s.sender.Send(edit); err == nil {
			return
		}
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := s.sender.Send(msg); err != nil {
		logging.ErrorLogger.Error("telegram send failed", zap.Error(err))
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
