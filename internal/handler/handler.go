package handler

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gojobot/config"
	"gojobot/internal/barcode"
	"gojobot/internal/domain"
	"gojobot/internal/i18n"
	"gojobot/internal/links"
	"gojobot/internal/repository"
	"gojobot/internal/stats"
)

// Typed codes must look like a UPC/EAN value: digits only, 8..16 long.
const (
	minCodeLen = 8
	maxCodeLen = 16
)

type Handler struct {
	cfg        *config.Config
	logger     *zap.Logger
	sessions   repository.SessionRepository
	admins     map[int64]struct{}
	counter    *stats.ScanCounter
	recognizer barcode.Recognizer
	feed       *ScanFeed
}

func NewHandler(
	cfg *config.Config,
	logger *zap.Logger,
	sessions repository.SessionRepository,
	admins map[int64]struct{},
	counter *stats.ScanCounter,
	recognizer barcode.Recognizer,
	feed *ScanFeed,
) *Handler {
	return &Handler{
		cfg:        cfg,
		logger:     logger,
		sessions:   sessions,
		admins:     admins,
		counter:    counter,
		recognizer: recognizer,
		feed:       feed,
	}
}

// DefaultHandler receives every Telegram update and routes it: photos to
// the scanning pipeline, commands to their handlers, plain text to the
// literal-code path.
func (h *Handler) DefaultHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message
	sess := h.session(ctx, msg.From.ID)

	if len(msg.Photo) > 0 {
		h.handlePhoto(ctx, b, msg, sess)
		return
	}

	reply := h.routeText(ctx, sess, strings.TrimSpace(msg.Text))
	if reply == "" {
		return
	}
	h.reply(ctx, b, msg.Chat.ID, reply)
}

// routeText classifies a non-photo message and returns the reply text.
// An empty return means no reply (stickers, unknown commands).
func (h *Handler) routeText(ctx context.Context, sess *domain.Session, text string) string {
	if text == "" {
		return ""
	}

	if strings.HasPrefix(text, "/") {
		return h.routeCommand(ctx, sess, text)
	}

	if isCode(text) {
		total := h.counter.Add(1)
		h.publishScan(sess.TelegramID, text, domain.ScanSourceText)
		h.logger.Info("code received as text",
			zap.Int64("user_id", sess.TelegramID),
			zap.Int64("total_scans", total))
		return links.Build(text, sess.PreferredStore, sess.Language)
	}

	return promptText(sess.Language)
}

func (h *Handler) routeCommand(ctx context.Context, sess *domain.Session, text string) string {
	fields := strings.Fields(text)
	command := strings.ToLower(fields[0])
	// tolerate the /command@BotName form used in groups
	if at := strings.Index(command, "@"); at >= 0 {
		command = command[:at]
	}
	args := fields[1:]

	switch command {
	case "/start":
		return startText(sess)
	case "/help":
		return helpText(sess.Language)
	case "/lang":
		return h.langCommand(ctx, sess, args)
	case "/store":
		return h.storeCommand(ctx, sess, args)
	case "/stats":
		return h.statsCommand(sess)
	}

	h.logger.Debug("ignoring unknown command",
		zap.String("command", command),
		zap.Int64("user_id", sess.TelegramID))
	return ""
}

func (h *Handler) langCommand(ctx context.Context, sess *domain.Session, args []string) string {
	choice := ""
	if len(args) > 0 {
		choice = args[0]
	}

	lang, ok := i18n.Parse(choice)
	if !ok {
		return langPromptText(sess.Language)
	}

	sess.Language = lang
	h.saveSession(ctx, sess)
	return langSetText(lang)
}

func (h *Handler) storeCommand(ctx context.Context, sess *domain.Session, args []string) string {
	if len(args) == 0 {
		return storeShowText(sess)
	}

	// only the first whitespace-delimited token counts
	store := strings.TrimSpace(args[0])
	if !isDigits(store) {
		return storeInvalidText(sess.Language)
	}

	sess.PreferredStore = store
	h.saveSession(ctx, sess)
	return storeSetText(sess.Language, store)
}

func (h *Handler) statsCommand(sess *domain.Session) string {
	if _, ok := h.admins[sess.TelegramID]; !ok {
		return adminOnlyText(sess.Language)
	}
	return statsText(sess.Language, h.counter.Total())
}

// session loads the user's session, creating the default one on first
// contact. Store failures degrade to an unsaved default session so a
// broken backend never blocks replies.
func (h *Handler) session(ctx context.Context, telegramID int64) *domain.Session {
	sess, err := h.sessions.Get(ctx, telegramID)
	if err != nil {
		h.logger.Error("failed to load session, using defaults",
			zap.Error(err),
			zap.Int64("user_id", telegramID))
		return domain.NewSession(telegramID)
	}
	if sess == nil {
		sess = domain.NewSession(telegramID)
		h.saveSession(ctx, sess)
	}
	return sess
}

func (h *Handler) saveSession(ctx context.Context, sess *domain.Session) {
	if err := h.sessions.Save(ctx, sess); err != nil {
		h.logger.Error("failed to save session",
			zap.Error(err),
			zap.Int64("user_id", sess.TelegramID))
	}
}

func (h *Handler) publishScan(telegramID int64, code, source string) {
	if h.feed == nil {
		return
	}
	h.feed.Publish(domain.ScanEvent{
		ID:         uuid.New().String(),
		TelegramID: telegramID,
		Code:       code,
		Source:     source,
		ScannedAt:  timeNow(),
	})
}

func (h *Handler) reply(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
	if err != nil {
		h.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func isCode(s string) bool {
	if len(s) < minCodeLen || len(s) > maxCodeLen {
		return false
	}
	return isDigits(s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
