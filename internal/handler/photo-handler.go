package handler

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"gojobot/internal/barcode"
	"gojobot/internal/domain"
	"gojobot/internal/links"
)

// handlePhoto runs the scanning pipeline for a photo message: download the
// largest available size, decode, preprocess, recognize, reply. Every
// failure is recovered into exactly one user-facing message.
func (h *Handler) handlePhoto(ctx context.Context, b *bot.Bot, msg *models.Message, sess *domain.Session) {
	if len(msg.Photo) == 0 {
		h.reply(ctx, b, msg.Chat.ID, noPhotoText(sess.Language))
		return
	}

	// Telegram lists photo sizes ascending; the last one is the largest
	photo := msg.Photo[len(msg.Photo)-1]

	data, err := h.downloadPhoto(ctx, b, photo.FileID)
	if err != nil {
		h.logger.Error("failed to download photo",
			zap.Error(err),
			zap.Int64("user_id", sess.TelegramID),
			zap.String("file_id", photo.FileID))
		h.reply(ctx, b, msg.Chat.ID, downloadFailedText(sess.Language))
		return
	}

	h.reply(ctx, b, msg.Chat.ID, h.scanPhotoBytes(sess, data))
}

func (h *Handler) downloadPhoto(ctx context.Context, b *bot.Bot, fileID string) ([]byte, error) {
	fileInfo, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("error getting file info: %w", err)
	}

	fileURL := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", b.Token(), fileInfo.FilePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// scanPhotoBytes is the transport-free part of the pipeline: image bytes
// in, reply text out.
func (h *Handler) scanPhotoBytes(sess *domain.Session, data []byte) string {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		h.logger.Error("failed to decode photo bytes",
			zap.Error(err),
			zap.Int64("user_id", sess.TelegramID))
		return openFailedText(sess.Language, err)
	}

	processed, err := barcode.Preprocess(img)
	if err != nil {
		h.logger.Error("failed to preprocess photo",
			zap.Error(err),
			zap.Int64("user_id", sess.TelegramID))
		return openFailedText(sess.Language, err)
	}

	codes := dedupe(h.recognizer.Recognize(processed))
	if len(codes) == 0 {
		return noCodesText(sess.Language)
	}

	total := h.counter.Add(int64(len(codes)))
	h.logger.Info("codes decoded from photo",
		zap.Int64("user_id", sess.TelegramID),
		zap.Int("codes", len(codes)),
		zap.Int64("total_scans", total))

	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		h.publishScan(sess.TelegramID, code, domain.ScanSourcePhoto)
		parts = append(parts, links.Build(code, sess.PreferredStore, sess.Language))
	}
	return strings.Join(parts, links.BlockSeparator)
}

// dedupe drops repeated values, keeping first-seen order.
func dedupe(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}
