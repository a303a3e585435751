package telegram

import (
	"context"

	"go.uber.org/zap"
)

// HandlerFunc is a chat-scoped command handler.
type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs a handler failure and tells the user something
// went wrong instead of propagating the error up the update loop.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			return nil
		}
		return nil
	}
}
