package bot

import (
	"context"
	"fmt"

	"freelancebot/core/logger"
	"freelancebot/flow"

	tele "gopkg.in/telebot.v4"
	"log/slog"
)

type teleCtxKey struct{}

// withTeleContext stores the update's tele.Context so the emitter can
// reply, edit, and toast against the originating interaction.
func withTeleContext(ctx context.Context, c tele.Context) context.Context {
	return context.WithValue(ctx, teleCtxKey{}, c)
}

func teleContextFrom(ctx context.Context) tele.Context {
	if c, ok := ctx.Value(teleCtxKey{}).(tele.Context); ok {
		return c
	}
	return nil
}

// telebotEmitter adapts tele.Context operations to the flow.Emitter port.
type telebotEmitter struct{}

func (telebotEmitter) Send(ctx context.Context, userID int64, text string, kb flow.Keyboard) error {
	c := teleContextFrom(ctx)
	if c == nil {
		return fmt.Errorf("bot: no telegram context for user %d", userID)
	}
	if markup := markupFor(kb); markup != nil {
		return c.Send(text, markup)
	}
	return c.Send(text)
}

func (telebotEmitter) Edit(ctx context.Context, userID int64, text string, kb flow.Keyboard) error {
	c := teleContextFrom(ctx)
	if c == nil {
		return fmt.Errorf("bot: no telegram context for user %d", userID)
	}
	if markup := markupFor(kb); markup != nil {
		return c.EditOrSend(text, markup)
	}
	return c.EditOrSend(text)
}

func (telebotEmitter) Notify(ctx context.Context, userID int64, text string) error {
	c := teleContextFrom(ctx)
	if c == nil {
		return fmt.Errorf("bot: no telegram context for user %d", userID)
	}
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text})
	}
	// Toasts degrade to a plain message outside callback interactions.
	logger.Debug(ctx, "tg", "notify.fallback",
		slog.Int64("user_id", userID),
	)
	return c.Send(text)
}
