package bot

import (
	"context"
	"time"

	"freelancebot/core/database"
	coretelegram "freelancebot/core/telegram"
	"freelancebot/core/telegram/callbacks"
	tghelpers "freelancebot/core/telegram/helpers"
	"freelancebot/core/telegram/middleware"
	"freelancebot/flow"
	"freelancebot/gigachat"
	"freelancebot/history"
	"freelancebot/session"

	tele "gopkg.in/telebot.v4"
)

// Run connects the storage and generation backends, wires the
// conversation flow, and drives the Telegram transport until ctx is done.
func Run(ctx context.Context, cfg *Config) error {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.Database); err != nil {
		return err
	}

	router := flow.NewRouter(
		session.NewMemoryStore(),
		history.NewPostgres(db),
		gigachat.NewClient(cfg.GigaChat),
		telebotEmitter{},
	)
	queue := flow.NewSerializer(router.Handle)

	return coretelegram.Run(ctx, coretelegram.RunOptions{
		Config:      &cfg.Config,
		Middlewares: buildMiddlewares(cfg),
		Routes:      buildRoutes(queue),
		Commands:    menuCommands(),
		OnStop: func(context.Context) error {
			queue.Close()
			return nil
		},
	})
}

func buildMiddlewares(cfg *Config) []coretelegram.Middleware {
	mws := []coretelegram.Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
		{Name: "logger", Use: middleware.LoggerMiddleware},
	}
	if cfg.RateLimit.IntervalMS > 0 {
		exclude := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
		for _, kind := range cfg.RateLimit.ExcludeUpdates {
			exclude[kind] = struct{}{}
		}
		mws = append(mws, coretelegram.Middleware{
			Name: "rate_limit",
			Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
				Interval: time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond,
				Exclude:  exclude,
			}),
		})
	}
	return mws
}

func menuCommands() []tele.Command {
	return []tele.Command{
		{Text: flow.CommandStart, Description: "Запустить бота"},
		{Text: flow.CommandHistory, Description: "Показать историю запросов"},
		{Text: flow.CommandHelp, Description: "Помощь"},
	}
}

// silentTaps lists selectors whose handlers never answer the callback
// themselves, so the transport acknowledges it to stop the spinner.
var silentTaps = map[string]struct{}{
	flow.SelectVacancy:   {},
	flow.SelectShortText: {},
	flow.SelectResume:    {},
	flow.SelectQuestion:  {},
	flow.SelectHistory:   {},
	flow.SelectHelp:      {},
	flow.SelectMainMenu:  {},
}

func buildRoutes(queue *flow.Serializer) []coretelegram.Route {
	commandRoute := func(cmd string) coretelegram.Route {
		return coretelegram.Route{
			Endpoint: cmd,
			Handler: func(c tele.Context) error {
				return enqueue(queue, c, cmd, flow.EventCommand, cmd)
			},
		}
	}

	return []coretelegram.Route{
		commandRoute(flow.CommandStart),
		commandRoute(flow.CommandHistory),
		commandRoute(flow.CommandHelp),
		{
			Endpoint: tele.OnText,
			Handler: func(c tele.Context) error {
				return enqueue(queue, c, "on_text", flow.EventText, c.Text())
			},
		},
		{
			Endpoint: tele.OnCallback,
			Handler: func(c tele.Context) error {
				key := callbacks.CallbackKey(c)
				if _, silent := silentTaps[key]; silent {
					_ = c.Respond(&tele.CallbackResponse{})
				}
				return enqueue(queue, c, key, flow.EventButtonTap, key)
			},
		},
	}
}

func enqueue(queue *flow.Serializer, c tele.Context, handler string, kind flow.EventKind, payload string) error {
	user := c.Sender()
	if user == nil {
		return nil
	}
	ctx := tghelpers.WithHandler(c, handler)
	ctx = withTeleContext(ctx, c)
	return queue.Enqueue(ctx, flow.Event{
		UserID:  user.ID,
		Kind:    kind,
		Payload: payload,
	})
}
