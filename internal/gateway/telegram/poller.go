package telegram

import (
	"context"
	"strings"
	"time"

	"github.com/sophist-bot/server/internal/bot/model"
	logx "github.com/sophist-bot/server/pkg/logger"
)

const welcomeText = "Ну, привет. Я Софист: читаю, что вы тут пишете, и говорю, что об этом думаю. " +
	"Выбирай тему или просто пиши — разберёмся."

const genericApology = "Извините, у меня что-то сломалось внутри. Попробуйте ещё раз."

// startKeyboard is the four-button topic keyboard shown on /start.
var startKeyboard = &replyKeyboardMarkup{
	Keyboard: [][]keyboardButton{
		{{Text: "Философия"}, {Text: "Политика"}},
		{{Text: "Критика общества"}, {Text: "Личные истории"}},
	},
	ResizeKeyboard: true,
}

// Handler consumes extracted target messages. It must not panic, but the
// poller still guards each dispatch so one bad update cannot stop the loop.
type Handler interface {
	HandleMessage(ctx context.Context, target model.TargetMessage)
}

// Poller drives the long-poll loop and hands each non-command message to the
// handler in its own goroutine. Ordering within a conversation is the context
// store's job, not the poller's.
type Poller struct {
	client      *Client
	handler     Handler
	botID       int64
	pollTimeout time.Duration
}

func NewPoller(client *Client, handler Handler, botID int64, pollTimeout time.Duration) *Poller {
	return &Poller{
		client:      client,
		handler:     handler,
		botID:       botID,
		pollTimeout: pollTimeout,
	}
}

// Run polls until the context is cancelled. Transport hiccups are logged and
// retried; they never terminate the loop.
func (p *Poller) Run(ctx context.Context) error {
	var offset int64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, next, err := p.client.getUpdates(ctx, offset, p.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !isPollTimeout(err) {
				logx.Error().Err(err).Msg("getUpdates failed")
				time.Sleep(3 * time.Second)
			}
			continue
		}
		offset = next

		for _, u := range updates {
			if u.Message == nil {
				continue
			}
			p.route(ctx, u.Message)
		}
	}
}

func (p *Poller) route(ctx context.Context, msg *message) {
	if msg.Chat == nil {
		return
	}

	// Only non-command messages flow through the orchestrator.
	if cmd := command(msg.Text); cmd != "" {
		if cmd == "start" {
			if err := p.client.sendKeyboard(ctx, msg.Chat.ID, welcomeText, startKeyboard); err != nil {
				logx.Error().Err(err).Int64("chat", msg.Chat.ID).Msg("failed to send welcome")
			}
		}
		return
	}

	target := extractTarget(msg, p.botID)
	go p.dispatch(ctx, target)
}

// dispatch is the global error boundary: a panicking handler is logged and
// answered with a generic apology, and the loop keeps running.
func (p *Poller) dispatch(ctx context.Context, target model.TargetMessage) {
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Any("panic", r).Int64("chat", target.ChatID).Msg("handler panicked")
			if target.ChatID != 0 {
				if _, err := p.client.SendMessage(ctx, target.ChatID, genericApology); err != nil {
					logx.Error().Err(err).Int64("chat", target.ChatID).Msg("failed to send apology")
				}
			}
		}
	}()

	p.handler.HandleMessage(ctx, target)
}

// command extracts a leading bot command name, tolerating the @botname
// suffix clients add in groups.
func command(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	name := strings.Fields(text[1:])
	if len(name) == 0 {
		return ""
	}
	cmd, _, _ := strings.Cut(name[0], "@")
	return cmd
}
