// Package orchestrator wires the trigger policy, context store, prompt
// builder, language service and gateway together for each inbound message.
// It is the only component that sees more than one collaborator at a time.
package orchestrator

import (
	"context"
	"strings"

	"github.com/sophist-bot/server/internal/bot/model"
	"github.com/sophist-bot/server/internal/bot/redact"
	logx "github.com/sophist-bot/server/pkg/logger"
)

const (
	// mediaApology is the interstitial sent when an attachment cannot be
	// downloaded and the bot answers from text alone.
	mediaApology = "Вложение скачать не вышло, так что отвечаю вслепую."
	// fallbackReply replaces a reply that redaction trimmed to nothing.
	fallbackReply = "…"
)

// Sender posts replies through the gateway and reports the sent message id.
type Sender interface {
	SendReply(ctx context.Context, chatID, replyToMessageID int64, text string) (int64, error)
}

// Generator produces the reply text; it never fails (errors come back as
// canned reply strings).
type Generator interface {
	Generate(ctx context.Context, prompt string, media *model.MediaPart) string
}

// MediaFetcher resolves gateway media handles to in-memory parts.
type MediaFetcher interface {
	FetchMedia(ctx context.Context, fileID string, kind model.MediaKind) (model.MediaPart, error)
}

// Policy decides whether a message gets a reply.
type Policy interface {
	Decide(m model.TargetMessage) model.TriggerDecision
}

// PromptBuilder renders the persona prompt and resolves author labels.
type PromptBuilder interface {
	Build(history []model.HistoryEntry, target model.TargetMessage, kind model.TriggerKind) string
	TargetLabel(t model.TargetMessage) string
}

type Orchestrator struct {
	policy    Policy
	store     model.ContextStore
	fetcher   MediaFetcher
	prompts   PromptBuilder
	generator Generator
	sender    Sender
}

func New(policy Policy, store model.ContextStore, fetcher MediaFetcher, prompts PromptBuilder, generator Generator, sender Sender) *Orchestrator {
	return &Orchestrator{
		policy:    policy,
		store:     store,
		fetcher:   fetcher,
		prompts:   prompts,
		generator: generator,
		sender:    sender,
	}
}

// HandleMessage runs the full reply pipeline for one target message. Every
// failure past the trigger decision degrades instead of aborting: missing
// media falls back to a text-only prompt, a dead store to an empty history,
// and generation failures arrive as canned replies already.
func (o *Orchestrator) HandleMessage(ctx context.Context, target model.TargetMessage) {
	dec := o.policy.Decide(target)
	if !dec.Respond {
		logx.Debug().Int64("chat", target.ChatID).Str("kind", string(dec.Kind)).Msg("skipping message")
		return
	}
	logx.Info().Int64("chat", target.ChatID).Str("kind", string(dec.Kind)).Msg("replying")

	media := o.fetchMedia(ctx, target, dec.Kind)

	history, err := o.store.Read(ctx, target.ChatID)
	if err != nil {
		logx.Error().Err(err).Int64("chat", target.ChatID).Msg("history read failed, proceeding without context")
		history = nil
	}

	reply := o.generator.Generate(ctx, o.prompts.Build(history, target, dec.Kind), media)
	reply = redact.Redact(reply)
	if strings.TrimSpace(reply) == "" {
		reply = fallbackReply
	}

	sentID, err := o.sender.SendReply(ctx, target.ChatID, target.MessageID, reply)
	if err != nil {
		// History stays untouched when delivery is unconfirmed.
		logx.Error().Err(err).Int64("chat", target.ChatID).Msg("failed to send reply")
		return
	}

	o.append(ctx, target.ChatID, model.HistoryEntry{
		AuthorLabel: o.prompts.TargetLabel(target),
		Text:        target.Text,
		MessageID:   target.MessageID,
	})
	o.append(ctx, target.ChatID, model.HistoryEntry{
		AuthorLabel: model.BotAuthorLabel,
		Text:        reply,
		FromBot:     true,
		MessageID:   sentID,
	})
}

// fetchMedia downloads the target's attachment if there is one. On failure
// the reply proceeds text-only; outside the random-group path the user also
// gets a short interstitial explaining the blind spot.
func (o *Orchestrator) fetchMedia(ctx context.Context, target model.TargetMessage, kind model.TriggerKind) *model.MediaPart {
	if !target.HasMedia() {
		return nil
	}

	part, err := o.fetcher.FetchMedia(ctx, target.MediaFileID, target.MediaKind)
	if err != nil {
		logx.Warn().Err(err).Int64("chat", target.ChatID).Str("media", string(target.MediaKind)).Msg("media download failed, replying text-only")
		if kind != model.TriggerRandomGroup {
			if _, sendErr := o.sender.SendReply(ctx, target.ChatID, target.MessageID, mediaApology); sendErr != nil {
				logx.Error().Err(sendErr).Int64("chat", target.ChatID).Msg("failed to send media apology")
			}
		}
		return nil
	}
	return &part
}

func (o *Orchestrator) append(ctx context.Context, chatID int64, entry model.HistoryEntry) {
	if err := o.store.Append(ctx, chatID, entry); err != nil {
		logx.Error().Err(err).Int64("chat", chatID).Msg("history append failed")
	}
}
