// Package trigger decides whether an inbound message deserves a reply at
// all. The decision is made before any media download so a skipped message
// costs nothing beyond the update itself.
package trigger

import (
	"math/rand/v2"
	"strings"

	"github.com/sophist-bot/server/internal/bot/model"
)

const (
	// channelMinTokens is the minimum caption length for a media-less
	// channel post to be worth answering.
	channelMinTokens = 5
	// shortGroupTokens: text-only group messages below this length never
	// enter the random roll.
	shortGroupTokens = 3
)

// Policy is the pure trigger decision. Roll is injectable so the
// random-group branch is testable; the zero value falls back to the shared
// PRNG, which is safe for concurrent use.
type Policy struct {
	CreatorHandles        []string
	GroupReplyProbability float64
	Roll                  func() float64
}

func New(cfg model.TriggerConfig) *Policy {
	return &Policy{
		CreatorHandles:        cfg.CreatorHandles,
		GroupReplyProbability: cfg.GroupReplyProbability,
	}
}

func (p *Policy) roll() float64 {
	if p.Roll != nil {
		return p.Roll()
	}
	return rand.Float64()
}

// Decide evaluates the precedence ladder top-down:
// private chat, reply-to-bot or creator, channel post, random group sample.
func (p *Policy) Decide(m model.TargetMessage) model.TriggerDecision {
	if m.ChatKind == model.ChatPrivate {
		return model.TriggerDecision{Respond: true, Kind: model.TriggerDM}
	}

	if m.IsReplyToBot || model.IsCreatorHandle(m.AuthorHandle, p.CreatorHandles) {
		return model.TriggerDecision{Respond: true, Kind: model.TriggerReplyOrCreator}
	}

	tokens := len(strings.Fields(m.Text))

	if m.FromChannel {
		if m.HasMedia() || tokens >= channelMinTokens {
			return model.TriggerDecision{Respond: true, Kind: model.TriggerChannelPost}
		}
		return model.TriggerDecision{Kind: model.TriggerSkip}
	}

	short := !m.HasMedia() && tokens < shortGroupTokens
	if !short && p.roll() < p.GroupReplyProbability {
		return model.TriggerDecision{Respond: true, Kind: model.TriggerRandomGroup}
	}

	return model.TriggerDecision{Kind: model.TriggerSkip}
}
