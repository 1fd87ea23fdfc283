package trigger

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/sophist-bot/server/internal/bot/model"
)

func fixedRoll(v float64) func() float64 {
	return func() float64 { return v }
}

func testPolicy(roll func() float64) *Policy {
	return &Policy{
		CreatorHandles:        []string{"Nik_Ly"},
		GroupReplyProbability: 0.05,
		Roll:                  roll,
	}
}

func TestDecidePrecedence(t *testing.T) {
	cases := []struct {
		name    string
		msg     model.TargetMessage
		roll    float64
		respond bool
		kind    model.TriggerKind
	}{
		{
			name:    "private chat always responds",
			msg:     model.TargetMessage{ChatKind: model.ChatPrivate, Text: "Привет"},
			respond: true,
			kind:    model.TriggerDM,
		},
		{
			name:    "reply to bot in group",
			msg:     model.TargetMessage{ChatKind: model.ChatGroup, IsReplyToBot: true, Text: "?"},
			roll:    0.99,
			respond: true,
			kind:    model.TriggerReplyOrCreator,
		},
		{
			name:    "creator in group",
			msg:     model.TargetMessage{ChatKind: model.ChatGroup, AuthorHandle: "Nik_Ly", Text: "ок"},
			roll:    0.99,
			respond: true,
			kind:    model.TriggerReplyOrCreator,
		},
		{
			name:    "creator handle matching is case-insensitive",
			msg:     model.TargetMessage{ChatKind: model.ChatSupergroup, AuthorHandle: "nik_ly", Text: "ок"},
			roll:    0.99,
			respond: true,
			kind:    model.TriggerReplyOrCreator,
		},
		{
			name:    "channel post with short caption and no media skipped",
			msg:     model.TargetMessage{ChatKind: model.ChatSupergroup, FromChannel: true, Text: "раз два три"},
			respond: false,
			kind:    model.TriggerSkip,
		},
		{
			name:    "channel post with photo responds",
			msg:     model.TargetMessage{ChatKind: model.ChatSupergroup, FromChannel: true, MediaKind: model.MediaImage, PhotoCount: 2},
			respond: true,
			kind:    model.TriggerChannelPost,
		},
		{
			name:    "channel post with long caption responds",
			msg:     model.TargetMessage{ChatKind: model.ChatSupergroup, FromChannel: true, Text: "раз два три четыре пять"},
			respond: true,
			kind:    model.TriggerChannelPost,
		},
		{
			name:    "short group message never rolls",
			msg:     model.TargetMessage{ChatKind: model.ChatGroup, Text: "ну да"},
			roll:    0.0,
			respond: false,
			kind:    model.TriggerSkip,
		},
		{
			name:    "group message with media enters the roll",
			msg:     model.TargetMessage{ChatKind: model.ChatGroup, MediaKind: model.MediaAudio},
			roll:    0.01,
			respond: true,
			kind:    model.TriggerRandomGroup,
		},
		{
			name:    "long group message wins the roll",
			msg:     model.TargetMessage{ChatKind: model.ChatGroup, Text: "а вот это уже интересная мысль"},
			roll:    0.049,
			respond: true,
			kind:    model.TriggerRandomGroup,
		},
		{
			name:    "long group message loses the roll",
			msg:     model.TargetMessage{ChatKind: model.ChatGroup, Text: "а вот это уже интересная мысль"},
			roll:    0.05,
			respond: false,
			kind:    model.TriggerSkip,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := testPolicy(fixedRoll(tc.roll))
			dec := p.Decide(tc.msg)
			if dec.Respond != tc.respond {
				t.Fatalf("Respond = %v, want %v", dec.Respond, tc.respond)
			}
			if dec.Kind != tc.kind {
				t.Fatalf("Kind = %q, want %q", dec.Kind, tc.kind)
			}
		})
	}
}

func TestDecideReplyToBotSkipsRoll(t *testing.T) {
	rolled := false
	p := testPolicy(func() float64 {
		rolled = true
		return 0
	})
	p.Decide(model.TargetMessage{ChatKind: model.ChatGroup, IsReplyToBot: true, Text: "?"})
	if rolled {
		t.Fatal("reply-to-bot path must not consume a random roll")
	}
}

func TestDecideRandomGroupProbability(t *testing.T) {
	src := rand.New(rand.NewPCG(7, 13))
	p := testPolicy(src.Float64)

	msg := model.TargetMessage{ChatKind: model.ChatGroup, Text: "довольно длинное сообщение в группе"}
	const n = 20000
	hits := 0
	for i := 0; i < n; i++ {
		if p.Decide(msg).Respond {
			hits++
		}
	}

	got := float64(hits) / n
	if math.Abs(got-0.05) > 0.01 {
		t.Fatalf("observed respond probability %.4f, want 0.05 ± 0.01", got)
	}
}
