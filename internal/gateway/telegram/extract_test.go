package telegram

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sophist-bot/server/internal/bot/model"
)

const botID = int64(555)

func parseMessage(t *testing.T, raw string) *message {
	t.Helper()
	var msg message
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))
	return &msg
}

func TestExtractTargetPrivateText(t *testing.T) {
	msg := parseMessage(t, `{
		"message_id": 7,
		"chat": {"id": 42, "type": "private"},
		"from": {"id": 1, "username": "ivan", "first_name": "Иван"},
		"text": "Привет"
	}`)

	got := extractTarget(msg, botID)
	assert.Equal(t, model.TargetMessage{
		ChatID:          42,
		MessageID:       7,
		AuthorHandle:    "ivan",
		AuthorFirstName: "Иван",
		Text:            "Привет",
		MediaKind:       model.MediaNone,
		ChatKind:        model.ChatPrivate,
	}, got)
}

func TestExtractTargetPhotoPicksLargestSize(t *testing.T) {
	msg := parseMessage(t, `{
		"message_id": 8,
		"chat": {"id": 42, "type": "group"},
		"caption": "глянь",
		"photo": [
			{"file_id": "small", "width": 90},
			{"file_id": "big", "width": 1280}
		]
	}`)

	got := extractTarget(msg, botID)
	assert.Equal(t, model.MediaImage, got.MediaKind)
	assert.Equal(t, "big", got.MediaFileID)
	assert.Equal(t, "глянь", got.Text)
}

func TestExtractTargetSizeVariantsCountAsOnePhoto(t *testing.T) {
	msg := parseMessage(t, `{
		"message_id": 8,
		"chat": {"id": 42, "type": "group"},
		"caption": "глянь",
		"photo": [
			{"file_id": "s", "width": 90},
			{"file_id": "m", "width": 320},
			{"file_id": "l", "width": 1280}
		]
	}`)

	got := extractTarget(msg, botID)
	assert.Equal(t, 1, got.PhotoCount)
}

func TestExtractTargetMediaPrecedence(t *testing.T) {
	msg := parseMessage(t, `{
		"message_id": 9,
		"chat": {"id": 42, "type": "group"},
		"photo": [{"file_id": "p"}],
		"voice": {"file_id": "v"},
		"video_note": {"file_id": "n"}
	}`)

	got := extractTarget(msg, botID)
	assert.Equal(t, model.MediaImage, got.MediaKind)
	assert.Equal(t, "p", got.MediaFileID)
}

func TestExtractTargetVoiceAndVideoNote(t *testing.T) {
	voiceMsg := parseMessage(t, `{"message_id": 1, "chat": {"id": 1, "type": "group"}, "voice": {"file_id": "v"}}`)
	assert.Equal(t, model.MediaAudio, extractTarget(voiceMsg, botID).MediaKind)

	noteMsg := parseMessage(t, `{"message_id": 2, "chat": {"id": 1, "type": "group"}, "video_note": {"file_id": "n"}}`)
	assert.Equal(t, model.MediaVideo, extractTarget(noteMsg, botID).MediaKind)
}

func TestExtractTargetForwardedChannelPost(t *testing.T) {
	msg := parseMessage(t, `{
		"message_id": 10,
		"chat": {"id": 42, "type": "supergroup"},
		"forward_origin": {"type": "channel", "chat": {"id": -100, "type": "channel", "title": "Мысли вслух"}},
		"text": "пост"
	}`)

	got := extractTarget(msg, botID)
	assert.True(t, got.FromChannel)
	assert.Equal(t, "Мысли вслух", got.ChannelTitle)
}

func TestExtractTargetSenderChatChannel(t *testing.T) {
	msg := parseMessage(t, `{
		"message_id": 11,
		"chat": {"id": 42, "type": "supergroup"},
		"sender_chat": {"id": -100, "type": "channel", "title": "Канал-призрак"},
		"text": "пост"
	}`)

	got := extractTarget(msg, botID)
	assert.True(t, got.FromChannel)
	assert.Equal(t, "Канал-призрак", got.ChannelTitle)
}

func TestExtractTargetForwardedFromUserIsNotChannel(t *testing.T) {
	msg := parseMessage(t, `{
		"message_id": 12,
		"chat": {"id": 42, "type": "group"},
		"forward_origin": {"type": "user"},
		"text": "переслал"
	}`)

	assert.False(t, extractTarget(msg, botID).FromChannel)
}

func TestExtractTargetReplyToBot(t *testing.T) {
	msg := parseMessage(t, `{
		"message_id": 13,
		"chat": {"id": 42, "type": "group"},
		"reply_to_message": {"message_id": 5, "from": {"id": 555, "is_bot": true}},
		"text": "?"
	}`)
	assert.True(t, extractTarget(msg, botID).IsReplyToBot)

	other := parseMessage(t, `{
		"message_id": 14,
		"chat": {"id": 42, "type": "group"},
		"reply_to_message": {"message_id": 5, "from": {"id": 777}},
		"text": "?"
	}`)
	assert.False(t, extractTarget(other, botID).IsReplyToBot)
}

func TestCommandParsing(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/start", "start"},
		{"/start@sophist_bot", "start"},
		{"/start с аргументом", "start"},
		{"  /start  ", "start"},
		{"привет", ""},
		{"", ""},
		{"/", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, command(tc.in), "command(%q)", tc.in)
	}
}

func TestStartKeyboardLabels(t *testing.T) {
	var labels []string
	for _, row := range startKeyboard.Keyboard {
		for _, btn := range row {
			labels = append(labels, btn.Text)
		}
	}
	assert.Equal(t, []string{"Философия", "Политика", "Критика общества", "Личные истории"}, labels)
}
