package telegram

import (
	"github.com/sophist-bot/server/internal/bot/model"
)

// extractTarget flattens a gateway message into the orchestrator's view of
// it. botID drives reply-to-bot detection.
func extractTarget(msg *message, botID int64) model.TargetMessage {
	t := model.TargetMessage{
		MessageID: msg.MessageID,
		MediaKind: model.MediaNone,
	}
	if msg.Chat != nil {
		t.ChatID = msg.Chat.ID
		t.ChatKind = model.ChatKind(msg.Chat.Type)
	}
	if msg.From != nil {
		t.AuthorHandle = msg.From.Username
		t.AuthorFirstName = msg.From.FirstName
	}

	t.Text = msg.Text
	if t.Text == "" {
		t.Text = msg.Caption
	}

	// Attachment precedence: photo over voice over video note.
	switch {
	case len(msg.Photo) > 0:
		t.MediaKind = model.MediaImage
		// The array holds size variants of one photo, not separate photos;
		// albums arrive as separate messages. Sizes come smallest first, so
		// the last entry is the one worth analysing.
		t.PhotoCount = 1
		t.MediaFileID = msg.Photo[len(msg.Photo)-1].FileID
	case msg.Voice != nil:
		t.MediaKind = model.MediaAudio
		t.MediaFileID = msg.Voice.FileID
	case msg.VideoNote != nil:
		t.MediaKind = model.MediaVideo
		t.MediaFileID = msg.VideoNote.FileID
	}

	if msg.ForwardOrigin != nil && msg.ForwardOrigin.Type == "channel" {
		t.FromChannel = true
		if msg.ForwardOrigin.Chat != nil {
			t.ChannelTitle = msg.ForwardOrigin.Chat.Title
		}
	}
	if msg.SenderChat != nil && msg.SenderChat.Type == string(model.ChatChannel) {
		t.FromChannel = true
		if t.ChannelTitle == "" {
			t.ChannelTitle = msg.SenderChat.Title
		}
	}

	if msg.ReplyTo != nil && msg.ReplyTo.From != nil && msg.ReplyTo.From.ID == botID {
		t.IsReplyToBot = true
	}

	return t
}
