package model

// MediaKind identifies the single attachment carried by a target message.
type MediaKind string

const (
	MediaNone  MediaKind = "none"
	MediaImage MediaKind = "image"
	MediaAudio MediaKind = "audio"
	MediaVideo MediaKind = "video"
)

// MIME returns the fixed wire MIME type for the media kind, or "" for
// kinds that carry no payload.
func (k MediaKind) MIME() string {
	switch k {
	case MediaImage:
		return "image/jpeg"
	case MediaAudio:
		return "audio/ogg"
	case MediaVideo:
		return "video/mp4"
	default:
		return ""
	}
}

// ChatKind mirrors the gateway chat types.
type ChatKind string

const (
	ChatPrivate    ChatKind = "private"
	ChatGroup      ChatKind = "group"
	ChatSupergroup ChatKind = "supergroup"
	ChatChannel    ChatKind = "channel"
)

// BotAuthorLabel is the label stored for the bot's own history turns.
const BotAuthorLabel = "Бот"

// CreatorLabel is the label used for the distinguished creator user.
const CreatorLabel = "Создатель"

// HistoryEntry is one stored conversational turn. Immutable once stored.
// The JSON field names are the wire contract shared by both store variants,
// so a dump from one can be restored into the other.
type HistoryEntry struct {
	AuthorLabel string `json:"user"`
	Text        string `json:"text"`
	FromBot     bool   `json:"from_bot"`
	MessageID   int64  `json:"message_id"`
}

// TargetMessage is the per-request view of the inbound message the
// orchestrator may answer. It is extracted once from the gateway update and
// never stored.
type TargetMessage struct {
	ChatID          int64
	MessageID       int64
	AuthorHandle    string
	AuthorFirstName string
	Text            string
	MediaKind       MediaKind
	MediaFileID     string
	PhotoCount      int
	FromChannel     bool
	ChannelTitle    string
	IsReplyToBot    bool
	ChatKind        ChatKind
}

// HasMedia reports whether the target carries a downloadable attachment.
func (m TargetMessage) HasMedia() bool {
	return m.MediaKind != MediaNone
}

// TriggerKind names the reason a message was (or was not) selected for a
// reply; it also selects the final-task prompt variant.
type TriggerKind string

const (
	TriggerDM             TriggerKind = "dm"
	TriggerReplyOrCreator TriggerKind = "reply-or-creator"
	TriggerChannelPost    TriggerKind = "channel-post"
	TriggerRandomGroup    TriggerKind = "random-group"
	TriggerSkip           TriggerKind = "skip"
)

// TriggerDecision is the trigger policy's verdict for one target message.
type TriggerDecision struct {
	Respond bool
	Kind    TriggerKind
}

// MediaPart is a downloaded attachment ready to travel with a prompt.
type MediaPart struct {
	Data []byte
	MIME string
}
