package telegram

// Wire types for the subset of the Bot API this bot speaks.

type update struct {
	UpdateID int64    `json:"update_id"`
	Message  *message `json:"message,omitempty"`
}

type message struct {
	MessageID int64    `json:"message_id"`
	Date      int64    `json:"date,omitempty"`
	Chat      *chat    `json:"chat,omitempty"`
	From      *user    `json:"from,omitempty"`
	// SenderChat is set when a channel speaks in a linked discussion group.
	SenderChat *chat    `json:"sender_chat,omitempty"`
	ReplyTo    *message `json:"reply_to_message,omitempty"`
	Text       string   `json:"text,omitempty"`
	Caption    string   `json:"caption,omitempty"`

	ForwardOrigin *messageOrigin `json:"forward_origin,omitempty"`

	// Attachments (subset).
	Photo     []photoSize `json:"photo,omitempty"`
	Voice     *voice      `json:"voice,omitempty"`
	VideoNote *videoNote  `json:"video_note,omitempty"`
}

type chat struct {
	ID    int64  `json:"id"`
	Type  string `json:"type,omitempty"` // private|group|supergroup|channel
	Title string `json:"title,omitempty"`
}

type user struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

type messageOrigin struct {
	Type string `json:"type"` // user|hidden_user|chat|channel
	Chat *chat  `json:"chat,omitempty"`
}

type photoSize struct {
	FileID   string `json:"file_id"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

type voice struct {
	FileID   string `json:"file_id"`
	Duration int    `json:"duration,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
}

type videoNote struct {
	FileID   string `json:"file_id"`
	Duration int    `json:"duration,omitempty"`
}

type file struct {
	FileID   string `json:"file_id"`
	FileSize int64  `json:"file_size,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}

// Keyboard shown on /start.

type replyKeyboardMarkup struct {
	Keyboard       [][]keyboardButton `json:"keyboard"`
	ResizeKeyboard bool               `json:"resize_keyboard,omitempty"`
}

type keyboardButton struct {
	Text string `json:"text"`
}

// Request and response envelopes.

type sendMessageRequest struct {
	ChatID           int64                `json:"chat_id"`
	Text             string               `json:"text"`
	ReplyToMessageID int64                `json:"reply_to_message_id,omitempty"`
	ReplyMarkup      *replyKeyboardMarkup `json:"reply_markup,omitempty"`
}

type sendMessageResponse struct {
	OK     bool    `json:"ok"`
	Result message `json:"result"`
}

type getUpdatesResponse struct {
	OK     bool     `json:"ok"`
	Result []update `json:"result"`
}

type getMeResponse struct {
	OK     bool `json:"ok"`
	Result user `json:"result"`
}

type getFileResponse struct {
	OK     bool `json:"ok"`
	Result file `json:"result"`
}
