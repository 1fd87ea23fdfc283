// Package prompt assembles the persona-conditioned prompt string handed to
// the language service. Assembly is deterministic: the same history, target
// and trigger kind always produce a byte-identical prompt.
package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/sophist-bot/server/internal/bot/model"
)

//go:embed template/persona_prompt.txt
var baseTemplate string

// The template is opaque data carrying exactly these two sentinels.
const (
	historyPlaceholder = "{{CONVERSATION_HISTORY_PLACEHOLDER}}"
	taskPlaceholder    = "{{FINAL_TASK_PLACEHOLDER}}"
)

const (
	historyHeader  = "История переписки (самые новые внизу):"
	emptyHistory   = "[Начало диалога]"
	emptyTarget    = "[Пустое сообщение]"
	unknownAuthor  = "Неизвестный"
	mediaSuffix    = "(медиа прикреплено для анализа)"
	creatorReminds = "ПОМНИ ОСОБЫЕ ПРАВИЛА ОБЩЕНИЯ С СОЗДАТЕЛЕМ: с ним ты не споришь, отвечаешь тепло и по делу, каким бы ни был вопрос."
)

// Final-task variants, selected by trigger kind.
const (
	taskDM      = "Финальная задача: это личная переписка. Ответь собеседнику напрямую — едко, умно и по существу, без вступлений и оговорок."
	taskChannel = "Финальная задача: это пост из канала. Разбери его: найди слабое место в рассуждении или подаче и выскажись о нём в своём характере."
	taskGroup   = "Финальная задача: это групповой чат. Вклинись в разговор ответом на последнюю реплику — коротко, хлёстко и в своём характере."
)

// Builder resolves author labels against the configured creator handles and
// fills the persona template.
type Builder struct {
	creatorHandles []string
}

func New(creatorHandles []string) *Builder {
	return &Builder{creatorHandles: creatorHandles}
}

// Build renders the full prompt. History entries that share the target's
// message id are excluded so the target never shows up twice.
func (b *Builder) Build(history []model.HistoryEntry, target model.TargetMessage, kind model.TriggerKind) string {
	label := b.TargetLabel(target)

	var block strings.Builder
	block.WriteString(historyHeader)
	block.WriteByte('\n')

	lines := 0
	for _, e := range history {
		if e.MessageID == target.MessageID {
			continue
		}
		block.WriteString(fmt.Sprintf("[%s]: %s\n", e.AuthorLabel, e.Text))
		lines++
	}
	if lines == 0 {
		block.WriteString(emptyHistory)
		block.WriteByte('\n')
	}

	block.WriteString("---\n")
	block.WriteString(fmt.Sprintf("[%s] (%s): %s", label, describe(target), targetBody(target)))

	task := finalTask(kind)
	if label == model.CreatorLabel {
		task += " " + creatorReminds
	}

	out := strings.Replace(baseTemplate, historyPlaceholder, block.String(), 1)
	out = strings.Replace(out, taskPlaceholder, task, 1)
	return out
}

// TargetLabel resolves the display label for the target's author: creator
// match first, then channel title, then handle, first name, or the unknown
// fallback. The orchestrator stores user turns under the same label so the
// history reads consistently on the next prompt.
func (b *Builder) TargetLabel(t model.TargetMessage) string {
	if model.IsCreatorHandle(t.AuthorHandle, b.creatorHandles) ||
		(t.AuthorHandle == "" && model.IsCreatorHandle(t.AuthorFirstName, b.creatorHandles)) {
		return model.CreatorLabel
	}
	if t.FromChannel && t.ChannelTitle != "" {
		return fmt.Sprintf("Канал '%s'", t.ChannelTitle)
	}
	if t.AuthorHandle != "" {
		return t.AuthorHandle
	}
	if t.AuthorFirstName != "" {
		return t.AuthorFirstName
	}
	return unknownAuthor
}

// describe names the message type for the target line.
func describe(t model.TargetMessage) string {
	switch t.MediaKind {
	case model.MediaImage:
		if t.PhotoCount > 1 {
			return "изображения"
		}
		return "изображение"
	case model.MediaAudio:
		return "голосовое"
	case model.MediaVideo:
		return "видео кружок"
	}
	if t.FromChannel {
		return "пост"
	}
	return "сообщение"
}

func mediaMarker(t model.TargetMessage) string {
	switch t.MediaKind {
	case model.MediaImage:
		if t.PhotoCount > 1 {
			return "[Изображения]"
		}
		return "[Изображение]"
	case model.MediaAudio:
		return "[Голосовое сообщение]"
	case model.MediaVideo:
		return "[Видео кружок]"
	}
	return ""
}

func targetBody(t model.TargetMessage) string {
	text := strings.TrimSpace(t.Text)
	if t.MediaKind == model.MediaNone {
		if text == "" {
			return emptyTarget
		}
		return text
	}

	marker := mediaMarker(t)
	if text == "" {
		return marker + " " + mediaSuffix
	}
	return marker + " " + text + " " + mediaSuffix
}

func finalTask(kind model.TriggerKind) string {
	switch kind {
	case model.TriggerDM:
		return taskDM
	case model.TriggerChannelPost:
		return taskChannel
	default:
		return taskGroup
	}
}
