package llm

import "fmt"

// errorKind is the adapter's taxonomy of generation failures. Every kind maps
// to a fixed Russian reply; the adapter never surfaces an error upward.
type errorKind int

const (
	kindInvalidKey errorKind = iota
	kindQuota
	kindSafety
	kindModelNotFound
	kindServer
	kindTimeout
	kindUnknown
)

// EmptyReply is returned when the service produced a response with no text.
const EmptyReply = "(ИИ выдал пустоту. Странно.)"

var cannedReplies = map[errorKind]string{
	kindInvalidKey:    "Мой ключ к мозгам не подошёл. Создатель опять что-то напутал с настройками.",
	kindQuota:         "На сегодня лимит умных мыслей исчерпан. Зайдите позже, когда мне снова разрешат думать.",
	kindSafety:        "Мне запретили отвечать на такое. Цензура, куда же без неё.",
	kindModelNotFound: "Модель, которой я думаю, куда-то пропала. Бывает и такое.",
	kindServer:        "Сервер с мозгами прилёг отдохнуть. Попробуйте спросить позже.",
	kindTimeout:       "Я так глубоко задумался, что время вышло. Спросите ещё раз.",
	kindUnknown:       "Что-то пошло не так, и я даже не знаю что. Неловко вышло.",
}

func cannedReply(kind errorKind) string {
	if reply, ok := cannedReplies[kind]; ok {
		return reply
	}
	return cannedReplies[kindUnknown]
}

func blockedReply(reason string) string {
	return fmt.Sprintf("Мой ответ не прошёл цензуру (причина: %s). Сделаем вид, что так и надо.", reason)
}
