package notify

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"pausepad/internal/model"
)

const (
	keyFocusTitle = "PausePad - Focus session completed!"
	keyLongBody   = "Great work! Time for a long break."
	keyShortBody  = "Great work! Time for a short break."
	keyBreakTitle = "PausePad - Break time over!"
	keyBreakBody  = "Ready to focus again?"
)

var supportedLanguages = []language.Tag{
	language.English,
	language.Spanish,
	language.Italian,
	language.Turkish,
	language.SimplifiedChinese,
}

var translations = map[language.Tag]map[string]string{
	language.Spanish: {
		keyFocusTitle: "PausePad - ¡Sesión de enfoque completada!",
		keyLongBody:   "¡Buen trabajo! Es hora de un descanso largo.",
		keyShortBody:  "¡Buen trabajo! Es hora de un descanso corto.",
		keyBreakTitle: "PausePad - ¡Se acabó el descanso!",
		keyBreakBody:  "¿Listo para concentrarte de nuevo?",
	},
	language.Italian: {
		keyFocusTitle: "PausePad - Sessione di concentrazione completata!",
		keyLongBody:   "Ottimo lavoro! È il momento di una pausa lunga.",
		keyShortBody:  "Ottimo lavoro! È il momento di una pausa breve.",
		keyBreakTitle: "PausePad - La pausa è finita!",
		keyBreakBody:  "Pronto a concentrarti di nuovo?",
	},
	language.Turkish: {
		keyFocusTitle: "PausePad - Odak seansı tamamlandı!",
		keyLongBody:   "Harika iş! Uzun bir mola zamanı.",
		keyShortBody:  "Harika iş! Kısa bir mola zamanı.",
		keyBreakTitle: "PausePad - Mola bitti!",
		keyBreakBody:  "Yeniden odaklanmaya hazır mısın?",
	},
	language.SimplifiedChinese: {
		keyFocusTitle: "PausePad - 专注时段已完成！",
		keyLongBody:   "干得好！该长休息了。",
		keyShortBody:  "干得好！该短休息了。",
		keyBreakTitle: "PausePad - 休息结束！",
		keyBreakBody:  "准备好再次专注了吗？",
	},
}

var (
	messageCatalog = buildCatalog()
	matcher        = language.NewMatcher(supportedLanguages)
)

func buildCatalog() catalog.Catalog {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, key := range []string{keyFocusTitle, keyLongBody, keyShortBody, keyBreakTitle, keyBreakBody} {
		_ = builder.SetString(language.English, key, key)
	}
	for tag, entries := range translations {
		for key, text := range entries {
			_ = builder.SetString(tag, key, text)
		}
	}
	return builder
}

// Message is the text of a completion notification.
type Message struct {
	Title string
	Body  string
}

// Compose builds the notification for an interval of mode finished that is
// followed by next. lang is a BCP 47 tag or Accept-Language style list;
// unsupported languages fall back to English.
func Compose(lang string, finished, next model.TimerMode) Message {
	printer := message.NewPrinter(matchLanguage(lang), message.Catalog(messageCatalog))
	if !finished.IsFocus() {
		return Message{
			Title: printer.Sprintf(keyBreakTitle),
			Body:  printer.Sprintf(keyBreakBody),
		}
	}

	body := keyShortBody
	if next == model.ModeLongBreak {
		body = keyLongBody
	}
	return Message{
		Title: printer.Sprintf(keyFocusTitle),
		Body:  printer.Sprintf(body),
	}
}

func matchLanguage(lang string) language.Tag {
	if lang == "" {
		return language.English
	}
	_, index := language.MatchStrings(matcher, lang)
	return supportedLanguages[index]
}
