package bot

import (
	"freelancebot/core/telegram/keyboard"
	"freelancebot/flow"

	tele "gopkg.in/telebot.v4"
)

func mainMenuMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "📝 Отклик на вакансию", Unique: flow.SelectVacancy},
		{Text: "✍️ Короткий текст", Unique: flow.SelectShortText},
		{Text: "📄 Улучшить резюме", Unique: flow.SelectResume},
		{Text: "💬 Задать вопрос", Unique: flow.SelectQuestion},
		{Text: "📊 История запросов", Unique: flow.SelectHistory},
		{Text: "❓ Помощь", Unique: flow.SelectHelp},
	})
}

func regenerateMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🔄 Сгенерировать заново", Unique: flow.SelectRegenerate},
		{Text: "💾 Сохранить", Unique: flow.SelectSave},
		{Text: "🏠 Главное меню", Unique: flow.SelectMainMenu},
	})
}

func questionMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🔄 Перефразировать", Unique: flow.SelectRephrase},
		{Text: "🏠 Главное меню", Unique: flow.SelectMainMenu},
	})
}

func historyMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🗑️ Очистить историю", Unique: flow.SelectClearHistory},
		{Text: "🏠 Главное меню", Unique: flow.SelectMainMenu},
	})
}

func startMarkup() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{flow.ShortcutMainMenu},
		[]string{flow.ShortcutHistory},
		[]string{flow.ShortcutQuestion},
	)
}

// markupFor resolves a flow keyboard identifier into concrete markup.
func markupFor(kb flow.Keyboard) *tele.ReplyMarkup {
	switch kb {
	case flow.KeyboardMain:
		return mainMenuMarkup()
	case flow.KeyboardRegenerate:
		return regenerateMarkup()
	case flow.KeyboardQuestion:
		return questionMarkup()
	case flow.KeyboardHistory:
		return historyMarkup()
	case flow.KeyboardStart:
		return startMarkup()
	}
	return nil
}
