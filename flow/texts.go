package flow

import "freelancebot/history"

// Reply keyboard shortcut labels. The transport layer renders the same
// strings as persistent buttons, so inbound text is matched against them.
const (
	ShortcutMainMenu = "🏠 Главное меню"
	ShortcutHistory  = "📊 История запросов"
	ShortcutQuestion = "💬 Задать вопрос"
)

const textWelcome = `🤖 Привет! Я AI-помощник для фрилансеров!

Я могу помочь тебе:
• 📝 Написать отклик на вакансию
• ✍️ Сгенерировать короткий текст
• 📄 Улучшить твое резюме
• 💬 Ответить на любой вопрос
• 📊 Просматривать историю запросов

Выбери нужную опцию ниже 👇`

const textStartHint = "Используй кнопки ниже для быстрого доступа:"

const textMainMenu = `🏠 Главное меню

Выбери нужную опцию:
• 📝 Отклик на вакансию
• ✍️ Короткий текст
• 📄 Улучшить резюме
• 💬 Задать вопрос
• 📊 История запросов`

const textHelp = `❓ Помощь по боту:

Я помогаю фрилансерам с текстами:
• 📝 Отклик на вакансию - напишу убедительный отклик
• ✍️ Короткий текст - помогу с любым небольшим текстом
• 📄 Улучшить резюме - оптимизирую твое резюме
• 💬 Задать вопрос - отвечу на любой твой вопрос
• 📊 История запросов - покажу последние 10 запросов

Просто выбери нужный пункт в меню и следуй инструкциям!

🔄 Сгенерировать заново - создает новый вариант текста
💾 Сохранить - сохраняет текущий текст
🔄 Перефразировать - отвечает на вопрос по-другому
🏠 Главное меню - возвращает в главное меню
🗑️ Очистить историю - удаляет всю историю запросов`

const (
	textAskVacancy   = "📝 Расскажи о вакансии: чем занимается компания, какие требования, что нужно делать?"
	textAskSkills    = "💼 Теперь расскажи о своих навыках и опыте:"
	textAskShortText = "✍️ Опиши, какой текст тебе нужен (пост для соцсетей, email, объявление и т.д.):"
	textAskResume    = "📄 Пришли текст своего резюме (или его части), и я помогу его улучшить:"
	textAskQuestion  = "💬 Задай любой вопрос, и я постараюсь на него ответить:"
)

const (
	textThinkingVacancy  = "🤔 Генерирую отклик..."
	textThinkingShort    = "🤔 Генерирую текст..."
	textThinkingResume   = "🤔 Улучшаю резюме..."
	textThinkingQuestion = "🤔 Думаю над ответом..."
)

const (
	titleVacancy          = "📨 Вот твой отклик:"
	titleShortText        = "📝 Вот твой текст:"
	titleResume           = "📄 Вот улучшенная версия:"
	titleQuestion         = "💡 Ответ на твой вопрос:"
	titleQuestionReworded = "💡 Ответ на твой вопрос (перефразировано):"

	titleRegenerated          = "🔄 Вот обновленная версия:"
	titleRegeneratedVacancy   = "📨 Вот твой обновленный отклик:"
	titleRegeneratedShortText = "📝 Вот твой обновленный текст:"
)

const (
	textIdleFallback     = "Используй меню или кнопки ниже для начала работы!"
	textHistoryEmpty     = "📭 История запросов пуста."
	textHistoryHeader    = "📊 Последние 10 запросов:\n\n"
	textHistoryCleared   = "🗑️ История запросов очищена."
	toastHistoryCleared  = "🗑️ История очищена!"
	toastRegenerating    = "🔄 Генерирую заново..."
	toastRephrasing      = "🔄 Перефразирую ответ..."
	toastNothingToRedo   = "❌ Нечего перегенерировать"
	toastNothingToReword = "❌ Нечего перефразировать"
	toastNothingToSave   = "❌ Нет текста для сохранения"
	toastSaved           = "💾 Текст сохранен!"
	textSavedCopy        = "💾 Сохраненная копия:"
	toastUnsupported     = "❌ Неизвестное действие"
)

var kindLabels = map[history.Kind]string{
	history.KindVacancyResponse:   "📝 Отклик на вакансию",
	history.KindShortText:         "✍️ Короткий текст",
	history.KindResumeImprovement: "📄 Улучшение резюме",
	history.KindFreeQuestion:      "💬 Вопрос",
}

// regenerate result titles keyed by the flow that produced the last
// response. Free questions and unrecognized kinds fall back to the
// neutral title.
var regenerateTitles = map[history.Kind]string{
	history.KindVacancyResponse:   titleRegeneratedVacancy,
	history.KindShortText:         titleRegeneratedShortText,
	history.KindResumeImprovement: titleResume,
}
