// curator/bot/messages.go
package bot

const msgWelcome = `🤖 Привет, %s!

Добро пожаловать в AI Content Curator Bot!

🔥 Что я умею:
• Анализ тональности текста
• Создание кратких выжимок
• Извлечение ключевых слов
• Сохранение истории анализов

📝 Просто отправь мне любой текст, и я проанализирую его с помощью ИИ!

Используй /help для получения списка команд.`

const msgHelp = `🤖 AI Content Curator Bot - Команды:

/start - Запуск бота и главное меню
/help - Показать это сообщение
/connect <username> - Привязать аккаунт
/disconnect - Отвязать аккаунт
/analyze <тип> <текст> - Быстрый анализ
/history - Показать последние анализы

📝 Типы анализа:
• sentiment - анализ тональности
• summary - краткая выжимка
• keywords - ключевые слова

💡 Примеры использования:
/analyze sentiment Отличный продукт!
/analyze summary Длинный текст для сокращения...

Или просто отправь текст, и я предложу варианты анализа!`

const (
	msgUnknownCommand   = "❌ Неизвестная команда. Используйте /help для списка команд."
	msgConnectUsage     = "❌ Укажите имя пользователя: /connect <username>"
	msgUserNotFound     = "❌ Пользователь '%s' не найден. Сначала зарегистрируйтесь."
	msgConnectConflict  = "❌ Этот Telegram уже привязан к другому аккаунту."
	msgConnected        = "✅ Аккаунт '%s' успешно привязан к Telegram!\nТеперь ваши анализы будут сохраняться в личном кабинете."
	msgDisconnected     = "✅ Аккаунт отвязан от Telegram"
	msgNotConnected     = "❌ Аккаунт не был привязан"
	msgConnectRequired  = "❌ Аккаунт не привязан. Используйте /connect <username>"
	msgAnalyzeUsage     = "❌ Использование: /analyze <тип> <текст>\nТипы: sentiment, summary, keywords"
	msgInvalidKind      = "❌ Неверный тип анализа. Доступные: sentiment, summary, keywords"
	msgAnalyzing        = "🤖 Анализирую текст..."
	msgAnalysisFailed   = "❌ Произошла ошибка при анализе текста. Попробуйте позже."
	msgGenericError     = "❌ Произошла ошибка"
	msgNoHistory        = "📭 У вас пока нет анализов"
	msgChooseKind       = "📝 Получил ваш текст! Выберите тип анализа:"
	msgTextTooShort     = "📝 Отправьте более длинный текст для анализа (минимум 20 символов)"
	msgSendTextFor      = "📝 Отправьте текст для %s:"
)

var kindTitles = map[string]string{
	"sentiment": "Анализ тональности",
	"summary":   "Краткая выжимка",
	"keywords":  "Ключевые слова",
}

var kindPromptNames = map[string]string{
	"sentiment": "анализа тональности",
	"summary":   "создания выжимки",
	"keywords":  "извлечения ключевых слов",
}

var kindEmojis = map[string]string{
	"sentiment": "😊",
	"summary":   "📄",
	"keywords":  "🔑",
}
