package flow

import "fmt"

func vacancyPrompt(vacancy, skills string) string {
	return fmt.Sprintf(`Напиши профессиональный отклик на вакансию.

Описание вакансии: %s

Мои навыки и опыт: %s

Сделай отклик:
- Убедительным и профессиональным
- Подчеркивающим соответствие моих навыков требованиям вакансии
- Не слишком длинным (до 200 слов)
- С предложением обсудить детали`, vacancy, skills)
}

func vacancyHistoryInput(vacancy, skills string) string {
	return fmt.Sprintf("Вакансия: %s\nНавыки: %s", vacancy, skills)
}

func shortTextPrompt(request string) string {
	return fmt.Sprintf("Напиши текст по следующему запросу: %s. Сделай его качественным и соответствующим цели.", request)
}

func resumePrompt(resume string) string {
	return fmt.Sprintf(`Улучши этот текст резюме, сделай его более профессиональным и привлекательным для работодателя:

%s

Предложи улучшенную версию и кратко объясни, что было изменено.`, resume)
}

func rephrasePrompt(question string) string {
	return "Ответь на этот вопрос по-другому: " + question
}
