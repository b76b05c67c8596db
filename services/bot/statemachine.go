package bot

import (
	"fmt"
	"strings"

	"inkbook/models"
)

const (
	replyGreeting     = "Привет! Как тебя зовут?"
	replyAskNameAgain = "Напиши, пожалуйста, как к тебе обращаться"
	replyAskPhone     = "Оставь телефон или @username для связи"
	replyAskDate      = "Когда тебе удобно? Укажи дату (например, 2025-11-20)"
	replyAskTime      = "А во сколько примерно?"
	replyAskNote      = "Добавь пожелания по стилю/размеру (или напиши — нет)"
	replyAlreadyDone  = "Твоя заявка уже у нас. Чтобы начать новую запись, напиши мастеру напрямую."
)

func completionReply(bookingID string) string {
	return fmt.Sprintf("Готово! Я записал заявку №%s. Мы свяжемся с тобой.", bookingID)
}

// Action is the side effect a step asks the caller to perform.
type Action int

const (
	ActionNone Action = iota
	// ActionFinalize: persist a booking from Step.Answers; the reply is built from its ID.
	ActionFinalize
)

// Step is the outcome of feeding one message to the dialogue.
type Step struct {
	Next    models.BotState
	Answers models.BotAnswers
	Reply   string
	Action  Action
	// Advanced is false when the session must be left untouched.
	Advanced bool
}

func stay(state models.BotState, answers models.BotAnswers, reply string) Step {
	return Step{Next: state, Answers: answers, Reply: reply}
}

func advance(next models.BotState, answers models.BotAnswers, reply string) Step {
	return Step{Next: next, Answers: answers, Reply: reply, Advanced: true}
}

// Transition computes the next step of the booking dialogue. It is pure and total.
// Only the name is mandatory; every later answer is stored as given, empty included.
func Transition(state models.BotState, answers models.BotAnswers, text string) Step {
	text = strings.TrimSpace(text)

	switch state {
	case models.BotStateAskName:
		if text == "" {
			return stay(state, answers, replyAskNameAgain)
		}
		answers.ClientName = text
		return advance(models.BotStateAskPhone, answers, replyAskPhone)

	case models.BotStateAskPhone:
		answers.Phone = text
		return advance(models.BotStateAskDate, answers, replyAskDate)

	case models.BotStateAskDate:
		answers.PreferredDate = text
		return advance(models.BotStateAskTime, answers, replyAskTime)

	case models.BotStateAskTime:
		answers.PreferredTime = text
		return advance(models.BotStateAskNote, answers, replyAskNote)

	case models.BotStateAskNote:
		answers.Note = text
		return Step{Next: models.BotStateComplete, Answers: answers, Action: ActionFinalize, Advanced: true}

	case models.BotStateComplete:
		return stay(state, answers, replyAlreadyDone)

	default:
		return Transition(models.BotStateAskName, answers, text)
	}
}
