// Package flow implements the conversation state machine: it maps inbound
// user events to session transitions, generation calls, history writes,
// and outbound actions. It knows nothing about the Telegram transport.
package flow

// EventKind classifies an inbound event from the transport layer.
type EventKind string

const (
	// EventCommand is a slash command, payload holds the command name.
	EventCommand EventKind = "command"
	// EventText is free text typed by the user.
	EventText EventKind = "text"
	// EventButtonTap is an inline button press, payload holds the selector.
	EventButtonTap EventKind = "buttonTap"
)

// Event is one inbound user interaction.
type Event struct {
	UserID  int64
	Kind    EventKind
	Payload string
}

// Button tap selectors. The transport layer uses the same identifiers as
// callback keys.
const (
	SelectVacancy      = "response_to_vacancy"
	SelectShortText    = "short_text"
	SelectResume       = "improve_resume"
	SelectQuestion     = "free_question"
	SelectHistory      = "history"
	SelectHelp         = "help"
	SelectRegenerate   = "regenerate"
	SelectRephrase     = "rephrase_question"
	SelectSave         = "save"
	SelectMainMenu     = "main_menu"
	SelectClearHistory = "clear_history"
)

// Slash commands routed through the flow.
const (
	CommandStart   = "/start"
	CommandHistory = "/history"
	CommandHelp    = "/help"
)
