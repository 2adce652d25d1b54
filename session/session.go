// Package session tracks per-user conversation progress and the last
// generation used by regenerate and rephrase actions. State is held in
// memory only: a process restart loses in-flight conversations.
package session

import "freelancebot/history"

// State identifies a conversation step in the assistant flows.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
	// StateAwaitingVacancy waits for the vacancy description text.
	StateAwaitingVacancy State = "awaiting_vacancy"
	// StateAwaitingSkills waits for the user's skills after the vacancy text.
	StateAwaitingSkills State = "awaiting_skills"
	// StateAwaitingShortText waits for the short text request.
	StateAwaitingShortText State = "awaiting_short_text"
	// StateAwaitingResume waits for the resume text to improve.
	StateAwaitingResume State = "awaiting_resume"
	// StateAwaitingQuestion waits for a free-form question.
	StateAwaitingQuestion State = "awaiting_question"
)

// ContextVacancy keys the captured vacancy description in the session context.
const ContextVacancy = "vacancy"

// Session stores conversation state and the last generation for one user.
type Session struct {
	State   State
	Context map[string]string

	LastPrompt   string
	LastResponse string
	LastKind     history.Kind
}

// Store keeps one mutable session per user. Implementations must be safe
// for concurrent use; mutation for one user happens inside the router's
// handling of a single event.
type Store interface {
	// Get returns a copy of the user's session, creating an idle one lazily.
	Get(userID int64) Session
	// SetState replaces the conversation state.
	SetState(userID int64, st State)
	// UpdateContext stores one captured context field.
	UpdateContext(userID int64, key, value string)
	// SetLast records the prompt, response, and kind of the latest generation.
	SetLast(userID int64, prompt, response string, kind history.Kind)
	// Clear resets state to idle and empties the context while preserving
	// the last prompt/response/kind.
	Clear(userID int64)
}
