package flow

import "context"

// Keyboard identifies a button set attached to an outbound message.
// The transport adapter resolves identifiers into concrete markups.
type Keyboard string

const (
	// KeyboardNone attaches no buttons.
	KeyboardNone Keyboard = ""
	// KeyboardMain is the inline main menu.
	KeyboardMain Keyboard = "main"
	// KeyboardRegenerate offers regenerate/save/main menu.
	KeyboardRegenerate Keyboard = "regenerate"
	// KeyboardQuestion offers rephrase/main menu for the question flow.
	KeyboardQuestion Keyboard = "question"
	// KeyboardHistory offers clear history/main menu.
	KeyboardHistory Keyboard = "history"
	// KeyboardStart is the persistent reply keyboard with shortcuts.
	KeyboardStart Keyboard = "start"
)

// Emitter is the outbound port to the transport layer.
type Emitter interface {
	// Send delivers a new message to the user.
	Send(ctx context.Context, userID int64, text string, kb Keyboard) error
	// Edit replaces the text of the message the user interacted with.
	Edit(ctx context.Context, userID int64, text string, kb Keyboard) error
	// Notify shows a short transient notice (callback toast).
	Notify(ctx context.Context, userID int64, text string) error
}
