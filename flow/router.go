package flow

import (
	"context"

	"freelancebot/core/logger"
	"freelancebot/gigachat"
	"freelancebot/history"
	"freelancebot/session"

	"log/slog"
)

// HandlerFunc processes one inbound event.
type HandlerFunc func(ctx context.Context, ev Event) error

// Router is the conversation state machine. Routing tables are built once
// in NewRouter; there is no global registration.
type Router struct {
	sessions session.Store
	hist     history.Store
	gen      gigachat.Completer
	emit     Emitter

	commands  map[string]HandlerFunc
	shortcuts map[string]HandlerFunc
	taps      map[string]HandlerFunc
	states    map[session.State]HandlerFunc
}

// NewRouter wires the state machine against its collaborators.
func NewRouter(sessions session.Store, hist history.Store, gen gigachat.Completer, emit Emitter) *Router {
	r := &Router{
		sessions: sessions,
		hist:     hist,
		gen:      gen,
		emit:     emit,
	}

	r.commands = map[string]HandlerFunc{
		CommandStart:   r.handleStart,
		CommandHistory: r.handleShowHistory,
		CommandHelp:    r.handleHelp,
	}

	r.shortcuts = map[string]HandlerFunc{
		ShortcutMainMenu: r.handleMainMenu,
		ShortcutHistory:  r.handleShowHistory,
		ShortcutQuestion: r.startFlow(session.StateAwaitingQuestion, textAskQuestion),
	}

	r.taps = map[string]HandlerFunc{
		SelectVacancy:      r.startFlow(session.StateAwaitingVacancy, textAskVacancy),
		SelectShortText:    r.startFlow(session.StateAwaitingShortText, textAskShortText),
		SelectResume:       r.startFlow(session.StateAwaitingResume, textAskResume),
		SelectQuestion:     r.startFlow(session.StateAwaitingQuestion, textAskQuestion),
		SelectHistory:      r.handleShowHistory,
		SelectHelp:         r.handleHelp,
		SelectMainMenu:     r.handleMainMenu,
		SelectRegenerate:   r.handleRegenerate,
		SelectRephrase:     r.handleRephrase,
		SelectSave:         r.handleSave,
		SelectClearHistory: r.handleClearHistory,
	}

	r.states = map[session.State]HandlerFunc{
		session.StateAwaitingVacancy:   r.handleVacancyText,
		session.StateAwaitingSkills:    r.handleSkillsText,
		session.StateAwaitingShortText: r.handleShortTextRequest,
		session.StateAwaitingResume:    r.handleResumeText,
		session.StateAwaitingQuestion:  r.handleQuestionText,
	}

	return r
}

// Handle routes one inbound event to its handler.
func (r *Router) Handle(ctx context.Context, ev Event) error {
	switch ev.Kind {
	case EventCommand:
		if h, ok := r.commands[ev.Payload]; ok {
			return h(ctx, ev)
		}
		return r.handleIdleText(ctx, ev)
	case EventButtonTap:
		if h, ok := r.taps[ev.Payload]; ok {
			return h(ctx, ev)
		}
		logger.Warn(ctx, "flow", "tap.unknown",
			slog.Int64("user_id", ev.UserID),
			slog.String("selector", logger.SanitizeLimit(ev.Payload, 64)),
		)
		return r.emit.Notify(ctx, ev.UserID, toastUnsupported)
	case EventText:
		if h, ok := r.shortcuts[ev.Payload]; ok {
			return h(ctx, ev)
		}
		state := r.sessions.Get(ev.UserID).State
		if h, ok := r.states[state]; ok {
			return h(ctx, ev)
		}
		return r.handleIdleText(ctx, ev)
	}
	return nil
}

// startFlow returns a handler that begins a top-level flow: the session
// is always reset first, regardless of the previous state.
func (r *Router) startFlow(st session.State, ask string) HandlerFunc {
	return func(ctx context.Context, ev Event) error {
		r.sessions.Clear(ev.UserID)
		r.sessions.SetState(ev.UserID, st)
		return r.emit.Send(ctx, ev.UserID, ask, KeyboardNone)
	}
}

func (r *Router) handleStart(ctx context.Context, ev Event) error {
	if err := r.emit.Send(ctx, ev.UserID, textWelcome, KeyboardMain); err != nil {
		return err
	}
	return r.emit.Send(ctx, ev.UserID, textStartHint, KeyboardStart)
}

func (r *Router) handleMainMenu(ctx context.Context, ev Event) error {
	r.sessions.Clear(ev.UserID)
	return r.emit.Send(ctx, ev.UserID, textMainMenu, KeyboardMain)
}

func (r *Router) handleHelp(ctx context.Context, ev Event) error {
	return r.emit.Send(ctx, ev.UserID, textHelp, KeyboardNone)
}

func (r *Router) handleIdleText(ctx context.Context, ev Event) error {
	return r.emit.Send(ctx, ev.UserID, textIdleFallback, KeyboardStart)
}

func (r *Router) handleVacancyText(ctx context.Context, ev Event) error {
	r.sessions.UpdateContext(ev.UserID, session.ContextVacancy, ev.Payload)
	r.sessions.SetState(ev.UserID, session.StateAwaitingSkills)
	return r.emit.Send(ctx, ev.UserID, textAskSkills, KeyboardNone)
}

func (r *Router) handleSkillsText(ctx context.Context, ev Event) error {
	vacancy := r.sessions.Get(ev.UserID).Context[session.ContextVacancy]
	skills := ev.Payload

	if err := r.emit.Send(ctx, ev.UserID, textThinkingVacancy, KeyboardNone); err != nil {
		return err
	}
	return r.generate(ctx, ev.UserID, generation{
		kind:   history.KindVacancyResponse,
		prompt: vacancyPrompt(vacancy, skills),
		input:  vacancyHistoryInput(vacancy, skills),
		title:  titleVacancy,
		kb:     KeyboardRegenerate,
	})
}

func (r *Router) handleShortTextRequest(ctx context.Context, ev Event) error {
	if err := r.emit.Send(ctx, ev.UserID, textThinkingShort, KeyboardNone); err != nil {
		return err
	}
	return r.generate(ctx, ev.UserID, generation{
		kind:   history.KindShortText,
		prompt: shortTextPrompt(ev.Payload),
		input:  ev.Payload,
		title:  titleShortText,
		kb:     KeyboardRegenerate,
	})
}

func (r *Router) handleResumeText(ctx context.Context, ev Event) error {
	if err := r.emit.Send(ctx, ev.UserID, textThinkingResume, KeyboardNone); err != nil {
		return err
	}
	return r.generate(ctx, ev.UserID, generation{
		kind:   history.KindResumeImprovement,
		prompt: resumePrompt(ev.Payload),
		input:  ev.Payload,
		title:  titleResume,
		kb:     KeyboardRegenerate,
	})
}

func (r *Router) handleQuestionText(ctx context.Context, ev Event) error {
	if err := r.emit.Send(ctx, ev.UserID, textThinkingQuestion, KeyboardNone); err != nil {
		return err
	}
	// The raw question doubles as the prompt.
	return r.generate(ctx, ev.UserID, generation{
		kind:   history.KindFreeQuestion,
		prompt: ev.Payload,
		input:  ev.Payload,
		title:  titleQuestion,
		kb:     KeyboardQuestion,
	})
}

type generation struct {
	kind   history.Kind
	prompt string
	input  string
	title  string
	kb     Keyboard
}

// generate runs one completion and applies the shared post-generation
// sequence: persist to history (failures included), cache as the
// session's last generation, return to idle, emit the result.
func (r *Router) generate(ctx context.Context, userID int64, g generation) error {
	out := r.gen.Complete(ctx, g.prompt)

	if err := r.hist.Append(ctx, userID, g.kind, g.input, out.Text); err != nil {
		// Storage faults are a process-level concern; the conversation
		// still answers the user.
		logger.Error(ctx, "flow", "history.append",
			slog.Int64("user_id", userID),
			slog.String("kind", string(g.kind)),
			slog.String("err", err.Error()),
		)
	}

	r.sessions.SetLast(userID, g.prompt, out.Text, g.kind)
	r.sessions.Clear(userID)

	return r.emit.Send(ctx, userID, g.title+"\n\n"+out.Text, g.kb)
}

func (r *Router) handleRegenerate(ctx context.Context, ev Event) error {
	sess := r.sessions.Get(ev.UserID)
	if sess.LastPrompt == "" {
		return r.emit.Notify(ctx, ev.UserID, toastNothingToRedo)
	}
	if err := r.emit.Notify(ctx, ev.UserID, toastRegenerating); err != nil {
		return err
	}

	out := r.gen.Complete(ctx, sess.LastPrompt)
	// Pure regenerate does not append to history; only the session's
	// last response is replaced.
	r.sessions.SetLast(ev.UserID, sess.LastPrompt, out.Text, sess.LastKind)

	title, ok := regenerateTitles[sess.LastKind]
	if !ok {
		title = titleRegenerated
	}
	return r.emit.Edit(ctx, ev.UserID, title+"\n\n"+out.Text, KeyboardRegenerate)
}

func (r *Router) handleRephrase(ctx context.Context, ev Event) error {
	sess := r.sessions.Get(ev.UserID)
	if sess.LastPrompt == "" {
		return r.emit.Notify(ctx, ev.UserID, toastNothingToReword)
	}
	if err := r.emit.Notify(ctx, ev.UserID, toastRephrasing); err != nil {
		return err
	}

	out := r.gen.Complete(ctx, rephrasePrompt(sess.LastPrompt))

	// Unlike regenerate, every rephrase lands in history as a fresh
	// free_question answer to the original question.
	if err := r.hist.Append(ctx, ev.UserID, history.KindFreeQuestion, sess.LastPrompt, out.Text); err != nil {
		logger.Error(ctx, "flow", "history.append",
			slog.Int64("user_id", ev.UserID),
			slog.String("kind", string(history.KindFreeQuestion)),
			slog.String("err", err.Error()),
		)
	}
	r.sessions.SetLast(ev.UserID, sess.LastPrompt, out.Text, sess.LastKind)

	return r.emit.Edit(ctx, ev.UserID, titleQuestionReworded+"\n\n"+out.Text, KeyboardQuestion)
}

func (r *Router) handleSave(ctx context.Context, ev Event) error {
	sess := r.sessions.Get(ev.UserID)
	if sess.LastResponse == "" {
		return r.emit.Notify(ctx, ev.UserID, toastNothingToSave)
	}
	if err := r.emit.Notify(ctx, ev.UserID, toastSaved); err != nil {
		return err
	}
	// Save is a pure echo: no extra persistence happens.
	return r.emit.Send(ctx, ev.UserID, textSavedCopy+"\n\n"+sess.LastResponse, KeyboardNone)
}

func (r *Router) handleShowHistory(ctx context.Context, ev Event) error {
	records, err := r.hist.Recent(ctx, ev.UserID, history.DefaultRecentLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return r.emit.Send(ctx, ev.UserID, textHistoryEmpty, KeyboardNone)
	}
	return r.emit.Send(ctx, ev.UserID, renderHistory(records), KeyboardHistory)
}

func (r *Router) handleClearHistory(ctx context.Context, ev Event) error {
	if err := r.hist.Purge(ctx, ev.UserID); err != nil {
		return err
	}
	if err := r.emit.Notify(ctx, ev.UserID, toastHistoryCleared); err != nil {
		return err
	}
	return r.emit.Send(ctx, ev.UserID, textHistoryCleared, KeyboardNone)
}
