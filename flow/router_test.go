package flow

import (
	"context"
	"strings"
	"testing"

	"freelancebot/gigachat"
	"freelancebot/history"
	"freelancebot/session"
)

type outMsg struct {
	text string
	kb   Keyboard
}

type fakeEmitter struct {
	sent   []outMsg
	edited []outMsg
	toasts []string
}

func (e *fakeEmitter) Send(_ context.Context, _ int64, text string, kb Keyboard) error {
	e.sent = append(e.sent, outMsg{text: text, kb: kb})
	return nil
}

func (e *fakeEmitter) Edit(_ context.Context, _ int64, text string, kb Keyboard) error {
	e.edited = append(e.edited, outMsg{text: text, kb: kb})
	return nil
}

func (e *fakeEmitter) Notify(_ context.Context, _ int64, text string) error {
	e.toasts = append(e.toasts, text)
	return nil
}

func (e *fakeEmitter) lastSent(t *testing.T) outMsg {
	t.Helper()
	if len(e.sent) == 0 {
		t.Fatal("no messages sent")
	}
	return e.sent[len(e.sent)-1]
}

type fakeGen struct {
	calls   []string
	outcome func(prompt string) gigachat.Outcome
}

func (g *fakeGen) Complete(_ context.Context, prompt string) gigachat.Outcome {
	g.calls = append(g.calls, prompt)
	if g.outcome != nil {
		return g.outcome(prompt)
	}
	return gigachat.Outcome{Text: "ответ на: " + prompt}
}

type fixture struct {
	sessions session.Store
	hist     *history.Memory
	gen      *fakeGen
	emit     *fakeEmitter
	router   *Router
}

func newFixture() *fixture {
	f := &fixture{
		sessions: session.NewMemoryStore(),
		hist:     history.NewMemory(),
		gen:      &fakeGen{},
		emit:     &fakeEmitter{},
	}
	f.router = NewRouter(f.sessions, f.hist, f.gen, f.emit)
	return f
}

func (f *fixture) tap(t *testing.T, userID int64, selector string) {
	t.Helper()
	if err := f.router.Handle(context.Background(), Event{UserID: userID, Kind: EventButtonTap, Payload: selector}); err != nil {
		t.Fatalf("tap %q: %v", selector, err)
	}
}

func (f *fixture) text(t *testing.T, userID int64, text string) {
	t.Helper()
	if err := f.router.Handle(context.Background(), Event{UserID: userID, Kind: EventText, Payload: text}); err != nil {
		t.Fatalf("text %q: %v", text, err)
	}
}

func (f *fixture) command(t *testing.T, userID int64, cmd string) {
	t.Helper()
	if err := f.router.Handle(context.Background(), Event{UserID: userID, Kind: EventCommand, Payload: cmd}); err != nil {
		t.Fatalf("command %q: %v", cmd, err)
	}
}

func TestVacancyFlow(t *testing.T) {
	f := newFixture()
	const user = int64(7)

	f.tap(t, user, SelectVacancy)
	if got := f.sessions.Get(user).State; got != session.StateAwaitingVacancy {
		t.Fatalf("state after tap = %q", got)
	}
	if msg := f.emit.lastSent(t); msg.text != textAskVacancy {
		t.Fatalf("ask text = %q", msg.text)
	}

	f.text(t, user, "Нужен Go-разработчик")
	if got := f.sessions.Get(user).State; got != session.StateAwaitingSkills {
		t.Fatalf("state after vacancy = %q", got)
	}

	f.text(t, user, "5 лет Go, Postgres")

	if len(f.gen.calls) != 1 {
		t.Fatalf("gen calls = %d", len(f.gen.calls))
	}
	prompt := f.gen.calls[0]
	if !strings.Contains(prompt, "Нужен Go-разработчик") || !strings.Contains(prompt, "5 лет Go, Postgres") {
		t.Fatalf("prompt missing captured inputs: %q", prompt)
	}

	recs, err := f.hist.Recent(context.Background(), user, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("history records = %d", len(recs))
	}
	if recs[0].Kind != history.KindVacancyResponse {
		t.Errorf("record kind = %q", recs[0].Kind)
	}
	wantInput := "Вакансия: Нужен Go-разработчик\nНавыки: 5 лет Go, Postgres"
	if recs[0].Input != wantInput {
		t.Errorf("record input = %q, want %q", recs[0].Input, wantInput)
	}

	sess := f.sessions.Get(user)
	if sess.State != session.StateIdle {
		t.Errorf("state after generation = %q", sess.State)
	}
	if sess.LastPrompt != prompt {
		t.Errorf("last prompt not cached")
	}
	if sess.LastKind != history.KindVacancyResponse {
		t.Errorf("last kind = %q", sess.LastKind)
	}

	final := f.emit.lastSent(t)
	if !strings.HasPrefix(final.text, titleVacancy) {
		t.Errorf("final message = %q", final.text)
	}
	if final.kb != KeyboardRegenerate {
		t.Errorf("final keyboard = %q", final.kb)
	}
}

func TestGenerationFailurePersisted(t *testing.T) {
	f := newFixture()
	const user = int64(2)
	const failure = "❌ Ошибка GigaChat API: 500 - overloaded"
	f.gen.outcome = func(string) gigachat.Outcome {
		return gigachat.Outcome{Text: failure, Failed: true}
	}

	f.tap(t, user, SelectQuestion)
	f.text(t, user, "Что такое горутина?")

	recs, err := f.hist.Recent(context.Background(), user, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Output != failure {
		t.Fatalf("failure not persisted: %+v", recs)
	}

	sess := f.sessions.Get(user)
	if sess.LastResponse != failure {
		t.Errorf("last response = %q", sess.LastResponse)
	}
	if sess.State != session.StateIdle {
		t.Errorf("state = %q", sess.State)
	}
	final := f.emit.lastSent(t)
	if !strings.Contains(final.text, failure) {
		t.Errorf("final message = %q", final.text)
	}
}

func TestRegenerateGuard(t *testing.T) {
	f := newFixture()

	f.tap(t, 3, SelectRegenerate)

	if len(f.gen.calls) != 0 {
		t.Fatalf("gen calls = %d, want 0", len(f.gen.calls))
	}
	if len(f.emit.toasts) != 1 || f.emit.toasts[0] != toastNothingToRedo {
		t.Fatalf("toasts = %v", f.emit.toasts)
	}
}

func TestRegenerate(t *testing.T) {
	f := newFixture()
	const user = int64(4)

	f.tap(t, user, SelectShortText)
	f.text(t, user, "пост про релиз")
	firstPrompt := f.gen.calls[0]

	f.tap(t, user, SelectRegenerate)

	if len(f.gen.calls) != 2 {
		t.Fatalf("gen calls = %d", len(f.gen.calls))
	}
	if f.gen.calls[1] != firstPrompt {
		t.Errorf("regenerate prompt = %q, want %q", f.gen.calls[1], firstPrompt)
	}

	// Regenerating replaces the cached response without a history write.
	recs, _ := f.hist.Recent(context.Background(), user, 10)
	if len(recs) != 1 {
		t.Errorf("history records = %d, want 1", len(recs))
	}
	if len(f.emit.edited) != 1 {
		t.Fatalf("edited = %d", len(f.emit.edited))
	}
	if !strings.HasPrefix(f.emit.edited[0].text, titleRegeneratedShortText) {
		t.Errorf("edited message = %q", f.emit.edited[0].text)
	}
	if f.emit.edited[0].kb != KeyboardRegenerate {
		t.Errorf("edited keyboard = %q", f.emit.edited[0].kb)
	}
}

func TestRegenerateTitles(t *testing.T) {
	cases := []struct {
		name  string
		start string
		steps []string
		title string
	}{
		{
			name:  "vacancy",
			start: SelectVacancy,
			steps: []string{"описание вакансии", "навыки"},
			title: titleRegeneratedVacancy,
		},
		{
			name:  "short text",
			start: SelectShortText,
			steps: []string{"пост"},
			title: titleRegeneratedShortText,
		},
		{
			name:  "resume",
			start: SelectResume,
			steps: []string{"текст резюме"},
			title: titleResume,
		},
		{
			name:  "question",
			start: SelectQuestion,
			steps: []string{"вопрос"},
			title: titleRegenerated,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			const user = int64(20)

			f.tap(t, user, tc.start)
			for _, step := range tc.steps {
				f.text(t, user, step)
			}
			f.tap(t, user, SelectRegenerate)

			if len(f.emit.edited) != 1 {
				t.Fatalf("edited = %d", len(f.emit.edited))
			}
			if !strings.HasPrefix(f.emit.edited[0].text, tc.title+"\n\n") {
				t.Errorf("edited message = %q, want title %q", f.emit.edited[0].text, tc.title)
			}
		})
	}
}

func TestRephraseAppendsHistory(t *testing.T) {
	f := newFixture()
	const user = int64(5)
	const question = "Как работает select?"

	f.tap(t, user, SelectQuestion)
	f.text(t, user, question)

	f.tap(t, user, SelectRephrase)
	f.tap(t, user, SelectRephrase)

	if len(f.gen.calls) != 3 {
		t.Fatalf("gen calls = %d", len(f.gen.calls))
	}
	want := rephrasePrompt(question)
	if f.gen.calls[1] != want || f.gen.calls[2] != want {
		t.Errorf("rephrase prompts = %q, %q", f.gen.calls[1], f.gen.calls[2])
	}

	recs, _ := f.hist.Recent(context.Background(), user, 10)
	if len(recs) != 3 {
		t.Fatalf("history records = %d, want 3", len(recs))
	}
	for _, rec := range recs {
		if rec.Kind != history.KindFreeQuestion {
			t.Errorf("record kind = %q", rec.Kind)
		}
		if rec.Input != question {
			t.Errorf("record input = %q", rec.Input)
		}
	}

	// The original question stays cached so rephrase can repeat.
	if got := f.sessions.Get(user).LastPrompt; got != question {
		t.Errorf("last prompt = %q", got)
	}
}

func TestLastGenerationSurvivesFlowSwitch(t *testing.T) {
	f := newFixture()
	const user = int64(6)

	f.tap(t, user, SelectQuestion)
	f.text(t, user, "вопрос")
	prompt := f.gen.calls[0]

	// Starting another flow resets state but not the cached generation.
	f.tap(t, user, SelectShortText)
	f.tap(t, user, SelectRegenerate)

	if len(f.gen.calls) != 2 || f.gen.calls[1] != prompt {
		t.Fatalf("regenerate after switch used %v", f.gen.calls)
	}
}

func TestTopLevelTriggerResetsFlow(t *testing.T) {
	f := newFixture()
	const user = int64(8)

	f.tap(t, user, SelectVacancy)
	f.text(t, user, "описание вакансии")
	f.tap(t, user, SelectQuestion)

	f.text(t, user, "а это уже вопрос")

	if len(f.gen.calls) != 1 {
		t.Fatalf("gen calls = %d", len(f.gen.calls))
	}
	if f.gen.calls[0] != "а это уже вопрос" {
		t.Errorf("prompt = %q", f.gen.calls[0])
	}
	recs, _ := f.hist.Recent(context.Background(), user, 10)
	if len(recs) != 1 || recs[0].Kind != history.KindFreeQuestion {
		t.Fatalf("records = %+v", recs)
	}
}

func TestShowHistory(t *testing.T) {
	f := newFixture()
	const user = int64(9)

	f.command(t, user, CommandHistory)
	if msg := f.emit.lastSent(t); msg.text != textHistoryEmpty {
		t.Fatalf("empty history message = %q", msg.text)
	}

	f.hist.Append(context.Background(), user, history.KindShortText, "запрос", "текст")
	f.tap(t, user, SelectHistory)

	msg := f.emit.lastSent(t)
	if !strings.HasPrefix(msg.text, textHistoryHeader) {
		t.Errorf("history message = %q", msg.text)
	}
	if !strings.Contains(msg.text, kindLabels[history.KindShortText]) {
		t.Errorf("history message missing label: %q", msg.text)
	}
	if msg.kb != KeyboardHistory {
		t.Errorf("history keyboard = %q", msg.kb)
	}
}

func TestClearHistory(t *testing.T) {
	f := newFixture()
	const user = int64(10)

	f.hist.Append(context.Background(), user, history.KindFreeQuestion, "q", "a")
	f.tap(t, user, SelectClearHistory)

	recs, _ := f.hist.Recent(context.Background(), user, 10)
	if len(recs) != 0 {
		t.Fatalf("records after clear = %d", len(recs))
	}
	if len(f.emit.toasts) != 1 || f.emit.toasts[0] != toastHistoryCleared {
		t.Errorf("toasts = %v", f.emit.toasts)
	}
	if msg := f.emit.lastSent(t); msg.text != textHistoryCleared {
		t.Errorf("message = %q", msg.text)
	}
}

func TestSave(t *testing.T) {
	f := newFixture()
	const user = int64(11)

	f.tap(t, user, SelectSave)
	if len(f.emit.toasts) != 1 || f.emit.toasts[0] != toastNothingToSave {
		t.Fatalf("toasts = %v", f.emit.toasts)
	}

	f.tap(t, user, SelectQuestion)
	f.text(t, user, "вопрос")
	response := f.sessions.Get(user).LastResponse

	f.tap(t, user, SelectSave)
	msg := f.emit.lastSent(t)
	if !strings.HasPrefix(msg.text, textSavedCopy) || !strings.Contains(msg.text, response) {
		t.Errorf("saved copy = %q", msg.text)
	}
	// Saving echoes the response, nothing else is written.
	recs, _ := f.hist.Recent(context.Background(), user, 10)
	if len(recs) != 1 {
		t.Errorf("records = %d", len(recs))
	}
}

func TestIdleFallback(t *testing.T) {
	f := newFixture()

	f.text(t, 12, "просто текст")

	msg := f.emit.lastSent(t)
	if msg.text != textIdleFallback {
		t.Errorf("fallback = %q", msg.text)
	}
	if msg.kb != KeyboardStart {
		t.Errorf("fallback keyboard = %q", msg.kb)
	}
}

func TestUnknownTap(t *testing.T) {
	f := newFixture()

	f.tap(t, 13, "no_such_selector")

	if len(f.emit.toasts) != 1 || f.emit.toasts[0] != toastUnsupported {
		t.Errorf("toasts = %v", f.emit.toasts)
	}
}

func TestShortcutStartsQuestionFlow(t *testing.T) {
	f := newFixture()
	const user = int64(14)

	f.text(t, user, ShortcutQuestion)
	if got := f.sessions.Get(user).State; got != session.StateAwaitingQuestion {
		t.Fatalf("state = %q", got)
	}

	f.text(t, user, ShortcutMainMenu)
	if got := f.sessions.Get(user).State; got != session.StateIdle {
		t.Fatalf("state after main menu = %q", got)
	}
	if msg := f.emit.lastSent(t); msg.kb != KeyboardMain {
		t.Errorf("main menu keyboard = %q", msg.kb)
	}
}

func TestStartCommand(t *testing.T) {
	f := newFixture()

	f.command(t, 15, CommandStart)

	if len(f.emit.sent) != 2 {
		t.Fatalf("sent = %d", len(f.emit.sent))
	}
	if f.emit.sent[0].text != textWelcome || f.emit.sent[0].kb != KeyboardMain {
		t.Errorf("welcome = %+v", f.emit.sent[0])
	}
	if f.emit.sent[1].kb != KeyboardStart {
		t.Errorf("hint keyboard = %q", f.emit.sent[1].kb)
	}
}
