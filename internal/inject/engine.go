// Package inject delivers text into whatever application holds keyboard
// focus. It classifies the foreground window, selects an injection
// strategy from the target's compatibility profile, and drives a bounded
// inject/validate/retry state machine over the OS input and clipboard
// primitives.
package inject

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chaz8081/typesink/internal/classify"
	"github.com/chaz8081/typesink/internal/profile"
	"github.com/chaz8081/typesink/internal/strategy"
	"github.com/chaz8081/typesink/internal/window"
)

// Request is one strategy attempt against one window snapshot. Attempt
// starts at 1 and increments only when the engine falls back.
type Request struct {
	Text    string
	Target  window.Info
	Attempt int
}

// Result summarizes one logical injection call, however many internal
// attempts it took. Intermediate failures are never surfaced; ErrorKind
// is the final cause of an exhausted chain.
type Result struct {
	Success   bool
	Strategy  strategy.Strategy
	Category  classify.Category
	Attempts  int
	Latency   time.Duration
	ErrorKind ErrorKind
	// Validated reports the best-effort post-injection check. A false
	// value is advisory; it never triggers a retry.
	Validated bool
}

// Options configures an Engine. Nil fields get production defaults.
type Options struct {
	Provider   window.Provider
	Classifier *classify.Classifier
	Store      *profile.Store
	Keyboard   Keyboard
	Clipboard  Clipboard
	Validator  *Validator
	Logger     *slog.Logger

	// AttemptTimeout bounds one strategy attempt; exceeding it is a
	// strategy failure eligible for fallback, not a process fault.
	AttemptTimeout time.Duration
	// SettleDelay is the wait after a paste chord before the clipboard
	// is restored, giving the target time to consume the paste.
	SettleDelay time.Duration
}

// Engine is the injection executor. At most one request is in flight at
// a time: the input queue and the clipboard are global OS resources and
// interleaved use would corrupt them. Concurrent callers queue.
type Engine struct {
	provider   window.Provider
	classifier *classify.Classifier
	store      *profile.Store
	kb         Keyboard
	cb         Clipboard
	validator  *Validator
	log        *slog.Logger

	attemptTimeout time.Duration
	settleDelay    time.Duration

	// slot serializes requests; taken with the caller's context so a
	// queued request can still be cancelled.
	slot chan struct{}
}

// NewEngine builds an Engine, filling unset options with the robotgo
// production adapters.
func NewEngine(opts Options) *Engine {
	if opts.Classifier == nil {
		opts.Classifier = classify.New()
	}
	if opts.Store == nil {
		opts.Store = profile.NewStore(opts.Classifier)
	}
	if opts.Provider == nil {
		opts.Provider = window.NewOSProvider()
	}
	if opts.Keyboard == nil {
		opts.Keyboard = NewKeyboard()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = NewClipboard()
	}
	if opts.Validator == nil {
		opts.Validator = NewValidator(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = 5 * time.Second
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = 150 * time.Millisecond
	}
	return &Engine{
		provider:       opts.Provider,
		classifier:     opts.Classifier,
		store:          opts.Store,
		kb:             opts.Keyboard,
		cb:             opts.Clipboard,
		validator:      opts.Validator,
		log:            opts.Logger,
		attemptTimeout: opts.AttemptTimeout,
		settleDelay:    opts.SettleDelay,
		slot:           make(chan struct{}, 1),
	}
}

// InjectText delivers text to the current foreground window. It is the
// sole entry point used by the transcription pipeline. Empty text is a
// no-op success with zero OS calls.
func (e *Engine) InjectText(ctx context.Context, text string) Result {
	start := time.Now()
	if text == "" {
		return Result{Success: true, Latency: time.Since(start)}
	}
	if ctx.Err() != nil {
		return Result{ErrorKind: Timeout, Latency: time.Since(start)}
	}

	select {
	case e.slot <- struct{}{}:
		defer func() { <-e.slot }()
	case <-ctx.Done():
		return Result{ErrorKind: Timeout, Latency: time.Since(start)}
	}

	res := e.run(ctx, text)
	res.Latency = time.Since(start)
	return res
}

func (e *Engine) run(ctx context.Context, text string) Result {
	win, err := e.provider.Foreground()
	if err != nil {
		e.log.Warn("foreground window detection failed", "err", err)
		return Result{ErrorKind: WindowNotFound}
	}

	prof := e.store.Resolve(win)
	cat := prof.Category
	log := e.log.With("process", win.ProcessName, "category", cat)

	if prof.Limited(profile.LimitUnsupported) {
		log.Warn("target marked unsupported, refusing to inject")
		return Result{Category: cat, ErrorKind: UnsupportedApplication}
	}

	selected := strategy.Select(prof.Preferred, prof.Limited(profile.LimitNoSurrogates), text)
	chain := attemptChain(selected, prof.Fallbacks)
	maxAttempts := len(prof.Fallbacks) + 1

	var (
		lastKind  ErrorKind
		lastStrat strategy.Strategy
		attempts  int
	)
	for _, strat := range chain {
		if attempts >= maxAttempts {
			break
		}
		attempts++
		lastStrat = strat

		req := Request{Text: text, Target: win, Attempt: attempts}
		err := e.runAttempt(ctx, req, strat, prof)
		if err == nil {
			validated := e.validator.Validate(win, cat, text)
			if !validated {
				log.Warn("post-injection validation mismatch", "strategy", strat)
			}
			return Result{
				Success:   true,
				Strategy:  strat,
				Category:  cat,
				Attempts:  attempts,
				Validated: validated,
			}
		}

		lastKind = kindOf(err)
		if !lastKind.Recoverable() {
			log.Warn("strategy failed with unrecoverable cause", "strategy", strat, "err", err)
			break
		}
		log.Warn("strategy failed, trying fallback", "strategy", strat, "attempt", attempts, "err", err)
	}

	return Result{
		Strategy:  lastStrat,
		Category:  cat,
		Attempts:  attempts,
		ErrorKind: lastKind,
	}
}

// attemptChain orders the strategies to try: the selected one first,
// then the profile's fallbacks that have not been attempted yet.
func attemptChain(selected strategy.Strategy, fallbacks []strategy.Strategy) []strategy.Strategy {
	chain := []strategy.Strategy{selected}
	for _, f := range fallbacks {
		seen := false
		for _, c := range chain {
			if c == f {
				seen = true
				break
			}
		}
		if !seen && f.Valid() {
			chain = append(chain, f)
		}
	}
	return chain
}

// runAttempt executes one strategy under the attempt timeout. On
// timeout it still joins the strategy goroutine before returning: the
// keyboard and clipboard are exclusive resources, so the clipboard
// restore and any in-flight input call must finish before a fallback
// attempt touches them.
func (e *Engine) runAttempt(ctx context.Context, req Request, strat strategy.Strategy, prof profile.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, e.attemptTimeout)
	defer cancel()

	e.log.Debug("injection attempt",
		"process", req.Target.ProcessName, "strategy", strat, "attempt", req.Attempt)

	done := make(chan error, 1)
	go func() { done <- e.execute(ctx, req, strat, prof) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		// Strategies check the context between OS calls and sleepCtx is
		// cancellation-aware, so the join is prompt.
		<-done
		return &Error{Kind: Timeout, Err: ctx.Err()}
	}
}

func (e *Engine) execute(ctx context.Context, req Request, strat strategy.Strategy, prof profile.Profile) error {
	if prof.PrePositionCorrection {
		// Some rich-text controls reset caret focus on external
		// activation; park the caret at the end of the field first.
		// Best effort: a failed correction never fails the attempt.
		if err := e.kb.Tap("end"); err != nil {
			e.log.Debug("pre-position correction failed", "err", err)
		}
	}

	switch strat {
	case strategy.DirectUnicode:
		return e.typeUnicode(ctx, req, prof)
	case strategy.SyntheticKeystroke:
		return e.typeKeystrokes(ctx, req, prof)
	case strategy.ClipboardPaste:
		return e.pasteClipboard(ctx, req)
	case strategy.Hybrid:
		if shortASCII(req.Text) {
			return e.typeUnicode(ctx, req, prof)
		}
		return e.pasteClipboard(ctx, req)
	default:
		return &Error{Kind: PermissionDenied, Err: fmt.Errorf("unknown strategy %q", strat)}
	}
}

// typeUnicode sends each codepoint as a synthetic Unicode event with
// the profile's inter-character spacing. Without the spacing, slow input
// queues (several IDEs) drop characters.
func (e *Engine) typeUnicode(ctx context.Context, req Request, prof profile.Profile) error {
	delay := prof.InterCharDelay()
	typed := 0
	for _, r := range req.Text {
		if err := ctx.Err(); err != nil {
			return &Error{Kind: partialKind(typed), Err: err}
		}
		if err := e.kb.TypeRune(r); err != nil {
			return &Error{Kind: partialKind(typed), Err: err}
		}
		typed++
		if delay > 0 {
			if err := sleepCtx(ctx, delay); err != nil {
				return &Error{Kind: PartialInjection, Err: err}
			}
		}
	}
	return nil
}

// typeKeystrokes replays the text as named key taps. Only keys the
// legacy keystroke path can name are supported; hitting anything else
// is a partial injection, which the clipboard fallback covers.
func (e *Engine) typeKeystrokes(ctx context.Context, req Request, prof profile.Profile) error {
	delay := prof.InterCharDelay()
	typed := 0
	for _, r := range req.Text {
		if err := ctx.Err(); err != nil {
			return &Error{Kind: partialKind(typed), Err: err}
		}
		key, mods, ok := keyName(r)
		if !ok {
			return &Error{Kind: partialKind(typed), Err: fmt.Errorf("no key name for %q", r)}
		}
		if err := e.kb.Tap(key, mods...); err != nil {
			return &Error{Kind: partialKind(typed), Err: err}
		}
		typed++
		if delay > 0 {
			if err := sleepCtx(ctx, delay); err != nil {
				return &Error{Kind: PartialInjection, Err: err}
			}
		}
	}
	return nil
}

// pasteClipboard stages the text on the clipboard, synthesizes the
// platform paste chord, and restores the previous clipboard contents on
// every exit path.
func (e *Engine) pasteClipboard(ctx context.Context, req Request) error {
	guard, err := acquireClipboard(e.cb)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := guard.Release(); rerr != nil {
			e.log.Warn("clipboard restore failed", "err", rerr)
		}
	}()

	if err := guard.Stage(req.Text); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return &Error{Kind: Timeout, Err: err}
	}
	if err := e.kb.Tap("v", pasteModifier()); err != nil {
		return &Error{Kind: PermissionDenied, Err: err}
	}
	// Let the target consume the paste before the restore overwrites it.
	if err := sleepCtx(ctx, e.settleDelay); err != nil {
		return &Error{Kind: Timeout, Err: err}
	}
	return nil
}

// ClassifyOnly is the diagnostic hook for external harnesses: it runs
// the classifier over a window snapshot without touching the OS.
func (e *Engine) ClassifyOnly(info window.Info) classify.Category {
	return e.classifier.Classify(info)
}

// DryRunStrategy reports the strategy the executor would pick for this
// profile and text, with no side effects.
func (e *Engine) DryRunStrategy(prof profile.Profile, text string) strategy.Strategy {
	return strategy.Select(prof.Preferred, prof.Limited(profile.LimitNoSurrogates), text)
}

// partialKind maps a mid-text failure to PartialInjection and a failure
// before the first character to PermissionDenied.
func partialKind(typed int) ErrorKind {
	if typed > 0 {
		return PartialInjection
	}
	return PermissionDenied
}

// shortASCII reports whether text is short enough and plain enough for
// the hybrid strategy to type directly instead of pasting.
func shortASCII(text string) bool {
	n := 0
	for _, r := range text {
		if r > 0x7F {
			return false
		}
		n++
		if n > 32 {
			return false
		}
	}
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// keyName maps a rune to the key tap that produces it, for the subset
// of keys the keystroke path can address.
func keyName(r rune) (key string, mods []string, ok bool) {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return string(r), nil, true
	case r >= 'A' && r <= 'Z':
		return string(r - 'A' + 'a'), []string{"shift"}, true
	case r == ' ':
		return "space", nil, true
	case r == '\n':
		return "enter", nil, true
	case r == '\t':
		return "tab", nil, true
	}
	return "", nil, false
}
