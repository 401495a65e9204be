// Package app wires every component into a single running process, the
// way the teacher's Peco struct (percol.go/peco.go/state.go) owns the
// hub, keymap, and input source and wires them together via constructor
// injection. App.Run plays the same role as Peco.Run: it builds every
// collaborator, starts each long-running loop against one root context,
// and blocks until that context is cancelled.
package app

import (
	"context"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/screenreader/core/internal/access"
	"github.com/screenreader/core/internal/clock"
	"github.com/screenreader/core/internal/config"
	"github.com/screenreader/core/internal/echo"
	"github.com/screenreader/core/internal/elementslist"
	"github.com/screenreader/core/internal/errs"
	"github.com/screenreader/core/internal/event"
	"github.com/screenreader/core/internal/keyboard"
	"github.com/screenreader/core/internal/keymap"
	"github.com/screenreader/core/internal/keys"
	"github.com/screenreader/core/internal/logging"
	"github.com/screenreader/core/internal/mode"
	"github.com/screenreader/core/internal/nav"
	"github.com/screenreader/core/internal/sayall"
	"github.com/screenreader/core/internal/speech"
	"github.com/screenreader/core/internal/vbuffer"
	"github.com/screenreader/core/internal/wizard"
)

// Deps are the external collaborators spec §1 puts out of scope: the TTS
// engine, the audio device/asset loader, and the settings-file locator.
// Everything else is built by New from these.
type Deps struct {
	Backend      speech.Backend
	AssetLoader  speech.AssetLoader
	AudioDevice  speech.AudioDevice
	Locator      config.Locator // nil uses config.DefaultLocator
	Clock        clock.Clock    // nil uses clock.System
	Logger       *zap.Logger    // nil uses logging.Nop()
	RootElement  access.Element // initial accessibility tree root, if any

	// ElementsListUI drives the Elements-List dialog (spec §4.16) to a
	// Result: open a screen, run elementslist.Run against it, tear the
	// screen back down. App only owns the pure Controller state machine
	// (openElementsList/CloseElementsList); the tcell-backed driver lives
	// in cmd/screenreader so this package never imports tcell. A nil
	// ElementsListUI makes the ElementsList command a no-op.
	ElementsListUI func(ctx context.Context, c *elementslist.Controller) *elementslist.Result
}

// App owns every C1-C15 collaborator plus the A2 settings store and
// dispatches navigation commands as the mode.Executor, mirroring the
// teacher's Peco struct implementing its own action dispatch rather than
// delegating to a separate type.
type App struct {
	logger  *zap.Logger
	clock   clock.Clock
	backend speech.Backend

	store *config.Store

	bus        *event.Bus
	queue      *speech.Queue
	cues       *speech.CuePlayer
	host       *access.Host
	liveRegion *access.LiveRegionMonitor
	translator *access.Translator

	ringBuffer *keyboard.RingBuffer
	hook       *keyboard.Hook
	consumer   *keyboard.Consumer
	keymap     *keymap.Keymap
	modeMgr    *mode.Manager
	echo       *echo.Handler
	sayAll     *sayall.Reader

	// doc/cur are only ever read or reassigned from the event bus's single
	// consumer goroutine (event.Bus.Run): Execute runs there as the
	// mode.Manager's registered navigation subscriber, and
	// handleAmbientEvent/swapDoc run there as the OnAny subscriber.
	// docMu guards doc for currentDoc's use from other goroutines (e.g. a
	// future UI layer reading a snapshot); cur needs no lock under that
	// single-goroutine invariant. CloseElementsList assumes its caller
	// (the Elements-List dialog's driver) also runs on that goroutine.
	docMu sync.RWMutex
	doc   *vbuffer.Document
	cur   *vbuffer.Cursor

	elementsMu     sync.Mutex
	elements       *elementslist.Controller
	elementsListUI func(ctx context.Context, c *elementslist.Controller) *elementslist.Result

	// wizardCh, when non-nil, is where dispatchKey forwards every raw key
	// event instead of going through echo/keymap/mode (spec §4.17: the
	// wizard bypasses internal/keymap and internal/mode entirely). Guarded
	// by wizardMu since RunFirstRunWizard and dispatchKey run on different
	// goroutines.
	wizardMu sync.Mutex
	wizardCh chan keys.KeyEvent

	runCtx context.Context
}

// New builds every collaborator but starts nothing; call Run to start the
// process (spec §5: every long-running loop is started from one place
// against one root context).
func New(deps Deps) (*App, error) {
	c := deps.Clock
	if c == nil {
		c = clock.System
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	locator := deps.Locator
	if locator == nil {
		locator = config.DefaultLocator
	}
	store, err := config.Load(locator)
	if err != nil {
		// An unreadable or malformed settings file falls back to the
		// built-in defaults, still persisted to the located path.
		loadErr := errs.Wrap(errs.SettingsLoad, err, "loading settings")
		path, locErr := config.LocateSettingsFile(locator)
		if locErr != nil {
			return nil, loadErr
		}
		logging.Component(logger, logging.ComponentConfig).Warn("using default settings", zap.Error(loadErr))
		store = config.NewStore(path, config.Defaults())
	}
	settings := store.Get()

	bus := event.New(256, event.WithErrorLog(func(err error) {
		logging.Component(logger, logging.ComponentBus).Error("bus dispatch panic", zap.Error(err))
	}))
	queue := speech.NewQueue(deps.Backend, func(u speech.Utterance, err error) {
		logging.Component(logger, logging.ComponentQueue).Warn("speech backend error",
			zap.String("text", u.Text), zap.Error(errs.Wrap(errs.BackendSpeak, err, "speak")))
	})
	cues := speech.NewCuePlayer(deps.AssetLoader, deps.AudioDevice, settings.AudioCuesEnabled)

	host := access.NewHost()
	liveRegion := access.NewLiveRegionMonitor(c)
	translator := access.NewTranslator(bus, c)

	ringBuffer := keyboard.NewRingBuffer()
	modifier := keyboard.ModifierInsert
	if settings.ModifierKey == config.ModifierCapsLock {
		modifier = keyboard.ModifierCapsLock
	}
	hook := keyboard.NewHook(ringBuffer, modifier)

	km := keymap.Default(settings.ModifierKey == config.ModifierInsert)

	echoHandler := echo.NewHandler(func() echo.Mode { return store.Get().TypingEchoMode })
	sayAllReader := sayall.NewReader(queue)

	doc := vbuffer.Build(deps.RootElement)

	a := &App{
		logger:         logger,
		clock:          c,
		backend:        deps.Backend,
		store:          store,
		bus:            bus,
		queue:          queue,
		cues:           cues,
		host:           host,
		liveRegion:     liveRegion,
		translator:     translator,
		ringBuffer:     ringBuffer,
		hook:           hook,
		keymap:         km,
		echo:           echoHandler,
		sayAll:         sayAllReader,
		doc:            doc,
		cur:            vbuffer.NewCursor(doc),
		elementsListUI: deps.ElementsListUI,
	}

	a.modeMgr = mode.NewManager(bus, queue, cues, c, a.currentNode, a)
	a.consumer = keyboard.NewConsumer(ringBuffer, a.dispatchKey)

	bus.OnAny(a.handleAmbientEvent)

	return a, nil
}

// Store exposes the settings store so cmd/screenreader can run the
// first-run wizard before or after Run, and so tests can inspect/update
// settings live.
func (a *App) Store() *config.Store { return a.store }

// Translator exposes the accessibility event translator so an external
// accessibility-platform layer (out of scope per spec §1) can feed
// focus/structure/property/live-region callbacks onto the event bus.
func (a *App) Translator() *access.Translator { return a.translator }

// Host exposes the single-threaded apartment worker so platform calls can
// be marshaled through it (spec §4.7).
func (a *App) Host() *access.Host { return a.host }

// RingBuffer exposes the raw key queue a platform hook implementation
// would push into (Windows builds wire keyboard.Hook directly instead).
func (a *App) RingBuffer() *keyboard.RingBuffer { return a.ringBuffer }

// NotifyLiveRegionChanged applies the live-region monitor's diff/throttle
// gate (spec §4.9) before forwarding to the translator, so platform
// callers go through one entry point instead of calling
// Translator().OnLiveRegionChanged directly and bypassing the gate.
func (a *App) NotifyLiveRegionChanged(sourceID, text string, politeness event.Politeness) {
	if !a.liveRegion.ShouldAnnounce(sourceID, text, politeness) {
		return
	}
	a.translator.OnLiveRegionChanged(sourceID, text, politeness)
}

// Run starts every long-running loop against ctx and blocks until it is
// cancelled or a component reports a fatal error, mirroring the teacher's
// Peco.Run sequencing its setup phases then blocking on its own run loop.
func (a *App) Run(ctx context.Context) error {
	a.runCtx = ctx

	a.host.Start(ctx)
	a.modeMgr.Start()

	errCh := make(chan error, 4)
	go a.runHookThread(ctx, errCh)
	go func() { errCh <- a.bus.Run(ctx) }()
	go func() { errCh <- a.queue.Run(ctx) }()
	go func() { errCh <- a.consumer.Run(ctx) }()

	defer a.hook.Uninstall()
	defer a.host.Dispose(5 * time.Second)
	defer a.sayAll.Stop()

	// bus.Run/queue.Run/consumer.Run/runHookThread all report nil only
	// after ctx is already done, so a nil arriving here is not itself
	// cause to return: keep waiting so the ctx.Done() branch is the one
	// that determines Run's return value on ordinary shutdown, and only
	// a genuinely non-nil error short-circuits that wait.
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			if err != nil {
				return err
			}
		}
	}
}

// runHookThread is execution context 1 (spec §5): one OS thread running
// Install then the blocking message pump Install requires. Locked to its
// own goroutine since Win32 expects SetWindowsHookEx and the message loop
// that keeps it alive to run on the same thread.
//
// Known limitation: on Windows, Pump blocks in GetMessage until the
// process's message queue receives WM_QUIT, and nothing here posts one,
// so on ctx cancellation Run uninstalls the hook but this goroutine stays
// blocked in Pump until the process exits. On non-Windows builds Pump is
// a no-op that returns immediately, so this has no effect there.
func (a *App) runHookThread(ctx context.Context, errCh chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := a.hook.Install(); err != nil {
		logging.Component(a.logger, logging.ComponentHook).Error("hook install failed",
			zap.Error(errs.Wrap(errs.HookInstall, err, "installing keyboard hook")))
		<-ctx.Done()
		errCh <- nil
		return
	}
	defer a.hook.Uninstall()

	// Pump on this same locked thread: the hook only stays alive while
	// the thread that installed it keeps pumping messages.
	err := a.hook.Pump()
	if ctx.Err() != nil {
		err = nil
	}
	errCh <- err
}

func (a *App) currentNode() *vbuffer.Node {
	n, ok := a.cur.CurrentNode()
	if !ok {
		return nil
	}
	return n
}

func (a *App) currentDoc() *vbuffer.Document {
	a.docMu.RLock()
	defer a.docMu.RUnlock()
	return a.doc
}

func (a *App) swapDoc(next *vbuffer.Document) {
	a.docMu.Lock()
	a.doc = next
	a.docMu.Unlock()
	a.cur = vbuffer.NewCursor(next)
}

// dispatchKey runs on the keyboard consumer's goroutine: classify for
// typing echo, resolve against the keymap, and post exactly one of
// NavigationCommand or RawKey onto the bus (spec §4.4/§4.5).
func (a *App) dispatchKey(k keys.KeyEvent) bool {
	if ch := a.currentWizardChan(); ch != nil {
		select {
		case ch <- k:
		default:
		}
		return false
	}

	now := a.clock.Now()

	if !k.Down {
		for _, e := range a.echo.HandleKeyUp(k) {
			a.queue.Enqueue(speech.New(e.Text))
		}
		a.bus.Post(event.NewRawKey(now, k))
		return false
	}

	a.echo.HandleKeyDown(k)

	if a.sayAll.IsReading() {
		a.sayAll.Stop()
	}

	if cmd, ok := a.keymap.Resolve(k.Modifiers, k.VK, a.modeMgr.Mode()); ok {
		a.bus.Post(event.NewNavigationCommand(now, cmd))
		return true
	}

	a.bus.Post(event.NewRawKey(now, k))
	return false
}

// handleAmbientEvent is the catch-all bus subscriber for every event kind
// the mode manager doesn't itself own: structure/property changes update
// the document snapshot, live-region and notification events reach speech,
// and mode changes are log-only (the manager already speaks/cues them).
func (a *App) handleAmbientEvent(evt event.ScreenReaderEvent) {
	switch evt.Kind {
	case event.StructureChanged:
		d := evt.StructureChanged
		el, _ := d.NewSubtreeRoot.(access.Element)
		next := vbuffer.ApplyStructureChange(a.currentDoc(), d.RuntimeID, el)
		a.swapDoc(next)
	case event.LiveRegionChanged:
		d := evt.LiveRegion
		p := speech.Normal
		if d.Politeness == event.Assertive {
			p = speech.Interrupt
		}
		a.queue.Enqueue(speech.NewWithPriority(d.Text, p))
	case event.Notification:
		a.queue.Enqueue(speech.NewWithPriority(evt.NotificationEvt.Text, speech.High))
	case event.TypingEcho:
		// already enqueued by dispatchKey; nothing further to do here.
	case event.ModeChanged:
		logging.Component(a.logger, logging.ComponentMode).Debug("mode changed",
			zap.String("mode", evt.ModeChangedEvt.NewMode.String()),
			zap.String("reason", evt.ModeChangedEvt.Reason))
	}
}

func (a *App) currentWizardChan() chan keys.KeyEvent {
	a.wizardMu.Lock()
	defer a.wizardMu.Unlock()
	return a.wizardCh
}

// RunFirstRunWizard runs the seven-step first-run wizard (spec §4.17)
// against live key events, diverting dispatchKey's output away from
// echo/keymap/mode for the duration. Call it after Run has started the
// hook and consumer (so key events are actually flowing) and before
// driving any normal navigation. Returns the settings the wizard decided
// on and whether it ran to completion, exactly as wizard.Wizard.Run does.
func (a *App) RunFirstRunWizard(ctx context.Context) (config.Settings, bool, error) {
	ch := make(chan keys.KeyEvent, 16)

	a.wizardMu.Lock()
	a.wizardCh = ch
	a.wizardMu.Unlock()
	defer func() {
		a.wizardMu.Lock()
		a.wizardCh = nil
		a.wizardMu.Unlock()
	}()

	w := wizard.New(a.queue, a.backend, a.store)
	return w.Run(ctx, ch)
}

// Execute implements mode.Executor: it is only ever invoked with commands
// the mode manager has already decided are allowed through for the
// current Browse/Focus state (spec §4.10).
func (a *App) Execute(cmd keys.Command) {
	switch cmd {
	case keys.StopSpeech:
		a.sayAll.Stop()
		a.queue.Cancel()
	case keys.SayAll:
		a.sayAll.Start(a.runCtx, a.cur)
	case keys.ElementsList:
		a.runElementsList()
	case keys.ActivateElement:
		// Actual invocation of the focused control is a raw platform
		// accessibility call (out of scope, spec §1); entering Focus
		// mode is already handled by mode.Manager before Execute runs.
	case keys.ReadCurrentLine:
		a.speakText(a.cur.CurrentLine())
	case keys.ReadCurrentWord:
		a.speakText(a.cur.CurrentWord())
	case keys.NextChar, keys.PrevChar, keys.NextWord, keys.PrevWord, keys.NextLine, keys.PrevLine:
		a.moveCursor(cmd)
	default:
		a.quickNav(cmd)
	}
}

func (a *App) speakText(text string) {
	if text == "" {
		a.cues.Play(speech.CueBoundary)
		return
	}
	a.queue.Enqueue(speech.New(text))
}

func (a *App) moveCursor(cmd keys.Command) {
	var res vbuffer.MoveResult
	switch cmd {
	case keys.NextChar:
		res = a.cur.NextChar()
	case keys.PrevChar:
		res = a.cur.PrevChar()
	case keys.NextWord:
		res = a.cur.NextWord()
	case keys.PrevWord:
		res = a.cur.PrevWord()
	case keys.NextLine:
		res = a.cur.NextLine()
	case keys.PrevLine:
		res = a.cur.PrevLine()
	}
	a.announceMoveResult(res)
}

func (a *App) announceMoveResult(res vbuffer.MoveResult) {
	switch res.Cue {
	case vbuffer.CueBoundary:
		a.cues.Play(speech.CueBoundary)
	case vbuffer.CueWrap:
		a.cues.Play(speech.CueWrap)
		a.speakText(res.Text)
	default:
		a.speakText(res.Text)
	}
}

var quickNavKinds = map[keys.Command]nav.Kind{
	keys.NextHeading: nav.KindHeading, keys.PrevHeading: nav.KindHeading,
	keys.NextLink: nav.KindLink, keys.PrevLink: nav.KindLink,
	keys.NextLandmark: nav.KindLandmark, keys.PrevLandmark: nav.KindLandmark,
	keys.NextFormField: nav.KindFormField, keys.PrevFormField: nav.KindFormField,
	keys.NextTable: nav.KindTable, keys.PrevTable: nav.KindTable,
	keys.NextFocusable: nav.KindFocusable, keys.PrevFocusable: nav.KindFocusable,
}

var quickNavForward = map[keys.Command]bool{
	keys.NextHeading: true, keys.NextLink: true, keys.NextLandmark: true,
	keys.NextFormField: true, keys.NextTable: true, keys.NextFocusable: true,
	keys.HeadingLevel1: true, keys.HeadingLevel2: true, keys.HeadingLevel3: true,
	keys.HeadingLevel4: true, keys.HeadingLevel5: true, keys.HeadingLevel6: true,
}

// quickNav dispatches a heading/link/landmark/form-field/table/focusable
// navigation command against the current document snapshot (spec §4.14).
func (a *App) quickNav(cmd keys.Command) {
	kind, ok := quickNavKinds[cmd]
	pred := nav.AcceptAll
	if !ok {
		if level := keys.HeadingLevelOf(cmd); level > 0 {
			kind = nav.KindHeading
			pred = nav.HeadingLevel(level)
			ok = true
		}
	}
	if !ok {
		return
	}

	doc := a.currentDoc()
	current := 0
	if n, found := a.cur.CurrentNode(); found {
		current = n.ID
	}

	var result nav.Result
	if quickNavForward[cmd] {
		result = nav.Next(doc, kind, current, false, pred)
	} else {
		result = nav.Prev(doc, kind, current, false, pred)
	}

	switch result.Cue {
	case nav.CueBoundary:
		a.cues.Play(speech.CueBoundary)
		return
	case nav.CueWrap:
		a.cues.Play(speech.CueWrap)
	}
	if result.Node == nil {
		return
	}

	a.cur = vbuffer.NewCursor(doc)
	// position the cursor's offset at the start of the matched node's
	// text range so subsequent char/word/line movement continues from
	// the announced element.
	for i := 0; i < result.Node.Range.Start; i++ {
		a.cur.NextChar()
	}

	profile := nav.ProfileFor(a.store.Get().VerbosityLevel)
	a.speakText(nav.Describe(result.Node, profile, nav.PositionInfo{}, ""))
}

// runElementsList opens the dialog and, if a UI driver was supplied, blocks
// this goroutine (Execute's, the bus's single consumer) until the driver
// returns a Result, then repositions the cursor accordingly. Navigation and
// other bus events simply queue up while the dialog is modal, the same way
// a real modal overlay would hold off the rest of the command stream.
func (a *App) runElementsList() {
	ctrl := a.openElementsList()
	if a.elementsListUI == nil {
		return
	}
	res := a.elementsListUI(a.runCtx, ctrl)
	a.CloseElementsList(res)
}

// openElementsList opens the Elements-List dialog over a snapshot of the
// current document (spec §4.16). The dialog's on-screen rendering is a
// separate concern (tcell-driven, cmd/screenreader); App only owns the
// pure Controller state machine so it can be driven headlessly in tests.
func (a *App) openElementsList() *elementslist.Controller {
	a.elementsMu.Lock()
	defer a.elementsMu.Unlock()
	a.elements = elementslist.NewController(a.currentDoc())
	return a.elements
}

// ElementsList returns the currently open Elements-List controller, if
// any.
func (a *App) ElementsList() *elementslist.Controller {
	a.elementsMu.Lock()
	defer a.elementsMu.Unlock()
	return a.elements
}

// CloseElementsList discards the open dialog, jumping the cursor to res's
// node when res is a selection rather than a cancellation.
func (a *App) CloseElementsList(res *elementslist.Result) {
	a.elementsMu.Lock()
	a.elements = nil
	a.elementsMu.Unlock()

	if res == nil || res.Cancelled || res.Node == nil {
		return
	}
	doc := a.currentDoc()
	cur := vbuffer.NewCursor(doc)
	for i := 0; i < res.Node.Range.Start; i++ {
		cur.NextChar()
	}
	a.cur = cur
}
