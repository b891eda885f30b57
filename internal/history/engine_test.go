package history

import (
	"context"
	"errors"
	"sync"
	"testing"

	"easel/internal/event"
	"easel/internal/event/events"
	"easel/internal/scene"
	"easel/internal/scene/codec"
)

// appendRecorder counts history.appended events published after it was
// attached (the bootstrap append happens during New, before attachment).
type appendRecorder struct {
	payloads []events.HistoryAppended
}

func recordAppends(t *testing.T, bus event.Bus) *appendRecorder {
	t.Helper()
	r := &appendRecorder{}
	_, err := bus.SubscribeFunc(events.TopicHistoryAppended, func(_ context.Context, env event.Envelope) error {
		r.payloads = append(r.payloads, env.Payload.(events.HistoryAppended))
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe appended: %v", err)
	}
	return r
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *scene.Scene, event.Bus) {
	t.Helper()
	bus := event.NewBus()
	t.Cleanup(bus.Close)

	sc := scene.New(bus)
	eng, err := New(context.Background(), bus, sc, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(eng.Dispose)
	return eng, sc, bus
}

func addRect(t *testing.T, sc *scene.Scene, id string, x, y int) {
	t.Helper()
	err := sc.Add(context.Background(), scene.Object{ID: id, Kind: scene.KindRect, X: x, Y: y, W: 4, H: 4})
	if err != nil {
		t.Fatalf("Add(%s) failed: %v", id, err)
	}
}

func TestBootstrap(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if eng.CanUndo() {
		t.Error("CanUndo true with only the bootstrap entry")
	}
	if eng.CanRedo() {
		t.Error("CanRedo true on a fresh engine")
	}
	if got := eng.UndoDepth(); got != 0 {
		t.Errorf("UndoDepth = %d, want 0", got)
	}

	// Undo with nothing above the bootstrap is a quiet no-op.
	if err := eng.Undo(context.Background()); err != nil {
		t.Errorf("no-op Undo = %v, want nil", err)
	}
	if err := eng.Redo(context.Background()); err != nil {
		t.Errorf("no-op Redo = %v, want nil", err)
	}
}

func TestCaptureOnMutation(t *testing.T) {
	eng, sc, bus := newTestEngine(t)
	appends := recordAppends(t, bus)

	addRect(t, sc, "a", 0, 0)

	if len(appends.payloads) != 1 {
		t.Fatalf("recorded %d appends, want 1", len(appends.payloads))
	}
	if appends.payloads[0].Bootstrap {
		t.Error("mutation append flagged as bootstrap")
	}
	if !eng.CanUndo() {
		t.Error("CanUndo false after a mutation")
	}
	if got := eng.UndoDepth(); got != 1 {
		t.Errorf("UndoDepth = %d, want 1", got)
	}
}

func TestDedupUnchangedState(t *testing.T) {
	eng, sc, bus := newTestEngine(t)
	addRect(t, sc, "a", 5, 5)
	appends := recordAppends(t, bus)

	// A zero move publishes a modified event but reaches the same state.
	if err := sc.Move(context.Background(), "a", 0, 0); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	if len(appends.payloads) != 0 {
		t.Errorf("recorded %d appends for an unchanged state, want 0", len(appends.payloads))
	}
	if got := eng.UndoDepth(); got != 1 {
		t.Errorf("UndoDepth = %d, want 1", got)
	}
}

func TestTransientSuppression(t *testing.T) {
	eng, sc, bus := newTestEngine(t)
	addRect(t, sc, "a", 0, 0)
	appends := recordAppends(t, bus)
	ctx := context.Background()

	if err := sc.BeginTransient(ctx, []string{"a"}); err != nil {
		t.Fatalf("BeginTransient failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		if err := sc.Move(ctx, "a", 1, 0); err != nil {
			t.Fatalf("Move failed: %v", err)
		}
	}
	if len(appends.payloads) != 0 {
		t.Fatalf("recorded %d appends during a transient op, want 0", len(appends.payloads))
	}

	if err := sc.CommitTransient(ctx); err != nil {
		t.Fatalf("CommitTransient failed: %v", err)
	}
	if len(appends.payloads) != 1 {
		t.Fatalf("recorded %d appends after commit, want 1", len(appends.payloads))
	}

	// Undo skips every intermediate frame and restores the pre-drag state.
	if err := eng.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	obj, _ := sc.Object("a")
	if obj.X != 0 {
		t.Errorf("X after undo = %d, want 0", obj.X)
	}
}

func TestTransientCommitDedup(t *testing.T) {
	_, sc, bus := newTestEngine(t)
	addRect(t, sc, "a", 0, 0)
	appends := recordAppends(t, bus)
	ctx := context.Background()

	// A drag that returns to its starting point commits nothing new.
	if err := sc.BeginTransient(ctx, []string{"a"}); err != nil {
		t.Fatalf("BeginTransient failed: %v", err)
	}
	if err := sc.Move(ctx, "a", 3, 3); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if err := sc.Move(ctx, "a", -3, -3); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if err := sc.CommitTransient(ctx); err != nil {
		t.Fatalf("CommitTransient failed: %v", err)
	}

	if len(appends.payloads) != 0 {
		t.Errorf("recorded %d appends for a round-trip drag, want 0", len(appends.payloads))
	}
}

func TestUndoAbortsTransient(t *testing.T) {
	eng, sc, _ := newTestEngine(t)
	ctx := context.Background()

	addRect(t, sc, "a", 0, 0)
	if err := sc.BeginTransient(ctx, []string{"a"}); err != nil {
		t.Fatalf("BeginTransient failed: %v", err)
	}

	// An undo mid-drag restores the whole document. That implicitly aborts
	// the drag, so capture suppression must not outlive the replay.
	if err := eng.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if sc.Len() != 0 {
		t.Fatalf("scene has %d objects after undo, want 0", sc.Len())
	}

	addRect(t, sc, "b", 1, 1)
	if got := eng.UndoDepth(); got != 1 {
		t.Errorf("UndoDepth = %d, want 1 (mutation after aborted transient not captured)", got)
	}
	if !eng.CanUndo() {
		t.Error("CanUndo false after a mutation following an aborted transient")
	}
}

func TestRedoAbortsTransient(t *testing.T) {
	eng, sc, _ := newTestEngine(t)
	ctx := context.Background()

	addRect(t, sc, "a", 0, 0)
	if err := eng.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	if err := sc.BeginTransient(ctx, nil); err != nil {
		t.Fatalf("BeginTransient failed: %v", err)
	}
	if err := eng.Redo(ctx); err != nil {
		t.Fatalf("Redo failed: %v", err)
	}

	addRect(t, sc, "b", 1, 1)
	if got := eng.UndoDepth(); got != 2 {
		t.Errorf("UndoDepth = %d, want 2 (mutation after aborted transient not captured)", got)
	}
}

func TestUndoDisarmsSelectionBatch(t *testing.T) {
	eng, sc, _ := newTestEngine(t)
	ctx := context.Background()

	addRect(t, sc, "a", 0, 0)
	addRect(t, sc, "b", 1, 1)
	addRect(t, sc, "c", 2, 2)
	if err := sc.Select(ctx, []string{"a", "b", "c"}); err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	// The replay drops the scene's selection, so the pending batch must be
	// dropped with it: a later lone removal is not a compound delete.
	if err := eng.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if err := sc.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if sc.Len() != 1 {
		t.Fatalf("scene has %d objects, want 1", sc.Len())
	}
	if _, ok := sc.Object("b"); !ok {
		t.Error("stale pending selection removed object b")
	}
}

func TestCompoundDelete(t *testing.T) {
	eng, sc, bus := newTestEngine(t)
	ctx := context.Background()

	addRect(t, sc, "a", 0, 0)
	addRect(t, sc, "b", 1, 1)
	addRect(t, sc, "c", 2, 2)
	if err := sc.Select(ctx, []string{"a", "b", "c"}); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	appends := recordAppends(t, bus)

	removedEvents := 0
	_, err := bus.SubscribeFunc(events.TopicSceneObjectRemoved, func(_ context.Context, _ event.Envelope) error {
		removedEvents++
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe removed: %v", err)
	}

	// Deleting one member of a multi-object selection removes all of it.
	if err := sc.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if sc.Len() != 0 {
		t.Fatalf("scene has %d objects after compound delete, want 0", sc.Len())
	}
	if removedEvents != 3 {
		t.Errorf("observed %d removed events, want 3", removedEvents)
	}
	if len(appends.payloads) != 1 {
		t.Fatalf("recorded %d appends for a compound delete, want 1", len(appends.payloads))
	}

	// One undo brings the whole selection back.
	if err := eng.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if sc.Len() != 3 {
		t.Errorf("scene has %d objects after undo, want 3", sc.Len())
	}
}

func TestSingleSelectionDeleteNotBatched(t *testing.T) {
	_, sc, bus := newTestEngine(t)
	ctx := context.Background()

	addRect(t, sc, "a", 0, 0)
	addRect(t, sc, "b", 1, 1)
	if err := sc.Select(ctx, []string{"a"}); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	appends := recordAppends(t, bus)

	if err := sc.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if sc.Len() != 1 {
		t.Errorf("scene has %d objects, want 1", sc.Len())
	}
	if len(appends.payloads) != 1 {
		t.Errorf("recorded %d appends, want 1", len(appends.payloads))
	}
}

func TestSelectionChangeNotCaptured(t *testing.T) {
	eng, sc, bus := newTestEngine(t)
	ctx := context.Background()

	addRect(t, sc, "a", 0, 0)
	addRect(t, sc, "b", 1, 1)
	appends := recordAppends(t, bus)

	if err := sc.Select(ctx, []string{"a"}); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if err := sc.Select(ctx, []string{"a", "b"}); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if err := sc.ClearSelection(ctx); err != nil {
		t.Fatalf("ClearSelection failed: %v", err)
	}

	if len(appends.payloads) != 0 {
		t.Errorf("recorded %d appends for selection changes, want 0", len(appends.payloads))
	}
	if got := eng.UndoDepth(); got != 2 {
		t.Errorf("UndoDepth = %d, want 2", got)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	eng, sc, _ := newTestEngine(t)
	ctx := context.Background()

	states := []struct {
		id   string
		kind scene.Kind
	}{
		{"a", scene.KindRect},
		{"b", scene.KindCircle},
		{"c", scene.KindPath},
	}
	for i, st := range states {
		err := sc.Add(ctx, scene.Object{ID: st.id, Kind: st.kind, X: i, Y: i, W: 2, H: 2})
		if err != nil {
			t.Fatalf("Add(%s) failed: %v", st.id, err)
		}
	}

	// Walk all the way back to the empty bootstrap state.
	for want := 2; want >= 0; want-- {
		if err := eng.Undo(ctx); err != nil {
			t.Fatalf("Undo failed: %v", err)
		}
		if sc.Len() != want {
			t.Fatalf("scene has %d objects, want %d", sc.Len(), want)
		}
	}
	if eng.CanUndo() {
		t.Error("CanUndo true at the bootstrap")
	}
	if err := eng.Undo(ctx); err != nil {
		t.Fatalf("no-op Undo failed: %v", err)
	}
	if sc.Len() != 0 {
		t.Errorf("no-op undo changed the scene")
	}

	// Walk all the way forward again.
	for want := 1; want <= 3; want++ {
		if err := eng.Redo(ctx); err != nil {
			t.Fatalf("Redo failed: %v", err)
		}
		if sc.Len() != want {
			t.Fatalf("scene has %d objects, want %d", sc.Len(), want)
		}
	}
	if eng.CanRedo() {
		t.Error("CanRedo true after redoing everything")
	}

	objs := sc.Objects()
	for i, st := range states {
		if objs[i].ID != st.id || objs[i].Kind != st.kind {
			t.Errorf("object[%d] = %+v, want %s %s", i, objs[i], st.id, st.kind)
		}
	}
}

func TestRedoInvalidatedByMutation(t *testing.T) {
	eng, sc, _ := newTestEngine(t)
	ctx := context.Background()

	addRect(t, sc, "a", 0, 0)
	addRect(t, sc, "b", 1, 1)
	if err := eng.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !eng.CanRedo() {
		t.Fatal("CanRedo false after undo")
	}

	addRect(t, sc, "c", 2, 2)

	if eng.CanRedo() {
		t.Error("redo stack survived a new mutation")
	}
	if err := eng.Redo(ctx); err != nil {
		t.Fatalf("no-op Redo failed: %v", err)
	}
	if sc.Len() != 2 {
		t.Errorf("no-op redo changed the scene: %d objects", sc.Len())
	}
}

func TestReplayNotCaptured(t *testing.T) {
	eng, sc, bus := newTestEngine(t)
	ctx := context.Background()

	addRect(t, sc, "a", 0, 0)
	addRect(t, sc, "b", 1, 1)
	appends := recordAppends(t, bus)

	if err := eng.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if err := eng.Redo(ctx); err != nil {
		t.Fatalf("Redo failed: %v", err)
	}

	if len(appends.payloads) != 0 {
		t.Errorf("recorded %d appends during replay, want 0", len(appends.payloads))
	}
	if got := eng.UndoDepth(); got != 2 {
		t.Errorf("UndoDepth = %d, want 2", got)
	}
}

func TestUndoneEventCarriesUndoneToken(t *testing.T) {
	eng, sc, bus := newTestEngine(t)
	ctx := context.Background()

	addRect(t, sc, "a", 0, 0)
	before, err := sc.Token()
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}

	var undone []events.HistoryUndone
	_, err = bus.SubscribeFunc(events.TopicHistoryUndone, func(_ context.Context, env event.Envelope) error {
		undone = append(undone, env.Payload.(events.HistoryUndone))
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe undone: %v", err)
	}

	if err := eng.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	if len(undone) != 1 {
		t.Fatalf("recorded %d undone events, want 1", len(undone))
	}
	if undone[0].Token != string(before) {
		t.Errorf("undone token = %s, want the state undone away from", undone[0].Token)
	}
}

func TestClearHistory(t *testing.T) {
	eng, sc, bus := newTestEngine(t)
	ctx := context.Background()

	addRect(t, sc, "a", 0, 0)
	addRect(t, sc, "b", 1, 1)
	if err := eng.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	cleared := 0
	_, err := bus.SubscribeFunc(events.TopicHistoryCleared, func(_ context.Context, _ event.Envelope) error {
		cleared++
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe cleared: %v", err)
	}

	if err := eng.ClearHistory(ctx); err != nil {
		t.Fatalf("ClearHistory failed: %v", err)
	}

	if eng.CanUndo() || eng.CanRedo() {
		t.Error("stacks survived ClearHistory")
	}
	if cleared != 1 {
		t.Errorf("recorded %d cleared events, want 1", cleared)
	}
	if sc.Len() != 1 {
		t.Errorf("ClearHistory touched the document: %d objects", sc.Len())
	}

	// A mutation after clearing appends on top of the new bootstrap, and
	// one undo returns to the state that was current when history cleared.
	addRect(t, sc, "c", 2, 2)
	if err := eng.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if sc.Len() != 1 {
		t.Errorf("scene has %d objects, want 1", sc.Len())
	}
}

func TestWithMaxEntries(t *testing.T) {
	eng, sc, _ := newTestEngine(t, WithMaxEntries(3))
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		addRect(t, sc, id, 0, 0)
	}

	// Bootstrap plus the two most recent entries.
	if got := eng.UndoDepth(); got != 2 {
		t.Fatalf("UndoDepth = %d, want 2", got)
	}

	if err := eng.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if err := eng.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	// The floor is the bootstrap entry, the empty scene.
	if err := eng.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if sc.Len() != 0 {
		t.Errorf("scene has %d objects at the bootstrap, want 0", sc.Len())
	}
}

// fakeDoc is a Document with scriptable failures.
type fakeDoc struct {
	mu         sync.Mutex
	token      codec.Token
	tokenErr   error
	restoreErr error
	restored   []codec.Token
	removed    [][]string
}

func (d *fakeDoc) Token() (codec.Token, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tokenErr != nil {
		return "", d.tokenErr
	}
	return d.token, nil
}

func (d *fakeDoc) Restore(_ context.Context, t codec.Token) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.restoreErr != nil {
		return d.restoreErr
	}
	d.token = t
	d.restored = append(d.restored, t)
	return nil
}

func (d *fakeDoc) RemoveAll(_ context.Context, ids []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.removed = append(d.removed, ids)
	return nil
}

func (d *fakeDoc) set(t codec.Token) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.token = t
}

func (d *fakeDoc) fail(tokenErr, restoreErr error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tokenErr = tokenErr
	d.restoreErr = restoreErr
}

// mutate publishes a mutation event the way a document would.
func mutate(t *testing.T, bus event.Bus, doc *fakeDoc, token codec.Token) {
	t.Helper()
	doc.set(token)
	err := bus.Publish(context.Background(), event.New(events.TopicSceneObjectAdded, events.ObjectAdded{
		ObjectID: string(token),
		Kind:     "rect",
	}, "test"))
	if err != nil {
		t.Fatalf("publish mutation: %v", err)
	}
}

func newFakeEngine(t *testing.T) (*Engine, *fakeDoc, event.Bus) {
	t.Helper()
	bus := event.NewBus()
	t.Cleanup(bus.Close)

	doc := &fakeDoc{token: "boot"}
	eng, err := New(context.Background(), bus, doc)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(eng.Dispose)
	return eng, doc, bus
}

func TestRestoreFailureRollsBack(t *testing.T) {
	eng, doc, bus := newFakeEngine(t)
	ctx := context.Background()

	mutate(t, bus, doc, "a")
	mutate(t, bus, doc, "b")

	var failures []events.HistoryError
	_, err := bus.SubscribeFunc(events.TopicHistoryError, func(_ context.Context, env event.Envelope) error {
		failures = append(failures, env.Payload.(events.HistoryError))
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe error topic: %v", err)
	}

	boom := errors.New("disk gone")
	doc.fail(nil, boom)

	err = eng.Undo(ctx)
	if !errors.Is(err, ErrRestoreFailed) {
		t.Fatalf("Undo = %v, want ErrRestoreFailed", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("Undo error does not wrap the cause: %v", err)
	}

	if len(failures) != 1 || failures[0].Op != "undo" {
		t.Errorf("failures = %+v, want one undo entry", failures)
	}
	if got := eng.UndoDepth(); got != 2 {
		t.Errorf("UndoDepth after failed undo = %d, want 2", got)
	}
	if eng.CanRedo() {
		t.Error("failed undo left an entry on the redo stack")
	}

	// Recovery: the same undo works once the document cooperates again.
	doc.fail(nil, nil)
	if err := eng.Undo(ctx); err != nil {
		t.Fatalf("Undo after recovery failed: %v", err)
	}
	if got, _ := doc.Token(); got != "a" {
		t.Errorf("document token = %s, want a", got)
	}
	if !eng.CanRedo() {
		t.Error("CanRedo false after a successful undo")
	}
}

func TestRedoFailureRollsBack(t *testing.T) {
	eng, doc, bus := newFakeEngine(t)
	ctx := context.Background()

	mutate(t, bus, doc, "a")
	if err := eng.Undo(ctx); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	doc.fail(nil, errors.New("disk gone"))
	if err := eng.Redo(ctx); !errors.Is(err, ErrRestoreFailed) {
		t.Fatalf("Redo = %v, want ErrRestoreFailed", err)
	}

	if !eng.CanRedo() {
		t.Error("failed redo consumed the redo entry")
	}
	if eng.CanUndo() {
		t.Error("failed redo left an entry on the undo stack")
	}
}

func TestCaptureFailurePublishesError(t *testing.T) {
	eng, doc, bus := newFakeEngine(t)

	var failures []events.HistoryError
	_, err := bus.SubscribeFunc(events.TopicHistoryError, func(_ context.Context, env event.Envelope) error {
		failures = append(failures, env.Payload.(events.HistoryError))
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe error topic: %v", err)
	}

	doc.fail(errors.New("serialize failed"), nil)
	mutate(t, bus, doc, "a")

	if len(failures) != 1 || failures[0].Op != "capture" {
		t.Errorf("failures = %+v, want one capture entry", failures)
	}
	if eng.CanUndo() {
		t.Error("failed capture still pushed an entry")
	}
}

func TestGuardSuppressesEchoes(t *testing.T) {
	eng, doc, bus := newFakeEngine(t)

	mutate(t, bus, doc, "a")
	release := eng.guard.Acquire()
	mutate(t, bus, doc, "b")
	mutate(t, bus, doc, "c")
	release()

	if got := eng.UndoDepth(); got != 1 {
		t.Errorf("UndoDepth = %d, want 1 (guarded mutations captured)", got)
	}
}

func TestDispose(t *testing.T) {
	eng, doc, bus := newFakeEngine(t)
	ctx := context.Background()

	mutate(t, bus, doc, "a")
	eng.Dispose()

	// Mutation events after disposal are inert.
	mutate(t, bus, doc, "b")
	if eng.CanUndo() {
		t.Error("disposed engine still capturing")
	}

	if err := eng.Undo(ctx); !errors.Is(err, ErrDisposed) {
		t.Errorf("Undo = %v, want ErrDisposed", err)
	}
	if err := eng.Redo(ctx); !errors.Is(err, ErrDisposed) {
		t.Errorf("Redo = %v, want ErrDisposed", err)
	}
	if err := eng.ClearHistory(ctx); !errors.Is(err, ErrDisposed) {
		t.Errorf("ClearHistory = %v, want ErrDisposed", err)
	}

	// Dispose is idempotent.
	eng.Dispose()
}
