package scene

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"easel/internal/event"
	"easel/internal/event/events"
	"easel/internal/scene/codec"
)

const publishSource = "scene"

// Scene is the mutable drawing document. Every mutation publishes a
// scene.* event on the bus, which is how the history engine observes it.
//
// The internal lock is never held while publishing, so event handlers may
// call back into the scene (the history engine's compound-removal path
// does exactly that).
type Scene struct {
	mu  sync.Mutex
	bus event.Bus

	objects []*Object
	index   map[string]*Object

	selection []string

	transient    bool
	transientIDs []string
}

// New creates an empty scene publishing on the given bus.
func New(bus event.Bus) *Scene {
	return &Scene{
		bus:   bus,
		index: make(map[string]*Object),
	}
}

// Add inserts an object into the scene. An empty ID is assigned a fresh one.
func (s *Scene) Add(ctx context.Context, obj Object) error {
	if !obj.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, obj.Kind)
	}
	if obj.ID == "" {
		obj.ID = uuid.NewString()
	}

	s.mu.Lock()
	if _, exists := s.index[obj.ID]; exists {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateObject, obj.ID)
	}
	stored := obj
	s.objects = append(s.objects, &stored)
	s.index[stored.ID] = &stored
	s.mu.Unlock()

	return s.bus.Publish(ctx, event.New(events.TopicSceneObjectAdded, events.ObjectAdded{
		ObjectID: stored.ID,
		Kind:     string(stored.Kind),
	}, publishSource))
}

// Remove deletes a single object from the scene.
func (s *Scene) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	obj, exists := s.index[id]
	if !exists {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	s.removeLocked(id)
	kind := obj.Kind
	s.mu.Unlock()

	return s.bus.Publish(ctx, event.New(events.TopicSceneObjectRemoved, events.ObjectRemoved{
		ObjectID: id,
		Kind:     string(kind),
	}, publishSource))
}

// RemoveAll deletes the given objects as one atomic document operation.
// Unknown IDs are skipped. A removal event is still published per object;
// callers that need a single history entry suppress capture around this
// call (the history engine's selection batcher does).
func (s *Scene) RemoveAll(ctx context.Context, ids []string) error {
	type removed struct {
		id   string
		kind Kind
	}

	s.mu.Lock()
	var gone []removed
	for _, id := range ids {
		if obj, exists := s.index[id]; exists {
			gone = append(gone, removed{id: id, kind: obj.Kind})
			s.removeLocked(id)
		}
	}
	s.mu.Unlock()

	for _, r := range gone {
		err := s.bus.Publish(ctx, event.New(events.TopicSceneObjectRemoved, events.ObjectRemoved{
			ObjectID: r.id,
			Kind:     string(r.kind),
		}, publishSource))
		if err != nil {
			return err
		}
	}
	return nil
}

// removeLocked unlinks an object. Caller holds the lock.
func (s *Scene) removeLocked(id string) {
	delete(s.index, id)
	for i, obj := range s.objects {
		if obj.ID == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			break
		}
	}
	for i, sel := range s.selection {
		if sel == id {
			s.selection = append(s.selection[:i], s.selection[i+1:]...)
			break
		}
	}
}

// Move translates an object by (dx, dy).
func (s *Scene) Move(ctx context.Context, id string, dx, dy int) error {
	s.mu.Lock()
	obj, exists := s.index[id]
	if !exists {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	obj.X += dx
	obj.Y += dy
	transient := s.transient
	s.mu.Unlock()

	return s.bus.Publish(ctx, event.New(events.TopicSceneObjectModified, events.ObjectModified{
		ObjectID:  id,
		Transient: transient,
	}, publishSource))
}

// Resize sets an object's bounding size.
func (s *Scene) Resize(ctx context.Context, id string, w, h int) error {
	s.mu.Lock()
	obj, exists := s.index[id]
	if !exists {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	obj.W = w
	obj.H = h
	transient := s.transient
	s.mu.Unlock()

	return s.bus.Publish(ctx, event.New(events.TopicSceneObjectModified, events.ObjectModified{
		ObjectID:  id,
		Transient: transient,
	}, publishSource))
}

// BeginTransient marks the start of a continuous operation over the given
// objects. Modifications until CommitTransient are intermediate frames.
func (s *Scene) BeginTransient(ctx context.Context, ids []string) error {
	s.mu.Lock()
	if s.transient {
		s.mu.Unlock()
		return ErrTransientActive
	}
	s.transient = true
	s.transientIDs = append([]string(nil), ids...)
	s.mu.Unlock()

	return s.bus.Publish(ctx, event.New(events.TopicSceneTransientStarted, events.TransientStarted{
		ObjectIDs: ids,
	}, publishSource))
}

// CommitTransient marks the end of the active continuous operation.
// The state at this moment is the operation's committed result.
func (s *Scene) CommitTransient(ctx context.Context) error {
	s.mu.Lock()
	if !s.transient {
		s.mu.Unlock()
		return ErrNoTransient
	}
	s.transient = false
	ids := s.transientIDs
	s.transientIDs = nil
	s.mu.Unlock()

	return s.bus.Publish(ctx, event.New(events.TopicSceneTransientCommitted, events.TransientCommitted{
		ObjectIDs: ids,
	}, publishSource))
}

// Select replaces the active selection wholesale. Selecting an empty set
// behaves like ClearSelection.
func (s *Scene) Select(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return s.ClearSelection(ctx)
	}

	s.mu.Lock()
	for _, id := range ids {
		if _, exists := s.index[id]; !exists {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrObjectNotFound, id)
		}
	}
	created := len(s.selection) == 0
	s.selection = append([]string(nil), ids...)
	s.mu.Unlock()

	t := events.TopicSceneSelectionUpdated
	if created {
		t = events.TopicSceneSelectionCreated
	}
	return s.bus.Publish(ctx, event.New(t, events.SelectionChanged{
		ObjectIDs: ids,
	}, publishSource))
}

// ClearSelection drops the active selection.
func (s *Scene) ClearSelection(ctx context.Context) error {
	s.mu.Lock()
	had := len(s.selection) > 0
	s.selection = nil
	s.mu.Unlock()

	if !had {
		return nil
	}
	return s.bus.Publish(ctx, event.New(events.TopicSceneSelectionCleared, events.SelectionChanged{}, publishSource))
}

// Clear removes every object from the scene at once.
func (s *Scene) Clear(ctx context.Context) error {
	s.mu.Lock()
	removed := len(s.objects)
	s.objects = nil
	s.index = make(map[string]*Object)
	s.selection = nil
	s.mu.Unlock()

	return s.bus.Publish(ctx, event.New(events.TopicSceneCleared, events.SceneCleared{
		Removed: removed,
	}, publishSource))
}

// Objects returns a copy of the scene's objects in insertion order.
func (s *Scene) Objects() []Object {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Object, len(s.objects))
	for i, obj := range s.objects {
		result[i] = *obj
	}
	return result
}

// Object returns a copy of a single object by ID.
func (s *Scene) Object(id string) (Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, exists := s.index[id]
	if !exists {
		return Object{}, false
	}
	return *obj, true
}

// Len returns the number of objects in the scene.
func (s *Scene) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// Selection returns a copy of the active selection, in selection order.
func (s *Scene) Selection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.selection...)
}

// Token serializes the current scene state into a snapshot token.
func (s *Scene) Token() (codec.Token, error) {
	s.mu.Lock()
	wire := make([]codec.Object, len(s.objects))
	for i, obj := range s.objects {
		wire[i] = obj.toWire()
	}
	s.mu.Unlock()

	return codec.Encode(codec.Document{Objects: wire})
}

// Restore replaces the scene's entire state from a snapshot token.
//
// The replacement republishes an object-added event for every restored
// object. During undo/redo these echoes arrive while the history engine
// holds its replay guard and are ignored; any other caller observes them
// as ordinary mutations.
func (s *Scene) Restore(ctx context.Context, t codec.Token) error {
	doc, err := codec.Decode(t)
	if err != nil {
		return err
	}

	objects := make([]*Object, len(doc.Objects))
	index := make(map[string]*Object, len(doc.Objects))
	for i, w := range doc.Objects {
		obj := fromWire(w)
		objects[i] = &obj
		index[obj.ID] = &obj
	}

	s.mu.Lock()
	s.objects = objects
	s.index = index
	s.selection = nil
	s.transient = false
	s.transientIDs = nil
	s.mu.Unlock()

	for _, obj := range objects {
		err := s.bus.Publish(ctx, event.New(events.TopicSceneObjectAdded, events.ObjectAdded{
			ObjectID: obj.ID,
			Kind:     string(obj.Kind),
		}, publishSource))
		if err != nil {
			return err
		}
	}

	return s.bus.Publish(ctx, event.New(events.TopicSceneRestored, events.SceneRestored{
		Objects: len(objects),
	}, publishSource))
}
