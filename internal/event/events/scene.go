package events

import "easel/internal/event/topic"

// Scene event topics.
const (
	// TopicSceneObjectAdded is published when an object is added to the scene.
	TopicSceneObjectAdded topic.Topic = "scene.object.added"

	// TopicSceneObjectRemoved is published when an object is removed from the scene.
	TopicSceneObjectRemoved topic.Topic = "scene.object.removed"

	// TopicSceneObjectModified is published when an object's geometry or style changes.
	TopicSceneObjectModified topic.Topic = "scene.object.modified"

	// TopicSceneTransientStarted is published when a continuous operation
	// (drag, resize) begins. Intermediate modified events follow.
	TopicSceneTransientStarted topic.Topic = "scene.transient.started"

	// TopicSceneTransientCommitted is published when a continuous operation
	// settles on its final state.
	TopicSceneTransientCommitted topic.Topic = "scene.transient.committed"

	// TopicSceneSelectionCreated is published when a selection is first made.
	TopicSceneSelectionCreated topic.Topic = "scene.selection.created"

	// TopicSceneSelectionUpdated is published when the selection membership changes.
	TopicSceneSelectionUpdated topic.Topic = "scene.selection.updated"

	// TopicSceneSelectionCleared is published when the selection is dropped.
	TopicSceneSelectionCleared topic.Topic = "scene.selection.cleared"

	// TopicSceneCleared is published when all objects are removed at once.
	TopicSceneCleared topic.Topic = "scene.cleared"

	// TopicSceneRestored is published after the scene's entire state is
	// replaced from a snapshot token.
	TopicSceneRestored topic.Topic = "scene.restored"
)

// ObjectAdded is published when an object is added to the scene.
type ObjectAdded struct {
	// ObjectID is the unique identifier of the object.
	ObjectID string

	// Kind is the object kind ("rect", "circle", ...).
	Kind string
}

// ObjectRemoved is published when an object is removed from the scene.
type ObjectRemoved struct {
	// ObjectID is the unique identifier of the removed object.
	ObjectID string

	// Kind is the object kind.
	Kind string
}

// ObjectModified is published when an object's geometry or style changes.
type ObjectModified struct {
	// ObjectID is the unique identifier of the object.
	ObjectID string

	// Transient is true when the change is an intermediate frame of a
	// continuous operation.
	Transient bool
}

// TransientStarted is published when a continuous operation begins.
type TransientStarted struct {
	// ObjectIDs are the objects involved in the operation.
	ObjectIDs []string
}

// TransientCommitted is published when a continuous operation settles.
type TransientCommitted struct {
	// ObjectIDs are the objects involved in the operation.
	ObjectIDs []string
}

// SelectionChanged is the payload for selection created/updated/cleared.
// For cleared, ObjectIDs is empty.
type SelectionChanged struct {
	// ObjectIDs are the members of the active selection, in order.
	ObjectIDs []string
}

// SceneCleared is published when all objects are removed at once.
type SceneCleared struct {
	// Removed is the number of objects that were removed.
	Removed int
}

// SceneRestored is published after a full state replacement.
type SceneRestored struct {
	// Objects is the number of objects in the restored state.
	Objects int
}
