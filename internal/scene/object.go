package scene

import (
	"github.com/google/uuid"

	"easel/internal/scene/codec"
)

// Kind identifies the shape of a scene object.
type Kind string

// Supported object kinds.
const (
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
	KindPath   Kind = "path"
	KindLine   Kind = "line"
)

// IsValid returns true for a known object kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindRect, KindCircle, KindPath, KindLine:
		return true
	default:
		return false
	}
}

// Object is a single drawable element of the scene.
type Object struct {
	// ID uniquely identifies the object within the scene.
	ID string

	// Kind is the object's shape.
	Kind Kind

	// X, Y is the top-left position on the canvas.
	X, Y int

	// W, H is the bounding size.
	W, H int

	// Fill is an optional fill color name.
	Fill string

	// Label is an optional display label.
	Label string
}

// NewObject creates an object of the given kind with a fresh ID.
func NewObject(kind Kind, x, y, w, h int) Object {
	return Object{
		ID:   uuid.NewString(),
		Kind: kind,
		X:    x,
		Y:    y,
		W:    w,
		H:    h,
	}
}

// toWire converts the object to its snapshot wire form.
func (o Object) toWire() codec.Object {
	return codec.Object{
		ID:    o.ID,
		Kind:  string(o.Kind),
		X:     o.X,
		Y:     o.Y,
		W:     o.W,
		H:     o.H,
		Fill:  o.Fill,
		Label: o.Label,
	}
}

// fromWire converts a snapshot wire object back to a scene object.
func fromWire(w codec.Object) Object {
	return Object{
		ID:    w.ID,
		Kind:  Kind(w.Kind),
		X:     w.X,
		Y:     w.Y,
		W:     w.W,
		H:     w.H,
		Fill:  w.Fill,
		Label: w.Label,
	}
}
