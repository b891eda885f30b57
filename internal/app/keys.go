package app

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"easel/internal/scene"
)

// fillPalette cycles fill colors for newly added objects.
var fillPalette = []string{"red", "green", "blue", "yellow", "magenta", "cyan"}

// handleKey dispatches a single key event.
func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return ErrQuit
	case tcell.KeyTab:
		return a.cycleSelection(ctx)
	case tcell.KeyEnter:
		return a.commitMove(ctx)
	case tcell.KeyEscape:
		if a.moving {
			return a.commitMove(ctx)
		}
		return a.scene.ClearSelection(ctx)
	case tcell.KeyUp:
		return a.moveSelection(ctx, 0, -1)
	case tcell.KeyDown:
		return a.moveSelection(ctx, 0, 1)
	case tcell.KeyLeft:
		return a.moveSelection(ctx, -1, 0)
	case tcell.KeyRight:
		return a.moveSelection(ctx, 1, 0)
	case tcell.KeyCtrlR:
		return a.engine.Redo(ctx)
	case tcell.KeyRune:
		return a.handleRune(ctx, ev.Rune())
	}
	return nil
}

// handleRune dispatches printable key commands.
func (a *App) handleRune(ctx context.Context, r rune) error {
	switch r {
	case 'q':
		return ErrQuit
	case 'r':
		return a.addShape(ctx, scene.KindRect)
	case 'c':
		return a.addShape(ctx, scene.KindCircle)
	case 'p':
		return a.addShape(ctx, scene.KindPath)
	case 'l':
		return a.addShape(ctx, scene.KindLine)
	case 'a':
		return a.selectAll(ctx)
	case 'd':
		return a.deleteSelection(ctx)
	case 'm':
		return a.beginMove(ctx)
	case 'u':
		return a.engine.Undo(ctx)
	case 'U':
		return a.engine.Redo(ctx)
	case 'x':
		return a.scene.Clear(ctx)
	case 'X':
		return a.engine.ClearHistory(ctx)
	}
	return nil
}

// addShape inserts a new object at a staggered canvas position.
func (a *App) addShape(ctx context.Context, kind scene.Kind) error {
	n := a.scene.Len()
	obj := scene.NewObject(kind, 2+(n*7)%56, 1+((n*7)/56)*4, 6, 3)
	obj.Fill = fillPalette[a.palette%len(fillPalette)]
	a.palette++

	a.status = fmt.Sprintf("added %s", kind)
	return a.scene.Add(ctx, obj)
}

// cycleSelection selects the next object after the current selection head.
func (a *App) cycleSelection(ctx context.Context) error {
	objects := a.scene.Objects()
	if len(objects) == 0 {
		return nil
	}

	next := 0
	if sel := a.scene.Selection(); len(sel) > 0 {
		for i, obj := range objects {
			if obj.ID == sel[0] {
				next = (i + 1) % len(objects)
				break
			}
		}
	}
	return a.scene.Select(ctx, []string{objects[next].ID})
}

// selectAll selects every object; a multi-object selection arms the
// engine's compound-delete batching.
func (a *App) selectAll(ctx context.Context) error {
	objects := a.scene.Objects()
	if len(objects) == 0 {
		return nil
	}
	ids := make([]string, len(objects))
	for i, obj := range objects {
		ids[i] = obj.ID
	}
	return a.scene.Select(ctx, ids)
}

// deleteSelection removes the selected objects. Removing the first member
// is enough: for a multi-object selection the history engine's batcher
// removes the rest and records a single history entry.
func (a *App) deleteSelection(ctx context.Context) error {
	sel := a.scene.Selection()
	if len(sel) == 0 {
		return nil
	}
	a.status = fmt.Sprintf("deleted %d object(s)", len(sel))
	return a.scene.Remove(ctx, sel[0])
}

// beginMove starts a transient move of the selection.
func (a *App) beginMove(ctx context.Context) error {
	if a.moving {
		return nil
	}
	sel := a.scene.Selection()
	if len(sel) == 0 {
		a.status = "nothing selected"
		return nil
	}
	if err := a.scene.BeginTransient(ctx, sel); err != nil {
		return err
	}
	a.moving = true
	a.status = "moving (enter to commit)"
	return nil
}

// moveSelection nudges the selection during a move. Outside a move the
// arrows do nothing, so every arrow press is an intermediate frame that
// the history engine correctly ignores until commit.
func (a *App) moveSelection(ctx context.Context, dx, dy int) error {
	if !a.moving {
		return nil
	}
	for _, id := range a.scene.Selection() {
		if err := a.scene.Move(ctx, id, dx, dy); err != nil {
			return err
		}
	}
	return nil
}

// commitMove settles the transient move; the committed state becomes one
// history entry.
func (a *App) commitMove(ctx context.Context) error {
	if !a.moving {
		return nil
	}
	a.moving = false
	a.status = "move committed"
	return a.scene.CommitTransient(ctx)
}
