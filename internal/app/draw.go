package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"easel/internal/scene"
)

// kindRune is the glyph drawn inside an object's box.
var kindRune = map[scene.Kind]rune{
	scene.KindRect:   '▢',
	scene.KindCircle: '◯',
	scene.KindPath:   '~',
	scene.KindLine:   '/',
}

// fillColor maps fill names to terminal colors.
var fillColor = map[string]tcell.Color{
	"red":     tcell.ColorRed,
	"green":   tcell.ColorGreen,
	"blue":    tcell.ColorBlue,
	"yellow":  tcell.ColorYellow,
	"magenta": tcell.ColorDarkMagenta,
	"cyan":    tcell.ColorDarkCyan,
}

// draw renders the scene and the status line.
func (a *App) draw() {
	if a.screen == nil {
		return
	}
	a.screen.Clear()

	selected := make(map[string]bool)
	for _, id := range a.scene.Selection() {
		selected[id] = true
	}

	for _, obj := range a.scene.Objects() {
		a.drawObject(obj, selected[obj.ID])
	}

	if a.statusLineEnabled() {
		a.drawStatus()
	}

	a.screen.Show()
}

// drawObject renders one object as a bordered box.
func (a *App) drawObject(obj scene.Object, selected bool) {
	style := tcell.StyleDefault
	if c, ok := fillColor[obj.Fill]; ok {
		style = style.Foreground(c)
	}
	if selected {
		style = style.Reverse(true)
	}

	right := obj.X + obj.W - 1
	bottom := obj.Y + obj.H - 1

	for x := obj.X; x <= right; x++ {
		a.screen.SetContent(x, obj.Y, tcell.RuneHLine, nil, style)
		a.screen.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := obj.Y; y <= bottom; y++ {
		a.screen.SetContent(obj.X, y, tcell.RuneVLine, nil, style)
		a.screen.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
	a.screen.SetContent(obj.X, obj.Y, tcell.RuneULCorner, nil, style)
	a.screen.SetContent(right, obj.Y, tcell.RuneURCorner, nil, style)
	a.screen.SetContent(obj.X, bottom, tcell.RuneLLCorner, nil, style)
	a.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)

	glyph := kindRune[obj.Kind]
	a.screen.SetContent(obj.X+obj.W/2, obj.Y+obj.H/2, glyph, nil, style)
}

// drawStatus renders the status line on the bottom row.
func (a *App) drawStatus() {
	width, height := a.screen.Size()
	row := height - 1

	text := fmt.Sprintf(" objs:%d  undo:%d  redo:%d  %s",
		a.scene.Len(), a.engine.UndoDepth(), a.engine.RedoDepth(), a.status)

	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len([]rune(text)) {
			r = []rune(text)[x]
		}
		a.screen.SetContent(x, row, r, nil, style)
	}
}
