// menukit-demo renders a sample menu tree and exercises the row cache,
// highlight tracking, and action dispatch interactively.
package main

import (
	"log"
	"log/slog"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"menukit/cmd/menukit-demo/internal/theme"
	"menukit/cmd/menukit-demo/internal/ui"
	"menukit/internal/menu"
)

func main() {
	go func() {
		w := new(app.Window)
		w.Option(app.Title("Menukit Demo"))
		w.Option(app.Size(unit.Dp(420), unit.Dp(560)))

		if err := loop(w); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window) error {
	t := theme.NewTheme(material.NewTheme())

	view := ui.NewMenuView(t, buildDemoMenu())

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			view.Layout(gtx)

			e.Frame(gtx.Ops)
		}
	}
}

// demoPerformer toggles checkable items and logs everything else.
type demoPerformer struct{}

func (demoPerformer) PerformAction(action string, sender *menu.Item) {
	switch action {
	case "toggleGrid", "toggleRuler":
		if sender.State() == menu.StateOn {
			sender.SetState(menu.StateOff)
		} else {
			sender.SetState(menu.StateOn)
		}
	}
	slog.Info("action performed", "action", action, "item", sender.Title())
}

func buildDemoMenu() *menu.Menu {
	p := demoPerformer{}
	root := menu.NewMenu("View")

	grid := menu.NewItem("", "toggleGrid", "g")
	grid.SetTitleWithMnemonic("Show &Grid")
	grid.SetTarget(p)
	grid.SetKeyEquivalentModifierMask(menu.ModCommand)
	grid.SetOnStateImage("✓")
	grid.SetState(menu.StateOn)
	root.AddItem(grid)

	ruler := menu.NewItem("", "toggleRuler", "r")
	ruler.SetTitleWithMnemonic("Show &Ruler")
	ruler.SetTarget(p)
	ruler.SetKeyEquivalentModifierMask(menu.ModCommand)
	ruler.SetOnStateImage("✓")
	root.AddItem(ruler)

	root.AddItem(menu.SeparatorItem())

	zoom := menu.NewMenu("Zoom")
	for _, z := range []struct {
		title  string
		action string
		key    string
	}{
		{"Zoom In", "zoomIn", "+"},
		{"Zoom Out", "zoomOut", "-"},
		{"Actual Size", "zoomReset", "0"},
	} {
		it := menu.NewItem(z.title, z.action, z.key)
		it.SetTarget(p)
		it.SetKeyEquivalentModifierMask(menu.ModCommand)
		zoom.AddItem(it)
	}
	sorting := menu.NewItem("Sort Ascending", "sortAscending", "")
	sorting.SetTarget(p)
	sorting.SetIndentationLevel(1)
	zoom.AddItem(sorting)

	holder := menu.NewItem("Zoom", "", "")
	if err := holder.SetSubmenu(zoom); err != nil {
		log.Fatal(err)
	}
	root.AddItem(holder)

	root.AddItem(menu.SeparatorItem())

	disabled := menu.NewItem("Enter Full Screen", "fullScreen", "f")
	disabled.SetTarget(p)
	disabled.SetKeyEquivalentModifierMask(menu.ModCommand | menu.ModControl)
	disabled.SetEnabled(false)
	root.AddItem(disabled)

	return root
}
