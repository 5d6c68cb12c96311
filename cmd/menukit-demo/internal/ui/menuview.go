package ui

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"menukit/cmd/menukit-demo/internal/theme"
	"menukit/internal/menu"
)

// MenuView renders a menu tree with drill-in submenu navigation. Rows
// draw from each item's RowCache and refresh it only when an appearance
// mutation marked it dirty.
type MenuView struct {
	theme *theme.Theme
	root  *menu.Menu

	// stack is the navigation path; the last entry is the visible menu.
	stack []*menu.Menu

	list   widget.List
	back   widget.Clickable
	clicks map[*menu.Item]*widget.Clickable
}

// NewMenuView creates a view over a menu tree.
func NewMenuView(t *theme.Theme, root *menu.Menu) *MenuView {
	return &MenuView{
		theme: t,
		root:  root,
		stack: []*menu.Menu{root},
		list: widget.List{
			List: layout.List{
				Axis: layout.Vertical,
			},
		},
		clicks: make(map[*menu.Item]*widget.Clickable),
	}
}

func (v *MenuView) current() *menu.Menu {
	return v.stack[len(v.stack)-1]
}

func (v *MenuView) clickable(it *menu.Item) *widget.Clickable {
	c, ok := v.clicks[it]
	if !ok {
		c = &widget.Clickable{}
		v.clicks[it] = c
	}
	return c
}

// Layout renders the view.
func (v *MenuView) Layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, v.theme.Palette.Background)

	if v.back.Clicked(gtx) && len(v.stack) > 1 {
		v.stack = v.stack[:len(v.stack)-1]
	}

	cur := v.current()
	items := visibleItems(cur)

	return layout.UniformInset(v.theme.Config.Padding).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return v.layoutHeader(gtx, cur)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return material.List(v.theme.Theme, &v.list).Layout(gtx, len(items), func(gtx layout.Context, i int) layout.Dimensions {
					return v.layoutRow(gtx, cur, items[i])
				})
			}),
		)
	})
}

func (v *MenuView) layoutHeader(gtx layout.Context, cur *menu.Menu) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if len(v.stack) < 2 {
				return layout.Dimensions{}
			}
			return v.back.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				l := material.Body1(v.theme.Theme, "◂ "+v.stack[len(v.stack)-2].Title())
				l.Color = v.theme.Palette.Accent
				l.TextSize = v.theme.Config.FontCaption
				return l.Layout(gtx)
			})
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			h := material.H6(v.theme.Theme, cur.Title())
			h.Color = v.theme.Palette.Text
			return h.Layout(gtx)
		}),
	)
}

func (v *MenuView) layoutRow(gtx layout.Context, cur *menu.Menu, it *menu.Item) layout.Dimensions {
	if it.IsSeparator() {
		return v.layoutSeparator(gtx)
	}

	rc := it.RowCache()
	if rc.Dirty() {
		rc.Refresh(it)
	}

	click := v.clickable(it)
	if click.Clicked(gtx) {
		if sub := it.Submenu(); sub != nil {
			v.stack = append(v.stack, sub)
		} else {
			cur.Perform(it)
		}
	}
	if click.Hovered() && cur.HighlightedItem() != it {
		cur.SetHighlightedItem(it)
	}

	return click.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		if it.IsHighlighted() {
			size := image.Pt(gtx.Constraints.Max.X, gtx.Dp(unit.Dp(28)))
			rect := clip.UniformRRect(image.Rect(0, 0, size.X, size.Y), gtx.Dp(v.theme.Config.CornerRadius)).Op(gtx.Ops)
			paint.FillShape(gtx.Ops, v.theme.Palette.Highlight, rect)
		}

		inset := layout.Inset{
			Top:    unit.Dp(5),
			Bottom: unit.Dp(5),
			Left:   v.theme.Config.RowInset + v.theme.Config.IndentStep*unit.Dp(rc.Indent),
			Right:  v.theme.Config.RowInset,
		}
		return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					gtx.Constraints.Min.X = gtx.Dp(v.theme.Config.StateColumn)
					l := material.Body2(v.theme.Theme, string(rc.StateImage))
					l.Color = v.rowColor(it)
					return l.Layout(gtx)
				}),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					l := material.Body1(v.theme.Theme, rc.Title)
					l.Color = v.rowColor(it)
					l.TextSize = v.theme.Config.FontBody
					return l.Layout(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return v.layoutTrailer(gtx, it, rc)
				}),
			)
		})
	})
}

// layoutTrailer draws the right-hand column: a submenu arrow or the key
// equivalent display.
func (v *MenuView) layoutTrailer(gtx layout.Context, it *menu.Item, rc *menu.RowCache) layout.Dimensions {
	text := rc.KeyDisplay
	if it.HasSubmenu() {
		text = "▸"
	}
	if text == "" {
		return layout.Dimensions{}
	}
	l := material.Body2(v.theme.Theme, text)
	l.Color = v.theme.Palette.TextMuted
	if it.IsHighlighted() {
		l.Color = v.theme.Palette.Text
	}
	l.TextSize = v.theme.Config.FontCaption
	return l.Layout(gtx)
}

func (v *MenuView) layoutSeparator(gtx layout.Context) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(5), Bottom: unit.Dp(5)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		size := image.Pt(gtx.Constraints.Max.X, gtx.Dp(1))
		rect := clip.Rect{Max: size}.Op()
		paint.FillShape(gtx.Ops, v.theme.Palette.Separator, rect)
		return layout.Dimensions{Size: size}
	})
}

func (v *MenuView) rowColor(it *menu.Item) color.NRGBA {
	if !it.IsEnabled() {
		return v.theme.Palette.TextMuted
	}
	return v.theme.Palette.Text
}

func visibleItems(m *menu.Menu) []*menu.Item {
	var out []*menu.Item
	for _, it := range m.Items() {
		if it.IsHiddenOrHasHiddenAncestor() {
			continue
		}
		out = append(out, it)
	}
	return out
}
