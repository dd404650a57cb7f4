package main

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
	"github.com/milk9111/spacesurvival/ecs/system"
)

var (
	panelColor  = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	buttonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	white       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func uiFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

func newButton(label string, face *ebtext.Face, img *imageui.NineSlice, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: img, Pressed: img}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: white}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
	)
}

func newPanel(w, h int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(w, h),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
}

func newLabel(s string, face *ebtext.Face) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(s, face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func centered(panel *widget.Container) *ebitenui.UI {
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// NewPauseUI builds the pause menu. Buttons go through the menu controller
// so the capability flags are restored on resume.
func NewPauseUI(g *Game) *ebitenui.UI {
	face := uiFace()
	btnImg := imageui.NewNineSliceColor(buttonColor)

	panel := newPanel(g.cfg.Window.Width/2, g.cfg.Window.Height/2)
	panel.AddChild(newLabel("Paused", face))
	panel.AddChild(newButton("Resume", face, btnImg, func() { g.menu.SetPaused(false) }))
	panel.AddChild(newButton("Save", face, btnImg, g.saveNow))
	panel.AddChild(newButton("Quit", face, btnImg, func() { g.quit = true }))
	return centered(panel)
}

// inventoryUI lists the hotbar and the harvest tally. Slot buttons equip
// directly since the switch capability is locked while it is open.
type inventoryUI struct {
	g     *Game
	ui    *ebitenui.UI
	slots []*widget.Button
	names []string
	tally *widget.Text
}

func newInventoryUI(g *Game) *inventoryUI {
	face := uiFace()
	inv := &inventoryUI{g: g}
	btnImg := imageui.NewNineSliceColor(buttonColor)

	panel := newPanel(g.cfg.Window.Width/2, g.cfg.Window.Height/2)
	panel.AddChild(newLabel("Inventory", face))
	if belt, ok := ecs.Get(g.world, g.player, component.ToolbeltComponent.Kind()); ok {
		for i, tool := range belt.Tools {
			slot := i
			name := fmt.Sprintf(" %d  %s", i+1, tool.Name)
			btn := newButton(name, face, btnImg, func() {
				system.EquipSlot(g.world, g.player, slot)
			})
			inv.slots = append(inv.slots, btn)
			inv.names = append(inv.names, name[1:])
			panel.AddChild(btn)
		}
	}
	inv.tally = newLabel("", face)
	panel.AddChild(inv.tally)
	panel.AddChild(newButton("Close", face, btnImg, func() { g.menu.SetInventory(false) }))

	inv.ui = centered(panel)
	return inv
}

func (inv *inventoryUI) Update() {
	active := -1
	if belt, ok := ecs.Get(inv.g.world, inv.g.player, component.ToolbeltComponent.Kind()); ok {
		active = belt.Active
	}
	for i, btn := range inv.slots {
		text := btn.Text()
		if text == nil {
			continue
		}
		marker := " "
		if i == active {
			marker = ">"
		}
		text.Label = marker + inv.names[i]
	}
	inv.tally.Label = tallyText(inv.g.resources.Harvested())
	inv.ui.Update()
}

func (inv *inventoryUI) Draw(screen *ebiten.Image) {
	inv.ui.Draw(screen)
}

func tallyText(harvested map[string]int) string {
	if len(harvested) == 0 {
		return "nothing harvested yet"
	}
	names := make([]string, 0, len(harvested))
	for name := range harvested {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s x%d\n", name, harvested[name])
	}
	return strings.TrimSuffix(b.String(), "\n")
}
