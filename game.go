package main

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/ebitenui/ebitenui"

	"github.com/milk9111/spacesurvival/action"
	"github.com/milk9111/spacesurvival/config"
	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
	"github.com/milk9111/spacesurvival/ecs/entity"
	"github.com/milk9111/spacesurvival/ecs/system"
	"github.com/milk9111/spacesurvival/input"
	"github.com/milk9111/spacesurvival/prefabs"
	"github.com/milk9111/spacesurvival/save"
)

// hotbar is the tool order after the configured starting tool.
var hotbar = []string{"pickaxe", "axe", "drill"}

type Game struct {
	cfg   *config.Config
	log   *zap.Logger
	debug bool

	world     *ecs.World
	bus       *action.Bus
	scheduler *ecs.Scheduler

	gate        *system.ActionGateSystem
	menu        *system.MenuController
	cutscene    *system.CutsceneSystem
	motor       *system.MotorSystem
	toolbelt    *system.ToolbeltSystem
	swing       *system.SwingSystem
	resources   *system.ResourceSystem
	persistence *system.PersistenceSystem

	store   *save.Store
	watcher *prefabs.Watcher
	player  ecs.Entity

	pauseUI     *ebitenui.UI
	inventoryUI *inventoryUI

	frames int
	quit   bool
}

func NewGame(cfg *config.Config, log *zap.Logger, debug bool) (*Game, error) {
	prefabs.SetDiskRoot(cfg.Prefabs.Dir)

	g := &Game{
		cfg:   cfg,
		log:   log,
		debug: debug,
		world: ecs.NewWorld(),
		bus:   action.NewBus(),
	}

	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, err
	}
	lvl, err := entity.LoadLevel(g.world, spec)
	if err != nil {
		return nil, err
	}
	spawn := lvl.Spawn
	if s := cfg.Player.Spawn; s != nil {
		spawn = mgl32.Vec3{s[0], s[1], s[2]}
	}

	g.player, err = entity.NewPlayer(g.world, entity.PlayerOptions{
		Spawn:            spawn,
		MoveSpeed:        cfg.Player.MoveSpeed,
		SprintMultiplier: cfg.Player.SprintMultiplier,
		Sensitivity:      cfg.Player.LookSensitivity,
		EyeHeight:        cfg.Player.EyeHeight,
		Tools:            toolOrder(cfg.Player.Tool),
	})
	if err != nil {
		return nil, err
	}

	g.store, err = save.Open(cfg.Save.Path)
	if err != nil {
		return nil, err
	}

	g.gate = system.NewActionGateSystem(g.bus, log)
	g.cutscene = system.NewCutsceneSystem(g.bus, g.gate, log)
	g.motor = system.NewMotorSystem(g.bus, log)
	g.toolbelt = system.NewToolbeltSystem(g.bus, log)
	g.swing = system.NewSwingSystem(g.bus, g.gate, log)
	g.resources = system.NewResourceSystem(log)
	g.persistence = system.NewPersistenceSystem(g.store, cfg.Save.Slot, cfg.Save.AutosaveFrames, log)

	g.scheduler = ecs.NewScheduler(
		input.NewSampler(),
		g.gate,
		g.cutscene,
		g.toolbelt,
		system.NewCameraSystem(),
		g.motor,
		system.NewCooldownSystem(),
		g.swing,
		g.resources,
		g.persistence,
	)
	g.menu = system.NewMenuController(g.bus, g.gate, g.scheduler, log)

	restored, err := g.persistence.Restore(context.Background(), g.world)
	if err != nil {
		log.Error("restore failed", zap.Error(err))
	} else if restored {
		log.Info("restored save", zap.String("slot", cfg.Save.Slot))
	}

	if cfg.Prefabs.HotReload {
		g.watcher, err = prefabs.NewWatcher(cfg.Prefabs.Dir)
		if err != nil {
			log.Warn("prefab hot reload disabled", zap.Error(err))
		}
	}

	g.pauseUI = NewPauseUI(g)
	g.inventoryUI = newInventoryUI(g)
	return g, nil
}

func toolOrder(first string) []string {
	tools := []string{first}
	for _, name := range hotbar {
		if !slices.Contains(tools, name) {
			tools = append(tools, name)
		}
	}
	return tools
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() || g.quit {
		return ebiten.Termination
	}
	g.frames++

	g.reloadPrefabs()
	g.updateCursor()

	g.scheduler.Update(g.world)

	switch {
	case g.menu.Paused():
		g.pauseUI.Update()
	case g.menu.InventoryOpen():
		g.inventoryUI.Update()
	}
	return nil
}

func (g *Game) updateCursor() {
	mode := ebiten.CursorModeCaptured
	if g.menu.Paused() || g.menu.InventoryOpen() {
		mode = ebiten.CursorModeVisible
	}
	if ebiten.CursorMode() != mode {
		ebiten.SetCursorMode(mode)
	}
}

// reloadPrefabs swaps edited tool specs into the player's toolbelt.
func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	for _, path := range g.watcher.Drain() {
		if !prefabs.IsSpecFile(path) {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if !slices.Contains(toolOrder(g.cfg.Player.Tool), name) {
			continue
		}
		tool, err := prefabs.LoadToolSpec(name)
		if err != nil {
			g.log.Error("reload tool", zap.String("path", path), zap.Error(err))
			continue
		}
		n := system.ReplaceTool(g.world, tool)
		g.log.Info("tool reloaded", zap.String("tool", tool.Name), zap.Int("belts", n))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, g.overlay())

	switch {
	case g.menu.Paused():
		g.pauseUI.Draw(screen)
	case g.menu.InventoryOpen():
		g.inventoryUI.Draw(screen)
	}
}

func (g *Game) overlay() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f  frame %d\n", ebiten.ActualFPS(), g.frames)
	if pos, _, ok := system.PlayerState(g.world); ok {
		fmt.Fprintf(&b, "pos: %.2f %.2f %.2f\n", pos.X(), pos.Y(), pos.Z())
	}
	if rig, ok := ecs.Get(g.world, g.player, component.CameraRigComponent.Kind()); ok {
		fmt.Fprintf(&b, "yaw %.1f  pitch %.1f\n", rig.Yaw, rig.Pitch)
	}
	if tool, ok := ecs.Get(g.world, g.player, component.HarvestToolComponent.Kind()); ok {
		fmt.Fprintf(&b, "tool: %s\n", tool.Name)
	}
	if !g.debug {
		return b.String()
	}
	fmt.Fprintf(&b, "caps: %s  ui: %t\n", g.gate.Capabilities(), g.gate.InterfaceInputs())
	last, swings := g.swing.Last()
	fmt.Fprintf(&b, "swings: %d  last damaged: %d  excavated: %t\n", swings, len(last.Damaged), last.Excavated)
	fmt.Fprintf(&b, "cutscene: %t\n", g.cutscene.Active(g.world))
	for name, n := range g.resources.Harvested() {
		fmt.Fprintf(&b, "harvested %s: %d\n", name, n)
	}
	return b.String()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// saveNow writes the current slot immediately.
func (g *Game) saveNow() {
	if err := g.persistence.Save(context.Background(), g.world); err != nil {
		g.log.Error("save failed", zap.Error(err))
	}
}

// Close saves and releases everything NewGame opened.
func (g *Game) Close() {
	g.saveNow()
	g.menu.Close()
	g.cutscene.Close()
	g.motor.Close()
	g.toolbelt.Close()
	g.swing.Close()
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	if err := g.store.Close(); err != nil {
		g.log.Error("close save store", zap.Error(err))
	}
}
