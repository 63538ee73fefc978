package main

import (
	"fmt"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/jumpscroller/assets"
	"github.com/milk9111/jumpscroller/config"
	"github.com/milk9111/jumpscroller/input"
	"github.com/milk9111/jumpscroller/level"
	"github.com/milk9111/jumpscroller/levels"
	"github.com/milk9111/jumpscroller/physics"
	"github.com/milk9111/jumpscroller/prefabs"
	"github.com/milk9111/jumpscroller/scene"
	"github.com/milk9111/jumpscroller/sound"
	"github.com/milk9111/jumpscroller/sound/device"
	"github.com/milk9111/jumpscroller/timing"
)

// Game adapts the fixed-tick scenes to ebiten's frame callbacks.
type Game struct {
	cfg    config.Config
	logger *log.Logger

	clock timing.Clock
	pacer *timing.Pacer
	keys  *input.Keys
	binds bindings

	sound  sound.Engine
	assets *assets.Registry
	ctx    *scene.Context

	current scene.Scene
	pending scene.Scene

	surface *screenSurface
	pause   *ebitenui.UI
	fade    *scene.Fade

	prefabWatch   *prefabs.Watcher
	settingsWatch *config.SettingsWatcher
	settingsPath  string
	settingsDirty bool

	quit bool
}

func NewGame(cfg config.Config, logger *log.Logger) (*Game, error) {
	binds, err := newBindings(cfg)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:          cfg,
		logger:       logger,
		clock:        timing.NewSystemClock(),
		pacer:        timing.NewPacer(cfg.Timing.TPS, cfg.Timing.MaxCatchUp),
		keys:         input.NewKeys(),
		binds:        binds,
		settingsPath: config.SettingsPath(),
	}
	g.pacer.OnDrop(func(n int64) {
		g.logger.Debug("skipped ticks", "count", n)
	})

	g.sound = openSound(cfg.Audio, logger)
	settings, err := config.LoadSettings(g.settingsPath)
	if err != nil {
		logger.Warn("using default settings", "err", err)
	}
	g.applySettings(settings)

	g.assets, err = assets.Load(logger.WithPrefix("assets"), g.sound.SampleRate())
	if err != nil {
		g.sound.Shutdown()
		return nil, err
	}

	set, err := prefabs.LoadSet(cfg.Level)
	if err != nil {
		g.sound.Shutdown()
		return nil, fmt.Errorf("load level prefabs %s: %w", cfg.Level, err)
	}
	behaviors, err := levels.LoadBehaviors(set.Level.Tiles)
	if err != nil {
		logger.Warn("no tile behaviors, nothing will block", "err", err)
		behaviors = level.NewBehaviors()
	}

	g.ctx = &scene.Context{
		Keys:      g.keys,
		Sound:     g.sound,
		Physics:   physics.NewEngine(),
		Assets:    g.assets,
		Behaviors: behaviors,
		Prefabs:   set,
		Logger:    logger.WithPrefix("scene"),
		LoadLevel: func(name string) (*level.Level, error) {
			return levels.LoadLevel(name, behaviors)
		},
		Switch: func(next scene.Scene) { g.pending = next },
		OnVolume: func(_, _ float64) {
			g.settingsDirty = true
		},
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		TPS:    g.pacer.TPS(),
		Tile:   cfg.Tile,
		Debug:  cfg.Debug,
	}

	g.fade = scene.NewFade(g.pacer.TPS() / 2)
	g.surface = newScreenSurface(newArtCache())
	g.pause = NewPauseUI(g)
	g.watch()

	title := scene.NewTitle(g.ctx, func() scene.Scene {
		return scene.NewLevel(g.ctx, g.ctx.Prefabs)
	})
	if err := title.Init(); err != nil {
		g.Close()
		return nil, err
	}
	g.current = title
	return g, nil
}

func openSound(cfg config.Audio, logger *log.Logger) sound.Engine {
	dev, err := device.Open(cfg.Backend, cfg.SampleRate, cfg.BufferFrames)
	if err != nil {
		logger.Warn("audio disabled", "backend", cfg.Backend, "err", err)
		return sound.NewNopEngine()
	}
	e := sound.NewSoftEngine(dev, sound.Options{
		SampleRate:   cfg.SampleRate,
		MaxChannels:  cfg.Channels,
		BufferFrames: cfg.BufferFrames,
	}, logger.WithPrefix("sound"))
	e.Start()
	return e
}

// watch starts the prefab and settings watchers. Both are optional.
func (g *Game) watch() {
	w, err := prefabs.NewWatcher(prefabs.Dir(), prefabs.Dir()+"/scripts")
	if err != nil {
		g.logger.Debug("prefab hot reload off", "err", err)
	} else {
		g.prefabWatch = w
	}
	sw, err := config.WatchSettings(g.settingsPath, g.logger)
	if err != nil {
		g.logger.Debug("settings reload off", "err", err)
	} else {
		g.settingsWatch = sw
	}
}

func (g *Game) applySettings(s config.Settings) {
	g.sound.SetMusicVolume(s.MusicVolume)
	g.sound.SetSoundVolume(s.SoundVolume)
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if !ebiten.IsFocused() {
		g.keys.Clear()
	} else {
		g.binds.poll(g.keys)
	}
	g.drainWatchers()

	if menu := g.menu(); menu != nil && menu.IsOpen() {
		g.pause.Update()
	}
	g.pacer.Frame(g.clock.Now(), g.step)
	return nil
}

// step runs one simulation tick. A panicking scene is logged and the tick
// dropped so one bad tick does not end the game.
func (g *Game) step() {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("tick panicked", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	g.keys.Latch()
	g.current.Tick()
	g.fade.Tick()
	g.sound.ClientTick()

	if g.pending != nil {
		next := g.pending
		g.pending = nil
		if err := next.Init(); err != nil {
			g.logger.Error("scene init failed", "err", err)
		} else {
			g.current = next
			g.fade.In()
		}
	}
	if g.settingsDirty {
		if menu := g.menu(); menu == nil || !menu.IsOpen() {
			g.saveSettings()
		}
	}
}

func (g *Game) saveSettings() {
	g.settingsDirty = false
	s := config.Settings{MusicVolume: g.sound.MusicVolume(), SoundVolume: g.sound.SoundVolume()}
	if err := config.SaveSettings(g.settingsPath, s); err != nil {
		g.logger.Warn("settings not saved", "err", err)
	}
}

func (g *Game) drainWatchers() {
	if g.prefabWatch != nil {
		select {
		case c, ok := <-g.prefabWatch.Changes:
			if ok {
				g.reloadPrefabs(c)
			}
		case err, ok := <-g.prefabWatch.Errors:
			if ok {
				g.logger.Warn("prefab watcher", "err", err)
			}
		default:
		}
	}
	if g.settingsWatch != nil {
		select {
		case s, ok := <-g.settingsWatch.Updates:
			if ok {
				g.applySettings(s)
			}
		default:
		}
	}
}

func (g *Game) reloadPrefabs(c prefabs.Change) {
	set, err := prefabs.LoadSet(g.cfg.Level)
	if err != nil {
		g.logger.Warn("prefab reload failed", "file", c.Name(), "err", err)
		return
	}
	g.ctx.Prefabs = set
	if lvl, ok := g.current.(*scene.Level); ok {
		lvl.Reload(set)
	}
}

// menu is the in-game menu of the running level, or nil on the title.
func (g *Game) menu() *scene.Menu {
	if lvl, ok := g.current.(*scene.Level); ok {
		return lvl.Menu()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.screen = screen
	g.current.Render(g.surface, g.pacer.Alpha())
	g.fade.Render(g.surface)
	if menu := g.menu(); menu != nil && menu.IsOpen() {
		g.pause.Draw(screen)
	}
	if g.cfg.Debug {
		g.surface.DrawText(fmt.Sprintf("FPS %d  TPS %d  dropped %d", g.pacer.FPS(), g.pacer.TPS(), g.pacer.Dropped()), 4, g.cfg.Window.Height-16)
	}
	g.pacer.FrameRendered()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// Close stops audio and the watchers and flushes unsaved settings.
func (g *Game) Close() {
	if g.settingsDirty {
		g.saveSettings()
	}
	if g.prefabWatch != nil {
		_ = g.prefabWatch.Close()
	}
	if g.settingsWatch != nil {
		_ = g.settingsWatch.Close()
	}
	g.sound.Shutdown()
}
