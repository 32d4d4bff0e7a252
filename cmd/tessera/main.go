package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bloeys/nmage/engine"
	"github.com/bloeys/nmage/renderer/rend3dgl"
	"github.com/bloeys/nmage/timing"
	nmageimgui "github.com/bloeys/nmage/ui/imgui"
	"github.com/bloeys/tessera/internal/ansi"
	"github.com/bloeys/tessera/internal/assert"
	"github.com/bloeys/tessera/internal/astar"
	"github.com/bloeys/tessera/internal/config"
	"github.com/bloeys/tessera/internal/consts"
	"github.com/bloeys/tessera/internal/dijkstra"
	"github.com/bloeys/tessera/internal/fov"
	"github.com/bloeys/tessera/internal/glyphs"
	"github.com/bloeys/tessera/internal/grid"
	"github.com/bloeys/tessera/internal/input"
	"github.com/bloeys/tessera/internal/line"
	"github.com/bloeys/tessera/internal/movement"
	"github.com/bloeys/tessera/internal/render"
	"github.com/bloeys/tessera/internal/richtext"
	"github.com/bloeys/tessera/internal/terminal"
	"github.com/bloeys/tessera/internal/tile"
	"github.com/bloeys/tessera/internal/widgets"
	"github.com/google/uuid"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	fontPointSize = 24

	playerPriority = 10
	npcPriority    = 5

	fovRadius = 8
)

var _ engine.Game = &game{}

type game struct {
	win       *engine.Window
	rend      *rend3dgl.Rend3DGL
	imguiInfo nmageimgui.ImguiInfo

	cfg config.Config
	kb  config.Keybindings

	atlas    *glyphs.FontAtlas
	renderer *render.Renderer
	term     *terminal.Terminal
	in       *input.Input

	mapRect grid.Rect
	world   *grid.GridMap[tile.PathingProperties]

	player *movement.Actor
	npc    *movement.Actor

	npcFlees   bool
	npcSawUs   bool
	seekField  *grid.GridMap[float64]
	fleeField  *grid.GridMap[float64]
	states     *grid.GridMap[dijkstra.State]
	lightField *fov.Result

	log     *widgets.ScrollLog
	buttons *widgets.ButtonList

	moveRepeat *input.Repeat

	frameStartTime time.Time
}

func main() {

	cfg := config.Default()
	if len(os.Args) > 1 {
		loaded, err := config.Load(os.Args[1])
		if err != nil {
			fmt.Println("Failed to load config:", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
		os.Exit(1)
	}

	if err := engine.Init(); err != nil {
		fmt.Println("Failed to init engine:", err)
		os.Exit(1)
	}

	rend := rend3dgl.NewRend3DGL()
	winW := cfg.TerminalCols * cfg.TileWidth
	winH := cfg.TerminalRows * cfg.TileHeight
	win, err := engine.CreateOpenGLWindowCentered("tessera", int32(winW), int32(winH), engine.WindowFlags_RESIZABLE, rend)
	if err != nil {
		fmt.Println("Failed to create window:", err)
		os.Exit(1)
	}

	// We do our own fps limiting; driver vsync tends to busy-loop.
	engine.SetVSync(cfg.VSync)

	g := &game{
		win:       win,
		rend:      rend,
		imguiInfo: nmageimgui.NewImGUI(),
		cfg:       cfg,
		kb:        config.DefaultKeybindings(),
		in:        input.New(),

		moveRepeat: input.NewRepeat(300*time.Millisecond, 80*time.Millisecond),
	}

	g.win.EventCallbacks = append(g.win.EventCallbacks, g.handleSDLEvent)

	// Don't flash white while Init builds the atlas.
	g.win.SDLWin.GLSwap()

	engine.Run(g, g.win, g.imguiInfo)
}

func (g *game) handleSDLEvent(e sdl.Event) {

	switch e := e.(type) {

	case *sdl.KeyboardEvent:
		if e.Repeat == 0 {
			g.in.SetKey(e.Keysym.Sym, e.Type == sdl.KEYDOWN)
		}

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED && g.renderer != nil {
			w, h := g.win.SDLWin.GetSize()
			g.renderer.SetWindowSize(int(w), int(h))
		}
	}
}

func (g *game) Init() {

	var err error
	g.atlas, err = glyphs.Build(g.cfg.FontPath, fontPointSize)
	if err != nil {
		fmt.Println("Failed to build font atlas:", err)
		engine.Quit()
		os.Exit(1)
	}

	g.renderer, err = render.New(g.atlas, g.cfg.TerminalCols, g.cfg.TerminalRows, g.cfg.TileWidth, g.cfg.TileHeight)
	if err != nil {
		fmt.Println("Failed to init renderer:", err)
		engine.Quit()
		os.Exit(1)
	}
	w, h := g.win.SDLWin.GetSize()
	g.renderer.SetWindowSize(int(w), int(h))

	g.term = terminal.New(g.cfg.TerminalCols, g.cfg.TerminalRows)

	g.buildScene()
}

func (g *game) buildScene() {

	cols, rows := g.cfg.TerminalCols, g.cfg.TerminalRows
	g.mapRect = grid.NewRect(1, 1, cols*3/5, rows-2)

	g.world = grid.NewGridMap[tile.PathingProperties](g.mapRect.W, g.mapRect.H)
	g.world.Fill(tile.PathingProperties{Passable: true, Transparent: true})

	wall := tile.PathingProperties{}
	for _, p := range grid.NewRect(0, 0, g.mapRect.W, g.mapRect.H).PerimeterPoints(nil) {
		g.world.SetC(p, wall)
	}
	// A few pillars so FOV and pathing have something to work around.
	for _, p := range []grid.Coord{
		grid.C(8, 5), grid.C(8, 6), grid.C(8, 7),
		grid.C(15, 12), grid.C(16, 12), grid.C(17, 12),
		grid.C(24, 4), grid.C(24, 5),
		grid.C(12, 18), grid.C(13, 18), grid.C(14, 18), grid.C(14, 17),
	} {
		if g.world.InBounds(p) {
			g.world.SetC(p, wall)
		}
	}

	g.player = &movement.Actor{ID: uuid.New(), Priority: playerPriority, Pos: grid.C(3, 3)}
	g.npc = &movement.Actor{ID: uuid.New(), Priority: npcPriority, Pos: grid.C(g.mapRect.W-4, g.mapRect.H-4)}

	logRect := grid.NewRect(g.mapRect.Right()+2, 1, g.cfg.TerminalCols-g.mapRect.Right()-3, g.cfg.TerminalRows*2/3)
	g.log = widgets.NewScrollLog(logRect, 200)
	g.log.Frame.TopCaption = "Log"

	g.buttons = widgets.NewButtonList(logRect.X+1, logRect.Bottom()+2, true, "Toggle flee", "Reset", "Quit")

	g.recomputeFields()

	// Greeting through the legacy ANSI bridge, so SGR-colored output
	// lands in the same rich-text pipeline as everything else.
	greeting := ansi.ToRichText([]byte("\x1b[33mtessera\x1b[0m demo ready\n"))
	g.log.Append(richtext.Serialize(greeting))
	g.log.Append("move with arrows, click to inspect\n")
}

// recomputeFields rebuilds the dijkstra seek/flee fields (goal = the
// player) and the player's FOV. Called whenever either actor moved.
func (g *game) recomputeFields() {

	w, h := g.world.Width(), g.world.Height()

	if g.states == nil {
		g.states = grid.NewGridMap[dijkstra.State](w, h)
	}
	for i := 0; i < g.world.Len(); i++ {
		if g.world.Get(i).Passable {
			g.states.Set(i, dijkstra.Passable)
		} else {
			g.states.Set(i, dijkstra.Blocked)
		}
	}
	g.states.SetC(g.player.Pos, dijkstra.Goal)

	g.seekField = dijkstra.Calculate(g.states, grid.Chebyshev)
	g.fleeField = dijkstra.DeriveFlee(g.seekField, g.states, grid.Chebyshev, dijkstra.FleeMultiplier)

	g.lightField = fov.Calculate(func(c grid.Coord) bool {
		return !g.world.GetC(c).Transparent
	}, g.player.Pos, fovRadius, grid.Euclidean, w, h)
}

func (g *game) Update() {

	g.frameStartTime = time.Now()

	g.pollMouse()
	g.in.Update()

	if g.in.ActionPressed(g.kb.Action("quit")) {
		engine.Quit()
		return
	}

	moved := g.updateActors()
	if moved {
		g.recomputeFields()
	}

	g.updateWidgets()
	g.drawFrame()
}

// pollMouse feeds the raw SDL mouse state into the input layer,
// converted from window pixels to terminal cells through the same
// letterbox fit the renderer draws with.
func (g *game) pollMouse() {
	mx, my, mstate := sdl.GetMouseState()
	pressed := mstate&sdl.Button(sdl.BUTTON_LEFT) != 0
	g.in.SetMouse(pressed, g.pixelToCell(int(mx), int(my)))
}

func (g *game) pixelToCell(px, py int) grid.Coord {
	winW, winH := g.win.SDLWin.GetSize()
	contentW := float32(g.cfg.TerminalCols * g.cfg.TileWidth)
	contentH := float32(g.cfg.TerminalRows * g.cfg.TileHeight)

	scale := float32(winW) / contentW
	if s := float32(winH) / contentH; s < scale {
		scale = s
	}
	tx := (float32(winW) - contentW*scale) / 2
	ty := (float32(winH) - contentH*scale) / 2

	cx := int((float32(px) - tx) / scale / float32(g.cfg.TileWidth))
	cy := int((float32(py) - ty) / scale / float32(g.cfg.TileHeight))
	return grid.C(cx, cy)
}

// updateActors gathers this tick's movement intents (player from held
// keys, npc from the dijkstra gradient) and applies the winners of
// the priority resolution. Reports whether anything moved.
func (g *game) updateActors() bool {

	var dir grid.Direction
	switch {
	case g.in.ActionPressed(g.kb.Action("move_north")):
		dir = grid.North
	case g.in.ActionPressed(g.kb.Action("move_south")):
		dir = grid.South
	case g.in.ActionPressed(g.kb.Action("move_east")):
		dir = grid.East
	case g.in.ActionPressed(g.kb.Action("move_west")):
		dir = grid.West
	default:
		dir = grid.Null
	}

	intents := map[uuid.UUID]grid.Coord{}

	if g.moveRepeat.Update(dir != grid.Null, time.Now()) && dir != grid.Null {
		dest := g.player.Pos.Add(dir.Delta())
		if g.world.InBounds(dest) && g.world.GetC(dest).Passable {
			intents[g.player.ID] = dest
		}
	}

	field, seek := g.seekField, true
	if g.npcFlees {
		field, seek = g.fleeField, false
	}
	if npcDir, ok := dijkstra.BestDirection(field, g.states, g.npc.Pos, grid.Chebyshev, seek); ok {
		dest := g.npc.Pos.Add(npcDir.Delta())
		if dest != g.player.Pos {
			intents[g.npc.ID] = dest
		}
	}

	if len(intents) == 0 {
		return false
	}

	moved := false
	winners := movement.ResolveIntents([]*movement.Actor{g.player, g.npc}, intents)
	for id, dest := range winners {
		switch id {
		case g.player.ID:
			g.player.Pos = dest
			moved = true
		case g.npc.ID:
			g.npc.Pos = dest
			moved = true
		}
	}

	if moved {
		g.checkLineOfSight()
	}
	return moved
}

// checkLineOfSight walks a bresenham ray between the actors and logs
// when the npc gains or loses sight of the player.
func (g *game) checkLineOfSight() {

	sees := true
	for _, p := range line.Bresenham(g.npc.Pos, g.player.Pos) {
		if p == g.npc.Pos || p == g.player.Pos {
			continue
		}
		if !g.world.GetC(p).Transparent {
			sees = false
			break
		}
	}

	if sees != g.npcSawUs {
		g.npcSawUs = sees
		if sees {
			g.log.Append("<fc:R>the gnome spots you<fc:Y>\n")
		} else {
			g.log.Append("<fc:K>the gnome loses you<fc:Y>\n")
		}
	}
}

func (g *game) updateWidgets() {

	s := g.in.State()
	g.log.Update(s)

	out := g.buttons.Update(s)
	switch out.Triggered {
	case 0:
		g.npcFlees = !g.npcFlees
		if g.npcFlees {
			g.log.Append("gnome flees\n")
		} else {
			g.log.Append("gnome seeks\n")
		}
	case 1:
		g.buildScene()
	case 2:
		engine.Quit()
	}
}

func (g *game) drawFrame() {

	g.term.Fill(tile.Default())

	g.drawMap()
	g.drawPathPreview()
	g.drawActors()

	g.log.Draw(g.term)
	g.buttons.Draw(g.term)

	if consts.ModeDebug {
		g.win.SDLWin.SetTitle(fmt.Sprint("tessera FPS: ", int(timing.GetAvgFPS())))
	}
}

func (g *game) drawMap() {

	for y := 0; y < g.world.Height(); y++ {
		for x := 0; x < g.world.Width(); x++ {
			p := grid.C(x, y)
			light := g.lightField.Light.GetC(p)

			t := tile.Default()
			if g.world.GetC(p).Passable {
				t.Glyph = '·'
				t.ForegroundColor = shade(tile.DarkGrey.RGBA(), light)
			} else {
				t.Glyph = '#'
				t.ForegroundColor = shade(tile.BrightGrey.RGBA(), light)
			}
			if light <= 0 {
				t.Glyph = ' '
			}

			g.term.SetTile(g.mapRect.X+x, g.mapRect.Y+y, t)
		}
	}
}

// drawPathPreview overlays the A* path from the player to the hovered
// map cell.
func (g *game) drawPathPreview() {

	mouse := g.in.State().MouseCoord
	local := mouse.Sub(grid.C(g.mapRect.X, g.mapRect.Y))
	if !g.world.InBounds(local) || !g.world.GetC(local).Passable {
		return
	}

	path := astar.FindPath(g.player.Pos, local,
		g.world.Width(), g.world.Height(),
		func(c grid.Coord) bool { return g.world.GetC(c).Passable },
		astar.UnitWeight, grid.Chebyshev, false)

	for _, p := range path {
		if p == g.player.Pos {
			continue
		}
		g.term.UpdateTileFields(g.mapRect.X+p.X, g.mapRect.Y+p.Y, terminal.TileFields{
			Glyph:           runePtr('•'),
			ForegroundColor: colorPtr(tile.Gold.RGBA()),
		})
	}
}

func (g *game) drawActors() {

	pt := tile.Default()
	pt.Glyph = '@'
	pt.ForegroundColor = tile.White.RGBA()
	pt.Outlined = true
	pt.OutlineColor = tile.Black.RGBA()
	g.term.SetTile(g.mapRect.X+g.player.Pos.X, g.mapRect.Y+g.player.Pos.Y, pt)

	light := g.lightField.Light.GetC(g.npc.Pos)
	if light > 0 {
		nt := tile.Default()
		nt.Glyph = 'g'
		nt.ForegroundColor = shade(tile.BrightGreen.RGBA(), light)
		g.term.SetTile(g.mapRect.X+g.npc.Pos.X, g.mapRect.Y+g.npc.Pos.Y, nt)
	}
}

func (g *game) Render() {
	g.renderer.Sync(g.term)
	g.renderer.Render()
}

func (g *game) FrameEnd() {

	assert.T(g.player.Pos.InBounds(g.world.Width(), g.world.Height()), "player walked off the world at %v", g.player.Pos)

	if !g.cfg.LimitFPS {
		return
	}

	elapsed := time.Since(g.frameStartTime)
	// Sleep slightly short of the target to compensate for
	// over-sleeping.
	toSleep := g.cfg.FrameInterval() - elapsed - time.Millisecond
	if toSleep > 0 {
		time.Sleep(toSleep)
	}
}

func (g *game) DeInit() {
	if g.renderer != nil {
		g.renderer.Destroy()
	}
}

func shade(c tile.Color, light float64) tile.Color {
	if light > 1 {
		light = 1
	}
	if light < 0 {
		light = 0
	}
	return tile.Color{
		R: uint8(float64(c.R) * light),
		G: uint8(float64(c.G) * light),
		B: uint8(float64(c.B) * light),
		A: c.A,
	}
}

func runePtr(r rune) *rune              { return &r }
func colorPtr(c tile.Color) *tile.Color { return &c }
