package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/jostle/internal/dynamo"
)

// Theme Colors
var (
	ColBg     = rl.NewColor(221, 160, 221, 255) // Plum
	ColStroke = rl.NewColor(0, 0, 0, 255)
	ColText   = rl.NewColor(70, 130, 180, 255) // Steel Blue
	ColBorder = rl.NewColor(160, 110, 160, 255)
)

type App struct {
	World   *dynamo.World
	Side    int32
	Running bool

	// ShowBorder outlines the ring of cells that is never scanned.
	ShowBorder bool
	lastMouse  rl.Vector2
	haveMouse  bool
}

// initWindow opens a square window whose side in pixels equals the world
// extent, so one pixel is one world unit.
func initWindow(side int32, fps int) {
	rl.InitWindow(side, side, "jostle")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(rl.KeyQ)
}

func NewApp(w *dynamo.World) *App {
	return &App{
		World:   w,
		Side:    int32(w.Geometry().Extent()),
		Running: true,
	}
}

// Run opens the window and blocks until it is closed.
func Run(w *dynamo.World, fps int) {
	app := NewApp(w)
	initWindow(app.Side, fps)
	defer rl.CloseWindow()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyB) {
		a.ShowBorder = !a.ShowBorder
	}

	// every frame the cursor moved spawns one particle under it
	pos := rl.GetMousePosition()
	if a.haveMouse && pos != a.lastMouse {
		x, y := screenToWorld(pos.X, pos.Y, float32(a.Side))
		a.World.OnPointerMove(x, y)
	}
	a.lastMouse, a.haveMouse = pos, true

	if a.Running || rl.IsKeyPressed(rl.KeyPeriod) {
		a.World.OnTick()
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.ShowBorder {
		a.drawBorder()
	}
	a.drawParticles()
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawHUD() {
	rl.DrawText(fmt.Sprintf("Elements: %d", a.World.ParticleCount()), 10, 10, 20, ColText)
	if !a.Running {
		rl.DrawText("PAUSED", 10, 34, 20, ColText)
	}
}
