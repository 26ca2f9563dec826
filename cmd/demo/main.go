// Interactive physics sandbox: falling bodies over a static floor with
// mouse raycast picking and a debug overlay for the world settings.
package main

import (
	"fmt"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"qweephys/internal/config"
	"qweephys/internal/physics"
)

const pickImpulse = 8.0

func main() {
	rl.InitWindow(1280, 720, "qweephys sandbox")
	defer rl.CloseWindow()
	rl.SetTargetFPS(120)

	settings, _ := config.Load(config.DefaultPath)

	world := physics.NewWorld()
	settings.Apply(world)
	buildScene(world)

	camera := rl.Camera3D{
		Position:   rl.Vector3{X: 14, Y: 10, Z: 14},
		Target:     rl.Vector3{X: 0, Y: 2, Z: 0},
		Up:         rl.Vector3{Y: 1},
		Fovy:       55,
		Projection: rl.CameraPerspective,
	}

	rng := rand.New(rand.NewSource(1))

	// Frames at high refresh rates are shorter than one fixed step, and the
	// world drops sub-step remainders, so the loop banks frame time itself.
	var accum float32

	for !rl.WindowShouldClose() {
		accum = pumpSteps(world, accum+rl.GetFrameTime())

		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			pickBody(world, camera)
		}
		if rl.IsMouseButtonPressed(rl.MouseRightButton) {
			dropSphere(world, rng)
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(18, 18, 24, 255))

		rl.BeginMode3D(camera)
		rl.DrawGrid(24, 1)
		for _, b := range world.Bodies() {
			drawBody(b)
		}
		rl.EndMode3D()

		drawOverlay(world)
		rl.EndDrawing()
	}

	_ = config.Save(config.DefaultPath, config.FromWorld(world))
}

// pumpSteps feeds whole fixed steps to the world and returns the unconsumed
// remainder for the next frame.
func pumpSteps(w *physics.World, accum float32) float32 {
	if w.FixedDeltaTime <= 0 {
		return 0
	}
	for accum >= w.FixedDeltaTime {
		w.Update(w.FixedDeltaTime)
		accum -= w.FixedDeltaTime
	}
	return accum
}

func buildScene(w *physics.World) {
	floor := physics.NewBody(
		physics.BoxShape(rl.Vector3{X: 12, Y: 0.5, Z: 12}),
		physics.Static,
		physics.Material{Density: 1, Friction: 0.6},
	)
	floor.Position = rl.Vector3{Y: -0.5}
	floor.UpdateAABB()
	w.AddBody(floor)

	// A small stack of boxes and a few loose spheres.
	for i := 0; i < 5; i++ {
		box := physics.NewBody(
			physics.BoxShape(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}),
			physics.Dynamic,
			physics.Material{Density: 1, Friction: 0.4, Restitution: 0.1},
		)
		box.Position = rl.Vector3{X: -2, Y: 0.5 + float32(i)*1.05, Z: 0}
		box.UpdateAABB()
		w.AddBody(box)
	}
	for i := 0; i < 4; i++ {
		sphere := physics.NewBody(
			physics.SphereShape(0.5),
			physics.Dynamic,
			physics.Material{Density: 1, Friction: 0.3, Restitution: 0.5},
		)
		sphere.Position = rl.Vector3{X: float32(i) * 1.4, Y: 4 + float32(i)*2, Z: 2}
		sphere.UpdateAABB()
		w.AddBody(sphere)
	}
}

// pickBody shoots a ray through the cursor and knocks the closest body
// along the view direction.
func pickBody(w *physics.World, camera rl.Camera3D) {
	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), camera)
	to := rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, 100))

	if hit, ok := w.Raycast(ray.Position, to); ok {
		hit.Body.Wake()
		hit.Body.ApplyImpulseAt(rl.Vector3Scale(ray.Direction, pickImpulse), hit.Point)
	}
}

func dropSphere(w *physics.World, rng *rand.Rand) {
	b := physics.NewBody(
		physics.SphereShape(0.3+rng.Float32()*0.4),
		physics.Dynamic,
		physics.Material{Density: 1, Friction: 0.3, Restitution: 0.4},
	)
	b.Position = rl.Vector3{
		X: rng.Float32()*8 - 4,
		Y: 10,
		Z: rng.Float32()*8 - 4,
	}
	b.UpdateAABB()
	w.AddBody(b)
}

func drawBody(b *physics.Body) {
	color := rl.Orange
	switch {
	case b.Type == physics.Static:
		color = rl.NewColor(60, 60, 75, 255)
	case b.Sleeping:
		color = rl.NewColor(120, 120, 130, 255)
	case b.Material.Ghost || b.Type == physics.Trigger:
		color = rl.NewColor(108, 99, 255, 120)
	}

	switch b.Shape.Kind {
	case physics.ShapeBox:
		size := rl.Vector3Scale(b.Shape.HalfExtents, 2)
		rl.DrawCubeV(b.Position, size, color)
		rl.DrawCubeWiresV(b.Position, size, rl.NewColor(10, 10, 15, 255))
	case physics.ShapeSphere:
		rl.DrawSphere(b.Position, b.Shape.Radius, color)
	case physics.ShapeCapsule:
		half := rl.Vector3{Y: b.Shape.Height / 2}
		rl.DrawCapsule(
			rl.Vector3Subtract(b.Position, half),
			rl.Vector3Add(b.Position, half),
			b.Shape.Radius, 12, 6, color)
	default:
		// Mesh bounds can sit off the body origin, so draw around the box center.
		rl.DrawCubeWiresV(b.Bounds.Center(),
			rl.Vector3Subtract(b.Bounds.Max, b.Bounds.Min), color)
	}
}

func drawOverlay(w *physics.World) {
	stats := w.Stats()

	rl.DrawRectangle(10, 10, 260, 210, rl.NewColor(18, 18, 24, 230))
	rl.DrawText(fmt.Sprintf("bodies: %d  sleeping: %d", stats.Bodies, stats.Sleeping), 20, 20, 10, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("pairs: %d  contacts: %d", stats.Pairs, stats.Contacts), 20, 36, 10, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("gravity: %.2f", stats.Gravity.Y), 20, 52, 10, rl.RayWhite)

	w.Enabled = gui.CheckBox(rl.NewRectangle(20, 72, 16, 16), "Enabled", w.Enabled)
	w.UseSpatialPartitioning = gui.CheckBox(rl.NewRectangle(20, 96, 16, 16), "Spatial grid", w.UseSpatialPartitioning)

	w.Gravity.Y = gui.Slider(rl.NewRectangle(20, 124, 160, 16), "",
		fmt.Sprintf("g %.1f", w.Gravity.Y), w.Gravity.Y, -30, 0)
	iterations := gui.Slider(rl.NewRectangle(20, 148, 160, 16), "",
		fmt.Sprintf("iter %d", w.Iterations), float32(w.Iterations), 1, 20)
	w.Iterations = int(iterations)

	rl.DrawText("left click: push body   right click: drop sphere", 20, 180, 10, rl.Gray)
	rl.DrawText(fmt.Sprintf("%d fps", rl.GetFPS()), 20, 196, 10, rl.Gray)
}
