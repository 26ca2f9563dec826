// Stress test comparing brute-force and spatial-grid broad-phase collision detection
package main

import (
	"fmt"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"qweephys/internal/physics"
)

const stepsPerRun = 60

func main() {
	testCounts := []int{100, 250, 500, 1000, 2000}

	for _, count := range testCounts {
		testBroadPhase(count)
	}
}

// buildWorld spawns count dynamic bodies above a static floor. The seed is
// fixed so both broad-phase modes simulate the identical scene.
func buildWorld(count int, spatial bool) *physics.World {
	rng := rand.New(rand.NewSource(42))

	w := physics.NewWorld()
	w.UseSpatialPartitioning = spatial

	floor := physics.NewBody(
		physics.BoxShape(rl.Vector3{X: 100, Y: 0.5, Z: 100}),
		physics.Static,
		physics.DefaultMaterial(),
	)
	floor.Position = rl.Vector3{Y: -0.5}
	floor.UpdateAABB()
	w.AddBody(floor)

	// Spawn volume scales with count to keep density reasonable
	spawnSize := float32(20.0) + float32(count)/50.0

	for i := 0; i < count; i++ {
		var shape physics.Shape
		if i%2 == 0 {
			shape = physics.SphereShape(0.5 + rng.Float32()*0.5)
		} else {
			h := 0.3 + rng.Float32()*0.4
			shape = physics.BoxShape(rl.Vector3{X: h, Y: h, Z: h})
		}

		b := physics.NewBody(shape, physics.Dynamic, physics.DefaultMaterial())
		b.Position = rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: 2 + rng.Float32()*spawnSize,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		b.UpdateAABB()
		w.AddBody(b)
	}

	return w
}

func testBroadPhase(count int) {
	// Brute force O(n²)
	brute := buildWorld(count, false)
	bruteStart := time.Now()
	for i := 0; i < stepsPerRun; i++ {
		brute.Update(1.0 / 60.0)
	}
	bruteTime := time.Since(bruteStart) / stepsPerRun

	// Spatial grid
	grid := buildWorld(count, true)
	gridStart := time.Now()
	for i := 0; i < stepsPerRun; i++ {
		grid.Update(1.0 / 60.0)
	}
	gridTime := time.Since(gridStart) / stepsPerRun

	speedup := float64(bruteTime) / float64(gridTime)

	fmt.Printf("%5d bodies: brute %9v (%5d pairs) | grid %9v (%5d pairs) | %.1fx speedup\n",
		count,
		bruteTime.Round(time.Microsecond), brute.Stats().Pairs,
		gridTime.Round(time.Microsecond), grid.Stats().Pairs,
		speedup)
}
