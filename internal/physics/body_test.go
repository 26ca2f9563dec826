package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBodySphereMass(t *testing.T) {
	b := NewBody(SphereShape(1), Dynamic, Material{Density: 2})

	// 4/3 * pi * r^3 * density
	assert.InDelta(t, 4.0/3.0*rl.Pi*2, b.Mass, 1e-4)
	assert.InDelta(t, 1/b.Mass, b.InverseMass, 1e-6)
	// I = 0.4 * m * r^2 per axis
	assert.InDelta(t, 0.4*b.Mass, b.Inertia.X, 1e-4)
	assert.InDelta(t, b.Inertia.X, b.Inertia.Y, 1e-6)
	assert.InDelta(t, b.Inertia.X, b.Inertia.Z, 1e-6)
}

func TestNewBodyBoxMass(t *testing.T) {
	b := NewBody(BoxShape(rl.Vector3{X: 1, Y: 0.5, Z: 2}), Dynamic, Material{Density: 1})

	// Full extents 2 x 1 x 4.
	assert.InDelta(t, 8.0, b.Mass, 1e-4)
	assert.Greater(t, b.Inertia.X, float32(0))
	assert.Greater(t, b.Inertia.Y, float32(0))
	assert.Greater(t, b.Inertia.Z, float32(0))
}

func TestNewBodyMeshPlaceholderMass(t *testing.T) {
	verts := []rl.Vector3{{X: -1, Y: 0, Z: -1}, {X: 1, Y: 0, Z: -1}, {X: 0, Y: 1, Z: 1}}
	b := NewBody(MeshShape(verts), Dynamic, Material{Density: 100})

	// Mesh mass is a documented unit placeholder regardless of density.
	assert.Equal(t, float32(1), b.Mass)
	assert.Equal(t, rl.Vector3{X: 1, Y: 1, Z: 1}, b.Inertia)
}

func TestNewBodyDegenerateShapeClampsMass(t *testing.T) {
	b := NewBody(BoxShape(rl.Vector3{}), Dynamic, Material{Density: 1})

	require.Greater(t, b.Mass, float32(0))
	assert.Greater(t, b.InverseMass, float32(0))
}

func TestNonDynamicBodiesHaveZeroInverseMass(t *testing.T) {
	for _, bt := range []BodyType{Static, Kinematic, Trigger} {
		b := NewBody(SphereShape(1), bt, DefaultMaterial())
		assert.Equal(t, float32(0), b.InverseMass)
		assert.Equal(t, rl.Vector3{}, b.InverseInertia)
	}
}

func TestApplyImpulseDynamic(t *testing.T) {
	b := NewBody(SphereShape(1), Dynamic, Material{Density: 1})

	b.ApplyImpulse(rl.Vector3{X: b.Mass})
	assert.InDelta(t, 1.0, b.Velocity.X, 1e-5)
}

func TestApplyImpulseIgnoredForStatic(t *testing.T) {
	b := NewBody(SphereShape(1), Static, DefaultMaterial())

	b.ApplyImpulse(rl.Vector3{X: 100})
	assert.Equal(t, rl.Vector3{}, b.Velocity)
}

func TestApplyImpulseIgnoredWhileSleeping(t *testing.T) {
	b := NewBody(SphereShape(1), Dynamic, DefaultMaterial())
	b.Sleeping = true

	b.ApplyImpulse(rl.Vector3{X: 100})

	assert.Equal(t, rl.Vector3{}, b.Velocity)
	assert.True(t, b.Sleeping, "sleeping bodies ignore impulses entirely")
}

func TestApplyImpulseAtAddsSpin(t *testing.T) {
	b := NewBody(SphereShape(1), Dynamic, Material{Density: 1})

	// Off-center hit along +X at a point above the center spins around Z.
	b.ApplyImpulseAt(rl.Vector3{X: 1}, rl.Vector3{Y: 1})

	assert.Greater(t, b.Velocity.X, float32(0))
	assert.NotZero(t, b.AngularVelocity.Z)
}

func TestApplyForceAccumulates(t *testing.T) {
	b := NewBody(SphereShape(1), Dynamic, DefaultMaterial())

	b.ApplyForce(rl.Vector3{X: 1})
	b.ApplyForce(rl.Vector3{X: 2})
	assert.InDelta(t, 3.0, b.force.X, 1e-6)

	b.ApplyForceAt(rl.Vector3{X: 1}, rl.Vector3{Y: 1})
	assert.NotZero(t, b.torque.Z)
}

func TestWakeUpIdempotent(t *testing.T) {
	b := NewBody(SphereShape(1), Dynamic, DefaultMaterial())
	b.Velocity = rl.Vector3{X: 3}
	b.sleepTimer = 1.5

	b.Wake()

	assert.False(t, b.Sleeping)
	assert.Equal(t, float32(0), b.sleepTimer)
	assert.Equal(t, rl.Vector3{X: 3}, b.Velocity, "waking must not touch velocity")
}

func TestUpdateAABBTracksPosition(t *testing.T) {
	b := NewBody(SphereShape(2), Dynamic, DefaultMaterial())
	b.Position = rl.Vector3{X: 10, Y: 5, Z: -3}
	b.UpdateAABB()

	assert.Equal(t, rl.Vector3{X: 8, Y: 3, Z: -5}, b.Bounds.Min)
	assert.Equal(t, rl.Vector3{X: 12, Y: 7, Z: -1}, b.Bounds.Max)
}

func TestMeshAABBUsesVertexExtrema(t *testing.T) {
	verts := []rl.Vector3{{X: -2, Y: 0, Z: 1}, {X: 3, Y: 4, Z: -1}}
	b := NewBody(MeshShape(verts), Static, DefaultMaterial())
	b.Position = rl.Vector3{X: 1}
	b.UpdateAABB()

	assert.Equal(t, rl.Vector3{X: -1, Y: 0, Z: -1}, b.Bounds.Min)
	assert.Equal(t, rl.Vector3{X: 4, Y: 4, Z: 1}, b.Bounds.Max)
}

func TestCapsuleBoundingRadius(t *testing.T) {
	s := CapsuleShape(0.5, 2)
	assert.InDelta(t, 1.5, s.boundingRadius(), 1e-6)
}
