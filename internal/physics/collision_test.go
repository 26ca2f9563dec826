package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dynamicBody(shape Shape, pos rl.Vector3) *Body {
	b := NewBody(shape, Dynamic, DefaultMaterial())
	b.Position = pos
	b.UpdateAABB()
	return b
}

func TestCheckCollisionAABBEarlyOut(t *testing.T) {
	a := dynamicBody(SphereShape(1), rl.Vector3{})
	b := dynamicBody(SphereShape(1), rl.Vector3{X: 5})

	assert.Nil(t, CheckCollision(a, b), "separated AABBs should produce no manifold")
}

func TestSphereSphereContact(t *testing.T) {
	a := dynamicBody(SphereShape(1), rl.Vector3{})
	b := dynamicBody(SphereShape(1), rl.Vector3{X: 1.5})

	c := CheckCollision(a, b)
	require.NotNil(t, c)

	assert.InDelta(t, 0.5, c.Penetration, 1e-6)
	assert.InDelta(t, 1.0, c.Normal.X, 1e-6)
	assert.InDelta(t, 0.0, c.Normal.Y, 1e-6)
	assert.InDelta(t, 0.0, c.Normal.Z, 1e-6)
	// Contact offset from A along the normal by rA - penetration/2.
	assert.InDelta(t, 0.75, c.Point.X, 1e-6)
}

func TestSphereSphereCoincidentCenters(t *testing.T) {
	a := dynamicBody(SphereShape(1), rl.Vector3{})
	b := dynamicBody(SphereShape(1), rl.Vector3{})

	assert.Nil(t, CheckCollision(a, b), "zero distance has no usable normal")
}

func TestBoxBoxMinimumPenetrationAxis(t *testing.T) {
	a := dynamicBody(BoxShape(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}), rl.Vector3{})
	b := dynamicBody(BoxShape(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}), rl.Vector3{Z: 0.5})

	c := CheckCollision(a, b)
	require.NotNil(t, c)

	assert.InDelta(t, 0.5, c.Penetration, 1e-6)
	assert.Equal(t, float32(0), c.Normal.X)
	assert.Equal(t, float32(0), c.Normal.Y)
	assert.Equal(t, float32(1), c.Normal.Z)
}

func TestBoxBoxTieBreakPrefersX(t *testing.T) {
	// Fully symmetric overlap: every axis penetrates equally, X must win.
	a := dynamicBody(BoxShape(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}), rl.Vector3{})
	b := dynamicBody(BoxShape(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}), rl.Vector3{})

	c := CheckCollision(a, b)
	require.NotNil(t, c)

	assert.Equal(t, float32(1), c.Normal.X)
	assert.Equal(t, float32(0), c.Normal.Y)
	assert.Equal(t, float32(0), c.Normal.Z)
	assert.InDelta(t, 1.0, c.Penetration, 1e-6)
}

func TestBoxBoxContactPointIsMidpoint(t *testing.T) {
	a := dynamicBody(BoxShape(rl.Vector3{X: 1, Y: 1, Z: 1}), rl.Vector3{X: 2})
	b := dynamicBody(BoxShape(rl.Vector3{X: 1, Y: 1, Z: 1}), rl.Vector3{X: 3})

	c := CheckCollision(a, b)
	require.NotNil(t, c)
	assert.InDelta(t, 2.5, c.Point.X, 1e-6)
}

func TestBoxSphereContact(t *testing.T) {
	box := dynamicBody(BoxShape(rl.Vector3{X: 1, Y: 1, Z: 1}), rl.Vector3{})
	sphere := dynamicBody(SphereShape(0.5), rl.Vector3{X: 1.25})

	c := CheckCollision(box, sphere)
	require.NotNil(t, c)

	assert.Same(t, box, c.A)
	assert.Same(t, sphere, c.B)
	assert.InDelta(t, 1.0, c.Normal.X, 1e-6)
	assert.InDelta(t, 0.25, c.Penetration, 1e-6)
	// Closest point sits on the box face.
	assert.InDelta(t, 1.0, c.Point.X, 1e-6)
}

func TestSphereBoxMirrorsOrdering(t *testing.T) {
	sphere := dynamicBody(SphereShape(0.5), rl.Vector3{X: 1.25})
	box := dynamicBody(BoxShape(rl.Vector3{X: 1, Y: 1, Z: 1}), rl.Vector3{})

	c := CheckCollision(sphere, box)
	require.NotNil(t, c)

	// Body order is preserved and the normal still points A to B.
	assert.Same(t, sphere, c.A)
	assert.Same(t, box, c.B)
	assert.InDelta(t, -1.0, c.Normal.X, 1e-6)
	assert.InDelta(t, 0.25, c.Penetration, 1e-6)
}

func TestBoxSphereCenterInsideBox(t *testing.T) {
	box := dynamicBody(BoxShape(rl.Vector3{X: 1, Y: 1, Z: 1}), rl.Vector3{})
	sphere := dynamicBody(SphereShape(0.5), rl.Vector3{})

	c := CheckCollision(box, sphere)
	require.NotNil(t, c)

	// Degenerate zero-distance case falls back to world up.
	assert.Equal(t, float32(0), c.Normal.X)
	assert.Equal(t, float32(1), c.Normal.Y)
	assert.Equal(t, float32(0), c.Normal.Z)
}

func TestFallbackBoundingSphereCollision(t *testing.T) {
	capsule := dynamicBody(CapsuleShape(0.5, 1), rl.Vector3{})
	box := dynamicBody(BoxShape(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}), rl.Vector3{X: 1})

	c := CheckCollision(capsule, box)
	require.NotNil(t, c, "capsule/box pair should fall back to bounding spheres")
	assert.InDelta(t, 1.0, c.Normal.X, 1e-6)
}

func TestCombinedMaterialProperties(t *testing.T) {
	a := NewBody(SphereShape(1), Dynamic, Material{Density: 1, Friction: 0.9, Restitution: 0.8})
	b := NewBody(SphereShape(1), Dynamic, Material{Density: 1, Friction: 0.4, Restitution: 0.2})
	b.Position = rl.Vector3{X: 1.5}
	b.UpdateAABB()

	c := CheckCollision(a, b)
	require.NotNil(t, c)

	assert.InDelta(t, 0.2, c.Restitution, 1e-6, "restitution combines as min")
	assert.InDelta(t, 0.6, c.Friction, 1e-6, "friction combines as sqrt(fA*fB)")
}

func TestCheckCollisionDoesNotMutate(t *testing.T) {
	a := dynamicBody(SphereShape(1), rl.Vector3{})
	b := dynamicBody(SphereShape(1), rl.Vector3{X: 1.5})

	posA, velA := a.Position, a.Velocity
	CheckCollision(a, b)

	assert.Equal(t, posA, a.Position)
	assert.Equal(t, velA, a.Velocity)
}
