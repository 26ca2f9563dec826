package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Contact is a single-point collision manifold between two bodies. Normal
// points from A to B. Contacts live for one simulation step only.
type Contact struct {
	A, B        *Body
	Normal      rl.Vector3
	Penetration float32
	Point       rl.Vector3
	Restitution float32 // min of the two materials
	Friction    float32 // sqrt(fA * fB)
}

// CheckCollision tests a body pair and returns a manifold, or nil when the
// bodies do not intersect. It never mutates its inputs. Shape pairs without
// an exact routine fall back to a bounding-sphere approximation.
func CheckCollision(a, b *Body) *Contact {
	if !a.Bounds.Intersects(b.Bounds) {
		return nil
	}

	switch {
	case a.Shape.Kind == ShapeBox && b.Shape.Kind == ShapeBox:
		return collideBoxBox(a, b)
	case a.Shape.Kind == ShapeSphere && b.Shape.Kind == ShapeSphere:
		return collideSphereSphere(a, b, a.Shape.Radius, b.Shape.Radius)
	case a.Shape.Kind == ShapeBox && b.Shape.Kind == ShapeSphere:
		return collideBoxSphere(a, b)
	case a.Shape.Kind == ShapeSphere && b.Shape.Kind == ShapeBox:
		return flipContact(collideBoxSphere(b, a))
	default:
		// Simple collision: both shapes approximated as bounding spheres.
		return collideSphereSphere(a, b, a.Shape.boundingRadius(), b.Shape.boundingRadius())
	}
}

// collideBoxBox does an axis-aligned penetration test per axis. The contact
// normal is the world axis of minimum penetration; exact ties resolve in
// X, Y, Z order. The contact point is the midpoint of the two centers, a
// deliberate simplification.
func collideBoxBox(a, b *Body) *Contact {
	delta := rl.Vector3Subtract(b.Position, a.Position)
	hA, hB := a.Shape.HalfExtents, b.Shape.HalfExtents

	px := hA.X + hB.X - math32.Abs(delta.X)
	py := hA.Y + hB.Y - math32.Abs(delta.Y)
	pz := hA.Z + hB.Z - math32.Abs(delta.Z)
	if px <= 0 || py <= 0 || pz <= 0 {
		return nil
	}

	pen := px
	normal := rl.Vector3{X: sign(delta.X)}
	if py < pen {
		pen = py
		normal = rl.Vector3{Y: sign(delta.Y)}
	}
	if pz < pen {
		pen = pz
		normal = rl.Vector3{Z: sign(delta.Z)}
	}

	return newContact(a, b, normal, pen,
		rl.Vector3Scale(rl.Vector3Add(a.Position, b.Position), 0.5))
}

func collideSphereSphere(a, b *Body, rA, rB float32) *Contact {
	delta := rl.Vector3Subtract(b.Position, a.Position)
	dist := rl.Vector3Length(delta)
	if dist <= 0 || dist >= rA+rB {
		return nil
	}

	normal := rl.Vector3Scale(delta, 1/dist)
	pen := rA + rB - dist
	point := rl.Vector3Add(a.Position, rl.Vector3Scale(normal, rA-pen/2))
	return newContact(a, b, normal, pen, point)
}

// collideBoxSphere clamps the sphere center to the box extents to find the
// closest point on the box surface. A sphere centered exactly inside the box
// gets a world-up normal to avoid a degenerate normalize.
func collideBoxSphere(box, sphere *Body) *Contact {
	h := box.Shape.HalfExtents
	local := rl.Vector3Subtract(sphere.Position, box.Position)
	closest := rl.Vector3{
		X: clamp(local.X, -h.X, h.X),
		Y: clamp(local.Y, -h.Y, h.Y),
		Z: clamp(local.Z, -h.Z, h.Z),
	}

	delta := rl.Vector3Subtract(local, closest)
	dist := rl.Vector3Length(delta)
	r := sphere.Shape.Radius
	if dist >= r {
		return nil
	}

	var normal rl.Vector3
	if dist == 0 {
		normal = rl.Vector3{Y: 1}
	} else {
		normal = rl.Vector3Scale(delta, 1/dist)
	}

	point := rl.Vector3Add(box.Position, closest)
	return newContact(box, sphere, normal, r-dist, point)
}

func newContact(a, b *Body, normal rl.Vector3, penetration float32, point rl.Vector3) *Contact {
	return &Contact{
		A:           a,
		B:           b,
		Normal:      normal,
		Penetration: penetration,
		Point:       point,
		Restitution: math32.Min(a.Material.Restitution, b.Material.Restitution),
		Friction:    math32.Sqrt(a.Material.Friction * b.Material.Friction),
	}
}

// flipContact swaps body order so the manifold's normal still points A to B.
func flipContact(c *Contact) *Contact {
	if c == nil {
		return nil
	}
	c.A, c.B = c.B, c.A
	c.Normal = rl.Vector3Scale(c.Normal, -1)
	return c
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
