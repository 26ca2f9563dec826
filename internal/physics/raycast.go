package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type RayHit struct {
	Body     *Body
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast scans every body between from and to and returns the closest hit.
// Each body is rejected via the cheap AABB slab test before its exact shape
// routine runs. Shapes without an exact routine report a placeholder hit in
// the middle of their AABB interval.
func (w *World) Raycast(from, to rl.Vector3) (RayHit, bool) {
	span := rl.Vector3Subtract(to, from)
	maxDistance := rl.Vector3Length(span)
	if maxDistance == 0 {
		return RayHit{}, false
	}
	direction := rl.Vector3Scale(span, 1/maxDistance)

	var closest RayHit
	closest.Distance = maxDistance
	hit := false

	for _, b := range w.bodies {
		tmin, tmax, ok := b.Bounds.RayIntersect(from, direction)
		if !ok || tmin > maxDistance {
			continue
		}

		var h RayHit
		switch b.Shape.Kind {
		case ShapeBox:
			h, ok = raycastBox(from, direction, b)
		case ShapeSphere:
			h, ok = raycastSphere(from, direction, b)
		default:
			// Placeholder: capsules and meshes hit at the midpoint of the
			// confirmed AABB interval, facing up.
			t := (tmin + tmax) / 2
			if t < 0 {
				ok = false
				break
			}
			h = RayHit{
				Point:    rl.Vector3Add(from, rl.Vector3Scale(direction, t)),
				Normal:   rl.Vector3{Y: 1},
				Distance: t,
			}
		}

		if ok && h.Distance <= closest.Distance {
			closest = h
			closest.Body = b
			hit = true
		}
	}

	return closest, hit
}

// raycastBox intersects the ray with the body's axis-aligned box using the
// slab method and derives the face normal from the entry point.
func raycastBox(origin, direction rl.Vector3, b *Body) (RayHit, bool) {
	bounds := b.Bounds
	tmin, tmax, ok := bounds.RayIntersect(origin, direction)
	if !ok {
		return RayHit{}, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 {
		return RayHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))

	// Normal from whichever face the entry point sits on.
	var normal rl.Vector3
	const epsilon = 0.001
	switch {
	case math32.Abs(point.X-bounds.Min.X) < epsilon:
		normal = rl.Vector3{X: -1}
	case math32.Abs(point.X-bounds.Max.X) < epsilon:
		normal = rl.Vector3{X: 1}
	case math32.Abs(point.Y-bounds.Min.Y) < epsilon:
		normal = rl.Vector3{Y: -1}
	case math32.Abs(point.Y-bounds.Max.Y) < epsilon:
		normal = rl.Vector3{Y: 1}
	case math32.Abs(point.Z-bounds.Min.Z) < epsilon:
		normal = rl.Vector3{Z: -1}
	default:
		normal = rl.Vector3{Z: 1}
	}

	return RayHit{Point: point, Normal: normal, Distance: t}, true
}

// raycastSphere solves the quadratic for the ray/sphere intersection and
// takes the smaller positive root.
func raycastSphere(origin, direction rl.Vector3, b *Body) (RayHit, bool) {
	center := b.Position
	radius := b.Shape.Radius

	oc := rl.Vector3Subtract(origin, center)
	ca := rl.Vector3DotProduct(direction, direction)
	cb := 2 * rl.Vector3DotProduct(oc, direction)
	cc := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := cb*cb - 4*ca*cc
	if discriminant < 0 {
		return RayHit{}, false
	}

	root := math32.Sqrt(discriminant)
	t := (-cb - root) / (2 * ca)
	if t < 0 {
		t = (-cb + root) / (2 * ca)
	}
	if t < 0 {
		return RayHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, center))
	return RayHit{Point: point, Normal: normal, Distance: t}, true
}
