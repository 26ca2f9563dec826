package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapeCapsule
	ShapeMesh
)

// Shape describes collision geometry. It is immutable once attached to a body:
// mass properties and the cached AABB are derived from it at construction time.
type Shape struct {
	Kind        ShapeKind
	HalfExtents rl.Vector3   // box
	Radius      float32      // sphere, capsule
	Height      float32      // capsule cylinder section, Y aligned
	Vertices    []rl.Vector3 // mesh, local space
}

func BoxShape(halfExtents rl.Vector3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: halfExtents}
}

func SphereShape(radius float32) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

func CapsuleShape(radius, height float32) Shape {
	return Shape{Kind: ShapeCapsule, Radius: radius, Height: height}
}

func MeshShape(vertices []rl.Vector3) Shape {
	return Shape{Kind: ShapeMesh, Vertices: vertices}
}

// boundingRadius returns a conservative sphere radius for the shape, used by
// the simple-collision fallback and the stress benchmark.
func (s Shape) boundingRadius() float32 {
	switch s.Kind {
	case ShapeBox:
		return rl.Vector3Length(s.HalfExtents)
	case ShapeSphere:
		return s.Radius
	case ShapeCapsule:
		return s.Radius + s.Height/2
	case ShapeMesh:
		var max float32
		for _, v := range s.Vertices {
			if l := rl.Vector3Length(v); l > max {
				max = l
			}
		}
		return max
	}
	return 0
}

// massProperties derives mass and the diagonal inertia approximation from the
// shape and material density. Mesh shapes get a constant unit mass/inertia:
// integrating a convex hull is out of scope, and the placeholder keeps mesh
// bodies simulable.
func (s Shape) massProperties(density float32) (mass float32, inertia rl.Vector3) {
	switch s.Kind {
	case ShapeBox:
		w, h, d := s.HalfExtents.X*2, s.HalfExtents.Y*2, s.HalfExtents.Z*2
		mass = w * h * d * density
		inertia = rl.Vector3{
			X: mass / 12 * (h*h + d*d),
			Y: mass / 12 * (w*w + d*d),
			Z: mass / 12 * (w*w + h*h),
		}
	case ShapeSphere:
		r := s.Radius
		mass = 4.0 / 3.0 * rl.Pi * r * r * r * density
		i := 0.4 * mass * r * r
		inertia = rl.Vector3{X: i, Y: i, Z: i}
	case ShapeCapsule:
		// Cylinder plus two hemispheres; inertia kept isotropic on purpose.
		r, h := s.Radius, s.Height
		volume := rl.Pi*r*r*h + 4.0/3.0*rl.Pi*r*r*r
		mass = volume * density
		i := mass * (0.4*r*r + h*h/12)
		inertia = rl.Vector3{X: i, Y: i, Z: i}
	case ShapeMesh:
		mass = 1
		inertia = rl.Vector3{X: 1, Y: 1, Z: 1}
	}
	return mass, inertia
}

// aabbAt returns the world-space bounds of the shape centered at pos.
// Orientation is ignored: boxes collide axis-aligned and the other shapes'
// bounds are symmetric enough for the broad phase.
func (s Shape) aabbAt(pos rl.Vector3) AABB {
	switch s.Kind {
	case ShapeBox:
		return NewAABBFromCenter(pos, rl.Vector3Scale(s.HalfExtents, 2))
	case ShapeSphere:
		d := s.Radius * 2
		return NewAABBFromCenter(pos, rl.Vector3{X: d, Y: d, Z: d})
	case ShapeCapsule:
		d := s.Radius * 2
		return NewAABBFromCenter(pos, rl.Vector3{X: d, Y: s.Height + d, Z: d})
	case ShapeMesh:
		if len(s.Vertices) == 0 {
			return AABB{Min: pos, Max: pos}
		}
		min := s.Vertices[0]
		max := s.Vertices[0]
		for _, v := range s.Vertices[1:] {
			min.X = math32.Min(min.X, v.X)
			min.Y = math32.Min(min.Y, v.Y)
			min.Z = math32.Min(min.Z, v.Z)
			max.X = math32.Max(max.X, v.X)
			max.Y = math32.Max(max.Y, v.Y)
			max.Z = math32.Max(max.Z, v.Z)
		}
		return AABB{Min: rl.Vector3Add(min, pos), Max: rl.Vector3Add(max, pos)}
	}
	return AABB{Min: pos, Max: pos}
}
