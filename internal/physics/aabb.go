package physics

import rl "github.com/gen2brain/raylib-go/raylib"

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

// RayIntersect runs the slab test against the box and returns the entry and
// exit distances along the ray. A miss, or a box entirely behind the origin,
// returns ok == false. Direction is expected to be normalized.
func (a AABB) RayIntersect(origin, direction rl.Vector3) (tmin, tmax float32, ok bool) {
	tmin = float32(-1e30)
	tmax = float32(1e30)

	// X slab
	if direction.X != 0 {
		t1 := (a.Min.X - origin.X) / direction.X
		t2 := (a.Max.X - origin.X) / direction.X
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = t1
		tmax = t2
	} else if origin.X < a.Min.X || origin.X > a.Max.X {
		return 0, 0, false
	}

	// Y slab
	if direction.Y != 0 {
		t1 := (a.Min.Y - origin.Y) / direction.Y
		t2 := (a.Max.Y - origin.Y) / direction.Y
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if origin.Y < a.Min.Y || origin.Y > a.Max.Y {
		return 0, 0, false
	}

	if tmin > tmax {
		return 0, 0, false
	}

	// Z slab
	if direction.Z != 0 {
		t1 := (a.Min.Z - origin.Z) / direction.Z
		t2 := (a.Max.Z - origin.Z) / direction.Z
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if origin.Z < a.Min.Z || origin.Z > a.Max.Z {
		return 0, 0, false
	}

	if tmin > tmax || tmax < 0 {
		return 0, 0, false
	}
	return tmin, tmax, true
}
