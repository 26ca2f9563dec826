package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.01 // units/sec - below this, body might sleep
	SleepAngularThreshold  = 0.01 // rad/sec - below this, body might sleep
	SleepTimeThreshold     = 2.0  // seconds of low velocity before sleeping
)

// minDynamicMass is the floor for derived mass of dynamic bodies. Degenerate
// zero-extent shapes would otherwise produce a zero mass and a division by
// zero in the integrator.
const minDynamicMass = 0.001

type BodyType int

const (
	Static BodyType = iota // infinite mass, never integrated
	Kinematic              // moved by velocity, ignores forces and impulses
	Dynamic                // fully simulated
	Trigger                // ghost: moved like a kinematic, no collision response
)

// Body is the mutable simulation state of one rigid body. All fields are
// owned by the world that holds the body; nothing here is safe for
// concurrent mutation.
type Body struct {
	ID uint64 // assigned by World.AddBody, 0 until then

	Position        rl.Vector3
	Orientation     rl.Quaternion
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3

	Mass           float32
	InverseMass    float32    // 0 for non-dynamic bodies
	Inertia        rl.Vector3 // diagonal approximation
	InverseInertia rl.Vector3 // componentwise 1/Inertia

	Shape    Shape
	Type     BodyType
	Material Material

	// Accumulated once per step, cleared by the integrator.
	force  rl.Vector3
	torque rl.Vector3

	Sleeping   bool
	sleepTimer float32

	Bounds AABB
}

// NewBody derives mass, inertia and the initial AABB from shape and material.
// Non-dynamic bodies get an inverse mass of zero so the solver and the
// positional correction leave them in place for free.
func NewBody(shape Shape, bodyType BodyType, material Material) *Body {
	b := &Body{
		Orientation: rl.QuaternionIdentity(),
		Shape:       shape,
		Type:        bodyType,
		Material:    material,
	}

	mass, inertia := shape.massProperties(material.Density)
	if bodyType == Dynamic {
		if mass < minDynamicMass {
			mass = minDynamicMass
		}
		b.Mass = mass
		b.InverseMass = 1 / mass
		b.Inertia = inertia
		b.InverseInertia = invComponents(inertia)
	}

	b.UpdateAABB()
	return b
}

// ApplyForce adds to the force accumulator. Ignored for non-dynamic or
// sleeping bodies.
func (b *Body) ApplyForce(force rl.Vector3) {
	if b.Type != Dynamic || b.Sleeping {
		return
	}
	b.force = rl.Vector3Add(b.force, force)
}

// ApplyForceAt adds to the force accumulator and to the torque accumulator
// using the lever arm from the body center to point.
func (b *Body) ApplyForceAt(force, point rl.Vector3) {
	if b.Type != Dynamic || b.Sleeping {
		return
	}
	b.force = rl.Vector3Add(b.force, force)
	arm := rl.Vector3Subtract(point, b.Position)
	b.torque = rl.Vector3Add(b.torque, cross(arm, force))
}

// ApplyImpulse changes velocity immediately. Ignored for non-dynamic or
// sleeping bodies; an awake body stays awake.
func (b *Body) ApplyImpulse(impulse rl.Vector3) {
	if b.Type != Dynamic || b.Sleeping {
		return
	}
	b.Wake()
	b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(impulse, b.InverseMass))
}

// ApplyImpulseAt additionally spins the body from the contact lever arm.
func (b *Body) ApplyImpulseAt(impulse, point rl.Vector3) {
	if b.Type != Dynamic || b.Sleeping {
		return
	}
	b.Wake()
	b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(impulse, b.InverseMass))
	arm := rl.Vector3Subtract(point, b.Position)
	angular := cross(arm, impulse)
	b.AngularVelocity = rl.Vector3Add(b.AngularVelocity, rl.Vector3{
		X: angular.X * b.InverseInertia.X,
		Y: angular.Y * b.InverseInertia.Y,
		Z: angular.Z * b.InverseInertia.Z,
	})
}

// UpdateAABB recomputes the cached bounds from the current position. Must be
// called after every position change; nothing invalidates the cache lazily.
func (b *Body) UpdateAABB() {
	b.Bounds = b.Shape.aabbAt(b.Position)
}

// Wake forces the body out of sleep state.
func (b *Body) Wake() {
	b.Sleeping = false
	b.sleepTimer = 0
}

// applyLinearImpulse is the solver's impulse path. Unlike ApplyImpulse it
// leaves the sleep timer alone: contact impulses that merely cancel gravity
// on a resting body must not keep it awake forever.
func (b *Body) applyLinearImpulse(impulse rl.Vector3) {
	if b.Type != Dynamic || b.Sleeping {
		return
	}
	b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(impulse, b.InverseMass))
}

// trySleep accumulates still-time and puts the body to sleep once both
// velocities stayed under the thresholds long enough.
func (b *Body) trySleep(dt float32) {
	speed := rl.Vector3Length(b.Velocity)
	angSpeed := rl.Vector3Length(b.AngularVelocity)

	if speed < SleepVelocityThreshold && angSpeed < SleepAngularThreshold {
		b.sleepTimer += dt
		if b.sleepTimer > SleepTimeThreshold {
			b.Sleeping = true
		}
	} else {
		b.Wake()
	}
}

func (b *Body) isGhost() bool {
	return b.Material.Ghost || b.Type == Trigger
}

func invComponents(v rl.Vector3) rl.Vector3 {
	inv := rl.Vector3{}
	if v.X != 0 {
		inv.X = 1 / v.X
	}
	if v.Y != 0 {
		inv.Y = 1 / v.Y
	}
	if v.Z != 0 {
		inv.Z = 1 / v.Z
	}
	return inv
}
