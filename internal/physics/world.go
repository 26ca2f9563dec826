package physics

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Fixed numerical drag applied before integration each step. Not physically
// derived; it keeps stacks from jittering forever.
const (
	linearDamping  = 0.99
	angularDamping = 0.95
)

// Positional correction (Baumgarte) tuning.
const (
	penetrationSlop   = 0.01
	correctionPercent = 0.2
	frictionEpsilon   = 0.0001
	defaultGridSize   = 5.0
	defaultIterations = 10
	defaultFixedDelta = 1.0 / 60.0
)

// World owns the body set and drives the fixed-timestep simulation loop.
// It is single-threaded by design: every call that touches the body set must
// come from the thread that calls Update.
type World struct {
	Gravity                rl.Vector3
	FixedDeltaTime         float32
	Iterations             int
	Enabled                bool
	UseSpatialPartitioning bool
	GridSize               float32

	// Optional collision callbacks, invoked after the solver.
	OnCollisionEnter func(a, b *Body)
	OnCollisionExit  func(a, b *Body)

	bodies []*Body
	nextID uint64
	grid   map[CellKey][]*Body

	// Collision tracking for enter/exit callbacks.
	activePairs  map[bodyPair][2]*Body // pairs from the previous step
	currentPairs map[bodyPair][2]*Body // pairs seen this step

	lastStepPairs    int
	lastStepContacts int
	lastLoggedCount  int
	wasSpatial       bool
}

func NewWorld() *World {
	return &World{
		Gravity:        rl.Vector3{X: 0, Y: -9.81, Z: 0},
		FixedDeltaTime: defaultFixedDelta,
		Iterations:     defaultIterations,
		Enabled:        true,
		GridSize:       defaultGridSize,
		bodies:         make([]*Body, 0),
		grid:           make(map[CellKey][]*Body),
		activePairs:    make(map[bodyPair][2]*Body),
		currentPairs:   make(map[bodyPair][2]*Body),
	}
}

// AddBody hands the body over to the world and assigns its handle. Safe to
// call between steps at any time.
func (w *World) AddBody(b *Body) {
	if b.ID == 0 {
		w.nextID++
		b.ID = w.nextID
	}
	w.bodies = append(w.bodies, b)

	if len(w.bodies)%100 == 0 && len(w.bodies) != w.lastLoggedCount {
		w.lastLoggedCount = len(w.bodies)
		log.Printf("Physics: %d bodies", len(w.bodies))
	}
}

// RemoveBody drops the body with the given handle from the body set.
// Reports whether a body was removed.
func (w *World) RemoveBody(id uint64) bool {
	for i, b := range w.bodies {
		if b.ID == id {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return true
		}
	}
	return false
}

// Body returns the body with the given handle, or nil.
func (w *World) Body(id uint64) *Body {
	for _, b := range w.bodies {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Bodies returns the live body slice in insertion order. Callers treat it as
// read-only; the renderer reads transforms from it once per display frame.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Update advances the simulation by whole fixed steps. Leftover time below
// one step is dropped rather than carried to the next call. A non-positive
// FixedDeltaTime disables stepping entirely instead of looping forever.
func (w *World) Update(deltaTime float32) {
	if !w.Enabled || w.FixedDeltaTime <= 0 {
		return
	}
	for deltaTime >= w.FixedDeltaTime {
		w.step(w.FixedDeltaTime)
		deltaTime -= w.FixedDeltaTime
	}
}

// step runs one discrete simulation step. Phase order is fixed: forces,
// integration, broad phase, narrow phase, solver, kinematics.
func (w *World) step(dt float32) {
	// 1. Gravity and damping for awake dynamic bodies.
	for _, b := range w.bodies {
		if b.Type != Dynamic || b.Sleeping {
			continue
		}
		b.force = rl.Vector3Add(b.force, rl.Vector3Scale(w.Gravity, b.Mass))
		b.Velocity = rl.Vector3Scale(b.Velocity, linearDamping)
		b.AngularVelocity = rl.Vector3Scale(b.AngularVelocity, angularDamping)
	}

	// 2. Semi-implicit Euler integration.
	for _, b := range w.bodies {
		if b.Type != Dynamic || b.Sleeping {
			continue
		}
		w.integrate(b, dt)
	}

	// 3.+4. Broad phase prunes candidate pairs, narrow phase builds manifolds.
	contacts := w.collectContacts()

	// 5. Iterative impulse relaxation over the whole manifold list. One pass
	// per manifold is not enough for stacked contacts to reach equilibrium.
	for i := 0; i < w.Iterations; i++ {
		for _, c := range contacts {
			w.resolveContact(c)
		}
	}

	// Sleep bookkeeping runs after the solver so the velocity it sees is the
	// post-contact one. Checking mid-integration would see the raw gravity
	// kick and keep resting bodies awake forever.
	for _, b := range w.bodies {
		if b.Type != Dynamic || b.Sleeping {
			continue
		}
		b.trySleep(dt)
	}

	// 6. Kinematic and trigger bodies follow their velocity, untouched by
	// the solver.
	for _, b := range w.bodies {
		if b.Type != Kinematic && b.Type != Trigger {
			continue
		}
		b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(b.Velocity, dt))
		b.UpdateAABB()
	}

	w.lastStepContacts = len(contacts)
	w.dispatchCollisionCallbacks()
}

func (w *World) integrate(b *Body, dt float32) {
	b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(b.force, b.InverseMass*dt))
	b.AngularVelocity = rl.Vector3Add(b.AngularVelocity, rl.Vector3{
		X: b.torque.X * b.InverseInertia.X * dt,
		Y: b.torque.Y * b.InverseInertia.Y * dt,
		Z: b.torque.Z * b.InverseInertia.Z * dt,
	})
	b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(b.Velocity, dt))

	// Orientation follows an axis-angle delta rotation, pre-multiplied.
	angSpeed := rl.Vector3Length(b.AngularVelocity)
	if angSpeed > 0 {
		axis := rl.Vector3Scale(b.AngularVelocity, 1/angSpeed)
		delta := rl.QuaternionFromAxisAngle(axis, angSpeed*dt)
		b.Orientation = rl.QuaternionNormalize(rl.QuaternionMultiply(delta, b.Orientation))
	}

	b.force = rl.Vector3{}
	b.torque = rl.Vector3{}
	b.UpdateAABB()
}

// collectContacts runs broad and narrow phase and records pairs for the
// enter/exit callbacks. Ghost pairs are skipped before detection.
func (w *World) collectContacts() []*Contact {
	contacts := make([]*Contact, 0)
	pairs := 0

	test := func(a, b *Body) {
		pairs++
		if a.isGhost() || b.isGhost() {
			return
		}
		if c := CheckCollision(a, b); c != nil {
			contacts = append(contacts, c)
			w.currentPairs[makePair(a, b)] = [2]*Body{a, b}
		}
	}

	if w.UseSpatialPartitioning != w.wasSpatial {
		w.wasSpatial = w.UseSpatialPartitioning
		mode := "brute force"
		if w.UseSpatialPartitioning {
			mode = "spatial grid"
		}
		log.Printf("Physics: broad phase now %s (%d bodies)", mode, len(w.bodies))
	}

	if w.UseSpatialPartitioning {
		w.rebuildGrid()
		w.gridPairs(test)
	} else {
		for i := 0; i < len(w.bodies); i++ {
			for j := i + 1; j < len(w.bodies); j++ {
				test(w.bodies[i], w.bodies[j])
			}
		}
	}

	w.lastStepPairs = pairs
	return contacts
}

// resolveContact applies one relaxation pass of impulse plus positional
// correction to a manifold. Pairs that are separating, fully immovable or
// both asleep are left alone.
func (w *World) resolveContact(c *Contact) {
	a, b := c.A, c.B
	if a.Sleeping && b.Sleeping {
		return
	}

	invSum := a.InverseMass + b.InverseMass
	if invSum == 0 {
		return
	}

	rv := rl.Vector3Subtract(b.Velocity, a.Velocity)
	velAlongNormal := rl.Vector3DotProduct(rv, c.Normal)
	if velAlongNormal > 0 {
		return
	}

	// Normal impulse. Linear only: contact-point torque is out of scope for
	// this resolution step.
	j := -(1 + c.Restitution) * velAlongNormal / invSum
	impulse := rl.Vector3Scale(c.Normal, j)
	a.applyLinearImpulse(rl.Vector3Scale(impulse, -1))
	b.applyLinearImpulse(impulse)

	// Friction along the tangent of the updated relative velocity.
	rv = rl.Vector3Subtract(b.Velocity, a.Velocity)
	tangent := rl.Vector3Subtract(rv, rl.Vector3Scale(c.Normal, rl.Vector3DotProduct(rv, c.Normal)))
	tangentLen := rl.Vector3Length(tangent)
	if tangentLen > frictionEpsilon {
		tangent = rl.Vector3Scale(tangent, 1/tangentLen)
		jt := -rl.Vector3DotProduct(rv, tangent) / invSum * c.Friction
		frictionImpulse := rl.Vector3Scale(tangent, jt)
		a.applyLinearImpulse(rl.Vector3Scale(frictionImpulse, -1))
		b.applyLinearImpulse(frictionImpulse)
	}

	// Positional correction removes residual penetration beyond the slop so
	// resting contacts do not sink, without fighting the impulse solver.
	correction := (c.Penetration - penetrationSlop)
	if correction <= 0 {
		return
	}
	correction = correction / invSum * correctionPercent
	if a.Type == Dynamic && !a.Sleeping {
		a.Position = rl.Vector3Subtract(a.Position, rl.Vector3Scale(c.Normal, correction*a.InverseMass))
		a.UpdateAABB()
	}
	if b.Type == Dynamic && !b.Sleeping {
		b.Position = rl.Vector3Add(b.Position, rl.Vector3Scale(c.Normal, correction*b.InverseMass))
		b.UpdateAABB()
	}
}

// dispatchCollisionCallbacks diffs this step's contact pairs against the
// previous step's and fires the enter/exit hooks.
func (w *World) dispatchCollisionCallbacks() {
	if w.OnCollisionEnter != nil {
		for key, pair := range w.currentPairs {
			if _, seen := w.activePairs[key]; !seen {
				w.OnCollisionEnter(pair[0], pair[1])
			}
		}
	}
	if w.OnCollisionExit != nil {
		for key, pair := range w.activePairs {
			if _, seen := w.currentPairs[key]; !seen {
				w.OnCollisionExit(pair[0], pair[1])
			}
		}
	}

	// Swap buffers
	w.activePairs = w.currentPairs
	w.currentPairs = make(map[bodyPair][2]*Body)
}

// Stats is a read-only snapshot for debug overlays.
type Stats struct {
	Bodies   int
	Sleeping int
	Contacts int
	Pairs    int
	Gravity  rl.Vector3
	Enabled  bool
}

func (w *World) Stats() Stats {
	s := Stats{
		Bodies:   len(w.bodies),
		Contacts: w.lastStepContacts,
		Pairs:    w.lastStepPairs,
		Gravity:  w.Gravity,
		Enabled:  w.Enabled,
	}
	for _, b := range w.bodies {
		if b.Sleeping {
			s.Sleeping++
		}
	}
	return s
}
