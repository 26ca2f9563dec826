package physics

// Material holds the surface and density properties combined into contact
// manifolds. Ghost materials take part in integration but are skipped by
// collision detection entirely.
type Material struct {
	Density     float32
	Friction    float32
	Restitution float32
	Ghost       bool
}

func DefaultMaterial() Material {
	return Material{
		Density:     1.0,
		Friction:    0.5,
		Restitution: 0.3,
	}
}
