package tween

import "github.com/go-gl/mathgl/mgl32"

// Property is one numeric field driven by a tween. Value points at the field;
// the start value is captured when the tween starts. When Target is set it is
// re-read every tick and overrides To, so the tween can home in on a moving goal.
type Property struct {
	Name   string
	Value  *float32
	To     float32
	Target func() float32

	from float32
}

func (p *Property) end() float32 {
	if p.Target != nil {
		return p.Target()
	}
	return p.To
}

// Float drives a single float32 toward to.
func Float(name string, v *float32, to float32) Property {
	return Property{Name: name, Value: v, To: to}
}

// Vec3 drives the three components of v toward to, as name.x, name.y and name.z.
func Vec3(name string, v *mgl32.Vec3, to mgl32.Vec3) []Property {
	return []Property{
		{Name: name + ".x", Value: &v[0], To: to[0]},
		{Name: name + ".y", Value: &v[1], To: to[1]},
		{Name: name + ".z", Value: &v[2], To: to[2]},
	}
}

// FollowVec3 drives v toward whatever target returns on each tick.
func FollowVec3(name string, v *mgl32.Vec3, target func() mgl32.Vec3) []Property {
	return []Property{
		{Name: name + ".x", Value: &v[0], Target: func() float32 { return target()[0] }},
		{Name: name + ".y", Value: &v[1], Target: func() float32 { return target()[1] }},
		{Name: name + ".z", Value: &v[2], Target: func() float32 { return target()[2] }},
	}
}

// Vec3Names returns the property names Vec3 and FollowVec3 generate for name.
func Vec3Names(name string) []string {
	return []string{name + ".x", name + ".y", name + ".z"}
}
