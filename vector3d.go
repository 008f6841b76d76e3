package geodesy

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// Vector3D is a geocentric cartesian point (metres) or a general 3-d vector.
// A geocentric point is tied to the ellipsoid of the datum it came from.
type Vector3D r3.Vector

const arcSecond = math.Pi / (180 * 3600)

func (v Vector3D) vec() r3.Vector { return r3.Vector(v) }

// Add returns v + o.
func (v Vector3D) Add(o Vector3D) Vector3D { return Vector3D(v.vec().Add(o.vec())) }

// Sub returns v - o.
func (v Vector3D) Sub(o Vector3D) Vector3D { return Vector3D(v.vec().Sub(o.vec())) }

// Times multiplies v and o element by element.
func (v Vector3D) Times(o Vector3D) Vector3D {
	return Vector3D{X: v.X * o.X, Y: v.Y * o.Y, Z: v.Z * o.Z}
}

// DividedBy divides v by o element by element.
func (v Vector3D) DividedBy(o Vector3D) Vector3D {
	return Vector3D{X: v.X / o.X, Y: v.Y / o.Y, Z: v.Z / o.Z}
}

// Length returns the euclidean norm of v.
func (v Vector3D) Length() float64 { return v.vec().Norm() }

// Dot returns the scalar product of v and o.
func (v Vector3D) Dot(o Vector3D) float64 { return v.vec().Dot(o.vec()) }

// Cross returns the vector product v × o.
func (v Vector3D) Cross(o Vector3D) Vector3D { return Vector3D(v.vec().Cross(o.vec())) }

// Negate returns -v.
func (v Vector3D) Negate() Vector3D { return Vector3D(v.vec().Mul(-1)) }

// Unit returns v scaled to length 1. Zero and unit vectors are returned
// unchanged.
func (v Vector3D) Unit() Vector3D {
	n := v.Length()
	if n == 0 || n == 1 {
		return v
	}
	return Vector3D(v.vec().Mul(1 / n))
}

// AngleTo returns the angle between v and o. With a nil normal the result is
// in [0, π]. With a plane normal it is signed in [-π, π]: positive if v to o
// is clockwise looking along the normal.
func (v Vector3D) AngleTo(o Vector3D, normal *Vector3D) s1.Angle {
	cross := v.Cross(o)
	sign := 1.0
	if normal != nil && cross.Dot(*normal) < 0 {
		sign = -1
	}
	sinTheta := cross.Length() * sign
	cosTheta := v.Dot(o)
	return s1.Angle(math.Atan2(sinTheta, cosTheta))
}

// RotateAround rotates the unit vector of v about axis by angle, using the
// quaternion-derived rotation matrix.
func (v Vector3D) RotateAround(axis Vector3D, angle s1.Angle) Vector3D {
	p := v.Unit()
	a := axis.Unit()
	s := math.Sin(angle.Radians())
	c := math.Cos(angle.Radians())
	t := 1 - c

	q := [3][3]float64{
		{a.X*a.X*t + c, a.X*a.Y*t - a.Z*s, a.X*a.Z*t + a.Y*s},
		{a.Y*a.X*t + a.Z*s, a.Y*a.Y*t + c, a.Y*a.Z*t - a.X*s},
		{a.Z*a.X*t - a.Y*s, a.Z*a.Y*t + a.X*s, a.Z*a.Z*t + c},
	}
	return Vector3D{
		X: q[0][0]*p.X + q[0][1]*p.Y + q[0][2]*p.Z,
		Y: q[1][0]*p.X + q[1][1]*p.Y + q[1][2]*p.Z,
		Z: q[2][0]*p.X + q[2][1]*p.Y + q[2][2]*p.Z,
	}
}

// ApplyTransform applies the linearized Helmert transform h to v.
func (v Vector3D) ApplyTransform(h HelmertTransform) Vector3D {
	s := h.Scale/1e6 + 1
	rx := h.Rx * arcSecond
	ry := h.Ry * arcSecond
	rz := h.Rz * arcSecond

	return Vector3D{
		X: h.Tx + v.X*s - v.Y*rz + v.Z*ry,
		Y: h.Ty + v.X*rz + v.Y*s - v.Z*rx,
		Z: h.Tz - v.X*ry + v.Y*rx + v.Z*s,
	}
}

// ToLatLon converts a geocentric point to geodetic coordinates on datum d
// using Bowring's (1985) closed form. Height is discarded.
func (v Vector3D) ToLatLon(d Datum) LatLon {
	el := d.Ellipsoid()
	a, b := el.SemiMajorAxis(), el.SemiMinorAxis()

	e2 := el.EccentricitySquared()
	eps2 := e2 / (1 - e2) // second eccentricity squared
	p := math.Hypot(v.X, v.Y)
	r := math.Hypot(p, v.Z)

	// parametric latitude
	tanBeta := (b * v.Z) / (a * p) * (1 + eps2*b/r)
	sinBeta, cosBeta := math.Sincos(math.Atan(tanBeta))

	phi := math.Atan2(v.Z+eps2*b*sinBeta*sinBeta*sinBeta, p-e2*a*cosBeta*cosBeta*cosBeta)
	lambda := math.Atan2(v.Y, v.X)

	return LatLon{
		Latitude:  s1.Angle(phi).Degrees(),
		Longitude: s1.Angle(lambda).Degrees(),
		Datum:     d,
	}
}

func (v Vector3D) String() string {
	return fmt.Sprintf("[%.3f,%.3f,%.3f]", v.X, v.Y, v.Z)
}
