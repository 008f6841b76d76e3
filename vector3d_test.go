package geodesy_test

import (
	"math"
	"testing"

	"github.com/golang/geo/s1"
	"github.com/tzneal/geodesy"
)

func vecNear(a, b geodesy.Vector3D, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func TestVectorOps(t *testing.T) {
	a := geodesy.Vector3D{X: 1, Y: 2, Z: 3}
	b := geodesy.Vector3D{X: 4, Y: 5, Z: 6}

	testCases := []struct {
		name string
		got  geodesy.Vector3D
		exp  geodesy.Vector3D
	}{
		{"add", a.Add(b), geodesy.Vector3D{X: 5, Y: 7, Z: 9}},
		{"sub", a.Sub(b), geodesy.Vector3D{X: -3, Y: -3, Z: -3}},
		{"times", a.Times(b), geodesy.Vector3D{X: 4, Y: 10, Z: 18}},
		{"divided", b.DividedBy(a), geodesy.Vector3D{X: 4, Y: 2.5, Z: 2}},
		{"cross", a.Cross(b), geodesy.Vector3D{X: -3, Y: 6, Z: -3}},
		{"negate", a.Negate(), geodesy.Vector3D{X: -1, Y: -2, Z: -3}},
	}
	for _, tc := range testCases {
		if tc.got != tc.exp {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.exp, tc.got)
		}
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("expected dot 32, got %v", got)
	}
	if got := (geodesy.Vector3D{X: 3, Y: 4}).Length(); got != 5 {
		t.Errorf("expected length 5, got %v", got)
	}
	if got := a.String(); got != "[1.000,2.000,3.000]" {
		t.Errorf("unexpected string %q", got)
	}
}

func TestVectorUnit(t *testing.T) {
	zero := geodesy.Vector3D{}
	if got := zero.Unit(); got != zero {
		t.Errorf("expected zero vector unchanged, got %s", got)
	}
	x := geodesy.Vector3D{X: 1}
	if got := x.Unit(); got != x {
		t.Errorf("expected unit vector unchanged, got %s", got)
	}
	v := geodesy.Vector3D{X: 3, Y: 4}
	if got := v.Unit(); !vecNear(got, geodesy.Vector3D{X: 0.6, Y: 0.8}, 1e-15) {
		t.Errorf("expected [0.6,0.8,0], got %s", got)
	}
}

func TestVectorAngleTo(t *testing.T) {
	x := geodesy.Vector3D{X: 1}
	y := geodesy.Vector3D{Y: 1}
	z := geodesy.Vector3D{Z: 1}

	if got := x.AngleTo(y, nil); math.Abs(got.Degrees()-90) > 1e-12 {
		t.Errorf("expected 90°, got %v", got.Degrees())
	}
	if got := x.AngleTo(y, &z); math.Abs(got.Degrees()-90) > 1e-12 {
		t.Errorf("expected 90°, got %v", got.Degrees())
	}
	negZ := z.Negate()
	if got := x.AngleTo(y, &negZ); math.Abs(got.Degrees()+90) > 1e-12 {
		t.Errorf("expected -90°, got %v", got.Degrees())
	}
	if got := x.AngleTo(x.Negate(), nil); math.Abs(got.Degrees()-180) > 1e-12 {
		t.Errorf("expected 180°, got %v", got.Degrees())
	}
}

func TestVectorRotateAround(t *testing.T) {
	x := geodesy.Vector3D{X: 2}
	z := geodesy.Vector3D{Z: 5}

	got := x.RotateAround(z, 90*s1.Degree)
	if !vecNear(got, geodesy.Vector3D{Y: 1}, 1e-15) {
		t.Errorf("expected [0,1,0], got %s", got)
	}
	got = x.RotateAround(z, -90*s1.Degree)
	if !vecNear(got, geodesy.Vector3D{Y: -1}, 1e-15) {
		t.Errorf("expected [0,-1,0], got %s", got)
	}
	// rotating about its own axis leaves a vector in place
	got = z.RotateAround(z, 33*s1.Degree)
	if !vecNear(got, geodesy.Vector3D{Z: 1}, 1e-15) {
		t.Errorf("expected [0,0,1], got %s", got)
	}
}

func TestApplyTransform(t *testing.T) {
	v := geodesy.Vector3D{X: 3874938.849, Y: 116218.624, Z: 5047168.208}
	if got := v.ApplyTransform(geodesy.HelmertTransform{}); got != v {
		t.Errorf("expected identity transform to leave %s unchanged, got %s", v, got)
	}

	shift := geodesy.HelmertTransform{Tx: 1, Ty: -2, Tz: 3}
	if got := v.ApplyTransform(shift); !vecNear(got, v.Add(geodesy.Vector3D{X: 1, Y: -2, Z: 3}), 1e-9) {
		t.Errorf("expected pure translation, got %s", got)
	}

	scale := geodesy.HelmertTransform{Scale: 10}
	if got := v.ApplyTransform(scale); !vecNear(got, geodesy.Vector3D{X: v.X * 1.00001, Y: v.Y * 1.00001, Z: v.Z * 1.00001}, 1e-6) {
		t.Errorf("expected 10ppm scale, got %s", got)
	}

	// the negated transform undoes the shift to within second order terms
	h := geodesy.OSGB36.Transform()
	back := v.ApplyTransform(h).ApplyTransform(h.Inverse())
	if d := back.Sub(v).Length(); d > 0.05 {
		t.Errorf("expected inverse within 5cm, moved %vm", d)
	}
}

func TestCartesianRoundTrip(t *testing.T) {
	for _, d := range []geodesy.Datum{geodesy.WGS84, geodesy.OSGB36, geodesy.NAD27} {
		const inc = 5.0
		for lat := -90.0; lat <= 90; lat += inc {
			for lng := -180.0; lng < 180; lng += inc {
				p := geodesy.NewLatLon(lat, lng, d)
				q := p.ToCartesian().ToLatLon(d)
				if q.Datum != d {
					t.Fatalf("expected %s, got %s", d, q.Datum)
				}
				if math.Abs(q.Latitude-lat) > 1e-9 {
					t.Fatalf("%s: expected latitude %v, got %v", d, lat, q.Latitude)
				}
				if math.Abs(lat) < 90 && math.Abs(q.Longitude-lng) > 1e-9 {
					t.Fatalf("%s: expected longitude %v, got %v", d, lng, q.Longitude)
				}
			}
		}
	}
}

func TestToCartesian(t *testing.T) {
	// on the equator at the prime meridian x is the semi-major axis
	v := geodesy.NewLatLon(0, 0, geodesy.WGS84).ToCartesian()
	if !vecNear(v, geodesy.Vector3D{X: 6378137}, 1e-6) {
		t.Errorf("expected [6378137,0,0], got %s", v)
	}
	// at the pole z is the semi-minor axis
	v = geodesy.NewLatLon(90, 0, geodesy.OSGB36).ToCartesian()
	if math.Abs(v.Z-geodesy.Airy1830.SemiMinorAxis()) > 1e-3 {
		t.Errorf("expected z=%v, got %s", geodesy.Airy1830.SemiMinorAxis(), v)
	}
}
