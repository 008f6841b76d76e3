package geodesy

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
)

// maxInverseIterations bounds the meridional arc iteration in
// ConvertToGeodetic. Grid coordinates anywhere near the projection's domain
// converge in three or four steps.
const maxInverseIterations = 20

// inverseTolerance is the meridional arc residual, in metres, at which the
// inverse iteration stops (0.01mm).
const inverseTolerance = 0.00001

// MapCoords are projected coordinates in metres.
type MapCoords struct {
	Easting  float64
	Northing float64
}

// TransverseMercator converts between geodetic coordinates and Transverse
// Mercator easting/northing using the Redfearn series as published by the
// Ordnance Survey.
type TransverseMercator struct {
	// Ellipsoid Parameters
	semiMajorAxis float64
	semiMinorAxis float64
	e2            float64 // eccentricity squared
	n, n2, n3     float64 // (a-b)/(a+b) and its powers

	// Projection Parameters
	originLat     float64 // Latitude of true origin in radians
	originLong    float64 // Longitude of true origin in radians
	falseEasting  float64 // Easting of true origin in meters
	falseNorthing float64 // Northing of true origin in meters
	scaleFactor   float64 // Scale factor on the central meridian
}

// NewTransverseMercator constructs a TransverseMercator projection on
// ellipsoid el with true origin (originLatitude, centralMeridian).
func NewTransverseMercator(el Ellipsoid, centralMeridian, originLatitude s1.Angle,
	falseEasting, falseNorthing, scaleFactor float64) (*TransverseMercator, error) {
	a := el.SemiMajorAxis()
	b := el.SemiMinorAxis()

	if a <= 0.0 {
		return nil, errors.Wrap(ErrOutOfRange, "semi-major axis must be greater than zero")
	}
	if b <= 0.0 || b >= a {
		return nil, errors.Wrap(ErrOutOfRange, "semi-minor axis must be between zero and the semi-major axis")
	}
	if (originLatitude.Radians() < -math.Pi/2) ||
		(originLatitude.Radians() > math.Pi/2) {
		return nil, errors.Wrap(ErrOutOfRange, "origin latitude out of range")
	}
	if (centralMeridian.Radians() < -math.Pi) ||
		(centralMeridian.Radians() > (2 * math.Pi)) {
		return nil, errors.Wrap(ErrOutOfRange, "central meridian out of range")
	}

	const minScaleFactor = 0.1
	const maxScaleFactor = 10.0
	if (scaleFactor < minScaleFactor) || (scaleFactor > maxScaleFactor) {
		return nil, errors.Wrap(ErrOutOfRange, "scale factor out of range")
	}

	t := &TransverseMercator{
		semiMajorAxis: a,
		semiMinorAxis: b,
		e2:            1 - (b*b)/(a*a),
		n:             (a - b) / (a + b),
		originLat:     originLatitude.Radians(),
		originLong:    centralMeridian.Radians(),
		falseEasting:  falseEasting,
		falseNorthing: falseNorthing,
		scaleFactor:   scaleFactor,
	}
	if t.originLong > math.Pi {
		t.originLong -= (2 * math.Pi)
	}
	t.n2 = t.n * t.n
	t.n3 = t.n2 * t.n
	return t, nil
}

// meridionalArc returns the scaled distance along the central meridian from
// the origin latitude to latitude phi.
func (t *TransverseMercator) meridionalArc(phi float64) float64 {
	n, n2, n3 := t.n, t.n2, t.n3
	dPhi := phi - t.originLat
	sPhi := phi + t.originLat

	ma := (1 + n + (5.0/4)*n2 + (5.0/4)*n3) * dPhi
	mb := (3*n + 3*n2 + (21.0/8)*n3) * math.Sin(dPhi) * math.Cos(sPhi)
	mc := ((15.0/8)*n2 + (15.0/8)*n3) * math.Sin(2*dPhi) * math.Cos(2*sPhi)
	md := (35.0 / 24) * n3 * math.Sin(3*dPhi) * math.Cos(3*sPhi)
	return t.semiMinorAxis * t.scaleFactor * (ma - mb + mc - md)
}

// radii returns the transverse (nu) and meridional (rho) radii of curvature
// at latitude phi, scaled by the central meridian scale factor, and
// eta² = nu/rho - 1.
func (t *TransverseMercator) radii(sinPhi float64) (nu, rho, eta2 float64) {
	aF0 := t.semiMajorAxis * t.scaleFactor
	w := 1 - t.e2*sinPhi*sinPhi
	nu = aF0 / math.Sqrt(w)
	rho = aF0 * (1 - t.e2) / math.Pow(w, 1.5)
	return nu, rho, nu/rho - 1
}

// ConvertFromGeodetic projects a geodetic position to easting/northing. The
// position must already be on the projection's datum.
func (t *TransverseMercator) ConvertFromGeodetic(geodeticCoordinates s2.LatLng) MapCoords {
	phi := geodeticCoordinates.Lat.Radians()
	lambda := geodeticCoordinates.Lng.Radians()

	sinPhi, cosPhi := math.Sincos(phi)
	nu, rho, eta2 := t.radii(sinPhi)
	m := t.meridionalArc(phi)

	cos3Phi := cosPhi * cosPhi * cosPhi
	cos5Phi := cos3Phi * cosPhi * cosPhi
	tan2Phi := math.Tan(phi) * math.Tan(phi)
	tan4Phi := tan2Phi * tan2Phi

	i := m + t.falseNorthing
	ii := (nu / 2) * sinPhi * cosPhi
	iii := (nu / 24) * sinPhi * cos3Phi * (5 - tan2Phi + 9*eta2)
	iiiA := (nu / 720) * sinPhi * cos5Phi * (61 - 58*tan2Phi + tan4Phi)
	iv := nu * cosPhi
	v := (nu / 6) * cos3Phi * (nu/rho - tan2Phi)
	vi := (nu / 120) * cos5Phi * (5 - 18*tan2Phi + tan4Phi + 14*eta2 - 58*tan2Phi*eta2)

	dL := lambda - t.originLong
	dL2 := dL * dL
	dL3 := dL2 * dL
	dL4 := dL3 * dL
	dL5 := dL4 * dL
	dL6 := dL5 * dL

	return MapCoords{
		Easting:  t.falseEasting + iv*dL + v*dL3 + vi*dL5,
		Northing: i + ii*dL2 + iii*dL4 + iiiA*dL6,
	}
}

// ConvertToGeodetic recovers the geodetic position of projected coordinates.
// The footpoint latitude is found by iterating on the meridional arc; if it
// does not settle within maxInverseIterations the coordinates are too far
// outside the projection's domain and ErrNonConvergence is returned. Series
// results that leave the globe, such as eastings far off the central
// meridian, are rejected with ErrOutOfRange.
func (t *TransverseMercator) ConvertToGeodetic(mapProjectionCoordinates MapCoords) (s2.LatLng, error) {
	easting := mapProjectionCoordinates.Easting
	northing := mapProjectionCoordinates.Northing
	aF0 := t.semiMajorAxis * t.scaleFactor

	phi := t.originLat
	m := 0.0
	for iter := 0; ; iter++ {
		if iter == maxInverseIterations {
			return s2.LatLng{}, errors.Wrapf(ErrNonConvergence,
				"footpoint latitude for northing %v after %d iterations", northing, iter)
		}
		phi += (northing - t.falseNorthing - m) / aF0
		m = t.meridionalArc(phi)
		if math.Abs(northing-t.falseNorthing-m) < inverseTolerance {
			break
		}
	}

	sinPhi, cosPhi := math.Sincos(phi)
	nu, rho, eta2 := t.radii(sinPhi)

	tanPhi := math.Tan(phi)
	tan2Phi := tanPhi * tanPhi
	tan4Phi := tan2Phi * tan2Phi
	tan6Phi := tan4Phi * tan2Phi
	secPhi := 1 / cosPhi
	nu3 := nu * nu * nu
	nu5 := nu3 * nu * nu
	nu7 := nu5 * nu * nu

	vii := tanPhi / (2 * rho * nu)
	viii := tanPhi / (24 * rho * nu3) * (5 + 3*tan2Phi + eta2 - 9*tan2Phi*eta2)
	ix := tanPhi / (720 * rho * nu5) * (61 + 90*tan2Phi + 45*tan4Phi)
	x := secPhi / nu
	xi := secPhi / (6 * nu3) * (nu/rho + 2*tan2Phi)
	xii := secPhi / (120 * nu5) * (5 + 28*tan2Phi + 24*tan4Phi)
	xiiA := secPhi / (5040 * nu7) * (61 + 662*tan2Phi + 1320*tan4Phi + 720*tan6Phi)

	dE := easting - t.falseEasting
	dE2 := dE * dE
	dE3 := dE2 * dE
	dE4 := dE2 * dE2
	dE5 := dE3 * dE2
	dE6 := dE4 * dE2
	dE7 := dE5 * dE2

	latitude := phi - vii*dE2 + viii*dE4 - ix*dE6
	longitude := t.originLong + x*dE - xi*dE3 + xii*dE5 - xiiA*dE7
	if math.IsNaN(latitude) || math.Abs(latitude) > math.Pi/2 ||
		math.IsNaN(longitude) || math.Abs(longitude-t.originLong) > math.Pi {
		return s2.LatLng{}, errors.Wrapf(ErrOutOfRange, "easting %v northing %v", easting, northing)
	}

	return s2.LatLng{Lat: s1.Angle(latitude), Lng: s1.Angle(longitude)}, nil
}
