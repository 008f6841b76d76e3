package geodesy

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/tzneal/geodesy/dms"
)

// LatLon is a geodetic position in degrees on a datum. Two LatLons are equal
// only if latitude, longitude and datum all match; the same place expressed
// on two datums compares unequal. The zero Datum is WGS84.
type LatLon struct {
	Latitude  float64
	Longitude float64
	Datum     Datum
}

// NewLatLon creates a point on datum.
func NewLatLon(latitude, longitude float64, datum Datum) LatLon {
	return LatLon{Latitude: latitude, Longitude: longitude, Datum: datum}
}

// LatLonFromS2 creates a point on datum from an s2.LatLng.
func LatLonFromS2(ll s2.LatLng, datum Datum) LatLon {
	return NewLatLon(ll.Lat.Degrees(), ll.Lng.Degrees(), datum)
}

// S2 returns the position as an s2.LatLng, dropping the datum.
func (p LatLon) S2() s2.LatLng {
	return s2.LatLngFromDegrees(p.Latitude, p.Longitude)
}

// ToCartesian converts the point to geocentric x/y/z on its datum's
// ellipsoid. Height above the ellipsoid is taken as zero.
func (p LatLon) ToCartesian() Vector3D {
	el := p.Datum.Ellipsoid()
	phi := (s1.Angle(p.Latitude) * s1.Degree).Radians()
	lambda := (s1.Angle(p.Longitude) * s1.Degree).Radians()

	sinPhi, cosPhi := math.Sincos(phi)
	sinLambda, cosLambda := math.Sincos(lambda)

	e2 := el.EccentricitySquared()
	nu := el.SemiMajorAxis() / math.Sqrt(1-e2*sinPhi*sinPhi) // prime vertical radius of curvature

	return Vector3D{
		X: nu * cosPhi * cosLambda,
		Y: nu * cosPhi * sinLambda,
		Z: nu * (1 - e2) * sinPhi,
	}
}

// ConvertDatum returns the point expressed on datum to. Every conversion is
// routed through WGS84: catalog transforms are only published relative to it.
// Converting to the point's own datum returns the point unchanged. Both
// datums must be catalog values.
func (p LatLon) ConvertDatum(to Datum) LatLon {
	from := p.Datum

	var transform HelmertTransform
	switch {
	case from == to:
		return p
	case from == WGS84:
		transform = to.Transform()
	case to == WGS84:
		transform = from.Transform().Inverse()
	default:
		return p.ConvertDatum(WGS84).ConvertDatum(to)
	}

	return p.ToCartesian().ApplyTransform(transform).ToLatLon(to)
}

// ToGridRef projects the point onto the OS National Grid, converting it to
// OSGB36 first if needed.
func (p LatLon) ToGridRef() (GridRef, error) {
	return DefaultNationalGrid.ConvertFromGeodetic(p)
}

// Format renders the point as "lat, lon" using the dms format f; a negative
// decimals selects the format's default.
func (p LatLon) Format(f dms.Format, decimals int) string {
	return dms.Lat(p.Latitude, f, decimals) + ", " + dms.Lon(p.Longitude, f, decimals)
}

func (p LatLon) String() string {
	return p.Format(dms.DegMinSec, -1)
}
