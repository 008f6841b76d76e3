package geodesy

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/pkg/errors"
)

// DefaultNationalGrid is the Ordnance Survey National Grid on OSGB36.
var DefaultNationalGrid *NationalGrid

func init() {
	const scaleFactor = 0.9996012717 // on the central meridian
	const falseEasting = 400000
	const falseNorthing = -100000
	// true origin 49°N 2°W
	tm, err := NewTransverseMercator(Airy1830, -2*s1.Degree, 49*s1.Degree,
		falseEasting, falseNorthing, scaleFactor)
	if err != nil {
		panic(fmt.Sprintf("error constructing OSGB36 National Grid projection: %s", err))
	}
	DefaultNationalGrid = &NationalGrid{tm: tm, datum: OSGB36}
}

// NationalGrid projects positions on any catalog datum to grid references
// and back, converting through the projection's own datum.
type NationalGrid struct {
	tm    *TransverseMercator
	datum Datum
}

// Datum returns the datum grid coordinates are defined on.
func (g *NationalGrid) Datum() Datum { return g.datum }

// ConvertFromGeodetic converts p to a grid reference rounded to the
// millimetre. p is first converted to the grid's datum if it is on another
// one; p itself is left untouched.
func (g *NationalGrid) ConvertFromGeodetic(p LatLon) (GridRef, error) {
	if err := checkDatum(p.Datum); err != nil {
		return GridRef{}, err
	}
	if !isFinite(p.Latitude) || !isFinite(p.Longitude) ||
		p.Latitude < -90 || p.Latitude > 90 {
		return GridRef{}, errors.Wrapf(ErrOutOfRange, "latitude/longitude %v,%v", p.Latitude, p.Longitude)
	}
	onGrid := p.ConvertDatum(g.datum)
	mc := g.tm.ConvertFromGeodetic(onGrid.S2())
	if !isFinite(mc.Easting) || !isFinite(mc.Northing) {
		return GridRef{}, errors.Wrapf(ErrOutOfRange, "latitude/longitude %v,%v", p.Latitude, p.Longitude)
	}
	return GridRef{
		Easting:  roundMillimetre(mc.Easting),
		Northing: roundMillimetre(mc.Northing),
	}, nil
}

// ConvertToGeodetic converts a grid reference to a position on datum.
func (g *NationalGrid) ConvertToGeodetic(ref GridRef, datum Datum) (LatLon, error) {
	if err := checkDatum(datum); err != nil {
		return LatLon{}, err
	}
	ll, err := g.tm.ConvertToGeodetic(MapCoords{Easting: ref.Easting, Northing: ref.Northing})
	if err != nil {
		return LatLon{}, err
	}
	p := LatLonFromS2(ll, g.datum)
	return p.ConvertDatum(datum), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func roundMillimetre(v float64) float64 {
	return math.Round(v*1000) / 1000
}
