package geodesy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Ellipsoid names a reference ellipsoid from the catalog. The parameters live
// in a package table that is never written after initialization, so an
// Ellipsoid can be copied and compared freely. The zero value is WGS84.
type Ellipsoid uint8

// Reference ellipsoids.
const (
	WGS84Ellipsoid Ellipsoid = iota
	Airy1830
	AiryModified
	Bessel1841
	Clarke1866
	Clarke1880IGN
	GRS80
	Intl1924 // aka Hayford
	WGS72Ellipsoid
)

type ellipsoidParams struct {
	name       string
	major      float64 // semi-major axis a, metres
	minor      float64 // semi-minor axis b, metres
	flattening float64 // published f, kept rather than derived from a and b
}

var ellipsoidTable = [...]ellipsoidParams{
	WGS84Ellipsoid: {"WGS84", 6378137, 6356752.314245, 1 / 298.257223563},
	Airy1830:       {"Airy1830", 6377563.396, 6356256.909, 1 / 299.3249646},
	AiryModified:   {"AiryModified", 6377340.189, 6356034.448, 1 / 299.3249646},
	Bessel1841:     {"Bessel1841", 6377397.155, 6356078.962818, 1 / 299.1528128},
	Clarke1866:     {"Clarke1866", 6378206.4, 6356583.8, 1 / 294.978698214},
	Clarke1880IGN:  {"Clarke1880IGN", 6378249.2, 6356515.0, 1 / 293.466021294},
	GRS80:          {"GRS80", 6378137, 6356752.314140, 1 / 298.257222101},
	Intl1924:       {"Intl1924", 6378388, 6356911.946, 1 / 297},
	WGS72Ellipsoid: {"WGS72", 6378135, 6356750.5, 1 / 298.26},
}

var ellipsoids = map[string]Ellipsoid{}

func init() {
	for i := range ellipsoidTable {
		ellipsoids[strings.ToUpper(ellipsoidTable[i].name)] = Ellipsoid(i)
	}
}

func (e Ellipsoid) params() ellipsoidParams {
	if !e.Valid() {
		panic(fmt.Sprintf("geodesy: unknown ellipsoid %d", uint8(e)))
	}
	return ellipsoidTable[e]
}

// Valid reports whether e is a catalog ellipsoid.
func (e Ellipsoid) Valid() bool { return int(e) < len(ellipsoidTable) }

// Name returns the catalog name of the ellipsoid.
func (e Ellipsoid) Name() string { return e.params().name }

// SemiMajorAxis returns a in metres.
func (e Ellipsoid) SemiMajorAxis() float64 { return e.params().major }

// SemiMinorAxis returns b in metres.
func (e Ellipsoid) SemiMinorAxis() float64 { return e.params().minor }

// Flattening returns f.
func (e Ellipsoid) Flattening() float64 { return e.params().flattening }

// EccentricitySquared returns the first eccentricity squared, 2f - f².
func (e Ellipsoid) EccentricitySquared() float64 {
	f := e.params().flattening
	return 2*f - f*f
}

func (e Ellipsoid) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Ellipsoid(%d)", uint8(e))
	}
	return ellipsoidTable[e].name
}

// EllipsoidByName looks up a catalog ellipsoid, ignoring case.
func EllipsoidByName(name string) (Ellipsoid, error) {
	e, ok := ellipsoids[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return WGS84Ellipsoid, errors.Wrapf(ErrInvalidFormat, "unknown ellipsoid %q", name)
	}
	return e, nil
}

// Ellipsoids returns the catalog sorted by name.
func Ellipsoids() []Ellipsoid {
	out := make([]Ellipsoid, 0, len(ellipsoidTable))
	for i := range ellipsoidTable {
		out = append(out, Ellipsoid(i))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
