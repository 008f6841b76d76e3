package geodesy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// HelmertTransform holds the seven parameters of a small-angle Helmert
// similarity transform.
type HelmertTransform struct {
	Tx, Ty, Tz float64 // translations, metres
	Scale      float64 // parts per million
	Rx, Ry, Rz float64 // rotations, arc-seconds
}

// Inverse negates every parameter. This is the inverse of the linearized
// transform only to first order, which holds for real-world datum shifts.
func (h HelmertTransform) Inverse() HelmertTransform {
	return HelmertTransform{
		Tx: -h.Tx, Ty: -h.Ty, Tz: -h.Tz,
		Scale: -h.Scale,
		Rx:    -h.Rx, Ry: -h.Ry, Rz: -h.Rz,
	}
}

// IsZero reports whether the transform is the identity.
func (h HelmertTransform) IsZero() bool {
	return h == HelmertTransform{}
}

// Datum names a catalog datum: an ellipsoid bound to the Helmert transform
// that takes WGS84 cartesian coordinates into the datum. The parameters live
// in a package table that is never written after initialization. The zero
// value is WGS84.
type Datum uint8

// Catalog datums.
const (
	WGS84 Datum = iota
	ED50
	Irl1975
	NAD27
	NAD83
	NTF
	OSGB36
	Potsdam
	TokyoJapan
	WGS72
)

type datumParams struct {
	name      string
	ellipsoid Ellipsoid
	transform HelmertTransform
}

var datumTable = [...]datumParams{
	WGS84:      {"WGS84", WGS84Ellipsoid, HelmertTransform{}},
	ED50:       {"ED50", Intl1924, HelmertTransform{89.5, 93.8, 123.1, -1.2, 0.0, 0.0, 0.156}},
	Irl1975:    {"Irl1975", AiryModified, HelmertTransform{-482.530, 130.596, -564.557, -8.150, -1.042, -0.214, -0.631}},
	NAD27:      {"NAD27", Clarke1866, HelmertTransform{8, -160, -176, 0, 0, 0, 0}},
	NAD83:      {"NAD83", GRS80, HelmertTransform{1.004, -1.910, -0.515, -0.0015, 0.0267, 0.00034, 0.011}},
	NTF:        {"NTF", Clarke1880IGN, HelmertTransform{168, 60, -320, 0, 0, 0, 0}},
	OSGB36:     {"OSGB36", Airy1830, HelmertTransform{-446.448, 125.157, -542.060, 20.4894, -0.1502, -0.2470, -0.8421}},
	Potsdam:    {"Potsdam", Bessel1841, HelmertTransform{-582, -105, -414, -8.3, 1.04, 0.35, -3.08}},
	TokyoJapan: {"TokyoJapan", Bessel1841, HelmertTransform{148, -507, -685, 0, 0, 0, 0}},
	WGS72:      {"WGS72", WGS72Ellipsoid, HelmertTransform{0, 0, -4.5, -0.22, 0, 0, 0.554}},
}

var datums = map[string]Datum{}

func init() {
	for i := range datumTable {
		datums[strings.ToUpper(datumTable[i].name)] = Datum(i)
	}
}

func (d Datum) params() datumParams {
	if !d.Valid() {
		panic(fmt.Sprintf("geodesy: unknown datum %d", uint8(d)))
	}
	return datumTable[d]
}

// Valid reports whether d is a catalog datum.
func (d Datum) Valid() bool { return int(d) < len(datumTable) }

// Name returns the catalog name of the datum.
func (d Datum) Name() string { return d.params().name }

// Ellipsoid returns the datum's reference ellipsoid.
func (d Datum) Ellipsoid() Ellipsoid { return d.params().ellipsoid }

// Transform returns the WGS84 to datum Helmert parameters.
func (d Datum) Transform() HelmertTransform { return d.params().transform }

func (d Datum) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Datum(%d)", uint8(d))
	}
	return datumTable[d].name
}

// DatumByName looks up a catalog datum, ignoring case.
func DatumByName(name string) (Datum, error) {
	d, ok := datums[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return WGS84, errors.Wrapf(ErrInvalidFormat, "unknown datum %q", name)
	}
	return d, nil
}

// Datums returns the catalog sorted by name.
func Datums() []Datum {
	out := make([]Datum, 0, len(datumTable))
	for i := range datumTable {
		out = append(out, Datum(i))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// checkDatum rejects values that are not in the catalog.
func checkDatum(d Datum) error {
	if !d.Valid() {
		return errors.Wrapf(ErrOutOfRange, "unknown datum %d", uint8(d))
	}
	return nil
}
