package geodesy

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	letterH = 7
	letterI = 8

	gridSquare     = 100000.0 // 100km, metres
	maxGridDigits  = 16       // 8 digits each for easting and northing, millimetres
	maxGroupDigits = maxGridDigits / 2
	maxE100k       = 6
	maxN100k       = 12

	// relative slack added before truncating to a grid precision, a few
	// thousand ulps, so float noise below the last rendered digit does not
	// drop it while real sub-unit remainders still truncate
	truncRelEpsilon = 1e-12
)

// GridRef is an Ordnance Survey National Grid easting/northing in metres from
// the false origin, always on OSGB36. Values outside the lettered grid are
// allowed numerically but cannot be rendered in letter form.
type GridRef struct {
	Easting  float64
	Northing float64
}

// ToLatLon converts the grid reference to a position on datum.
func (g GridRef) ToLatLon(datum Datum) (LatLon, error) {
	return DefaultNationalGrid.ConvertToGeodetic(g, datum)
}

// Format renders the grid reference with digits digits, split evenly between
// easting and northing: 6 gives 100m squares, 10 metres and 16 millimetres.
// Digits of 0 renders the plain numeric form "easting,northing".
// Lettered digits are truncated, not rounded; only remainders within about
// one part in 10^12 of the next digit are treated as float noise and carried.
func (g GridRef) Format(digits int) (string, error) {
	if digits < 0 || digits > maxGridDigits || digits%2 != 0 {
		return "", errors.Wrapf(ErrOutOfRange, "grid reference precision %d", digits)
	}
	e := g.Easting
	n := g.Northing
	if math.IsNaN(e) || math.IsNaN(n) || math.IsInf(e, 0) || math.IsInf(n, 0) {
		return "", errors.Wrapf(ErrOutOfRange, "grid reference %v,%v", e, n)
	}

	if digits == 0 {
		return formatMetres(e) + "," + formatMetres(n), nil
	}

	e100k := math.Floor(e / gridSquare)
	n100k := math.Floor(n / gridSquare)
	if e100k < 0 || e100k > maxE100k || n100k < 0 || n100k > maxN100k {
		return "", errors.Wrapf(ErrOutOfRange, "grid reference %v,%v outside lettered grid", e, n)
	}
	letters := gridLetters(int(e100k), int(n100k))

	precision := digits / 2
	east := truncateDigits(math.Mod(e, gridSquare), precision)
	north := truncateDigits(math.Mod(n, gridSquare), precision)

	buf := bytes.Buffer{}
	buf.Write(letters[:])
	fmt.Fprintf(&buf, " %0*d %0*d", precision, east, precision, north)
	return buf.String(), nil
}

// String renders the grid reference to the metre, or "" if it lies outside
// the lettered grid.
func (g GridRef) String() string {
	s, _ := g.Format(10)
	return s
}

// gridLetters returns the two letter code of a 100km square. The first
// letter picks a 500km square, the second a 100km square within it; both run
// over a 5x5 tile with 'I' skipped.
func gridLetters(e100k, n100k int) [2]byte {
	l1 := (19 - n100k) - (19-n100k)%5 + (e100k+10)/5
	l2 := (19-n100k)*5%25 + e100k%5
	if l1 > letterH {
		l1++
	}
	if l2 > letterH {
		l2++
	}
	return [2]byte{byte('A' + l1), byte('A' + l2)}
}

// truncateDigits returns the first precision digits of a within-square
// offset, truncating towards the square's south-west corner.
func truncateDigits(v float64, precision int) int64 {
	exp := 5 - precision
	var r float64
	if exp >= 0 {
		r = v / math.Pow10(exp)
	} else {
		r = v * math.Pow10(-exp)
	}
	r = math.Floor(r + math.Abs(r)*truncRelEpsilon)
	if limit := math.Pow10(precision) - 1; r > limit {
		r = limit
	}
	return int64(r)
}

// formatMetres renders a coordinate with at least six integer digits, adding
// millimetres only when the value is not whole.
func formatMetres(v float64) string {
	var s string
	if v == math.Trunc(v) {
		s = strconv.FormatFloat(v, 'f', 0, 64)
	} else {
		s = strconv.FormatFloat(v, 'f', 3, 64)
	}
	if strings.HasPrefix(s, "-") {
		return s
	}
	intLen := len(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intLen = i
	}
	if intLen < 6 {
		s = strings.Repeat("0", 6-intLen) + s
	}
	return s
}

// ParseGridRef parses a lettered grid reference such as "SU 387 148",
// "SU387148" or "SU 38700 14800", or a numeric "easting,northing" pair.
// Digit groups shorter than five digits are the south-west corner of their
// square; groups longer than five carry sub-metre digits.
func ParseGridRef(gridRef string) (GridRef, error) {
	ref := strings.TrimSpace(gridRef)
	if ref == "" {
		return GridRef{}, errors.Wrap(ErrInvalidFormat, "empty grid reference")
	}
	if strings.Contains(ref, ",") {
		return parseNumericGridRef(ref)
	}

	if len(ref) < 2 || !isalpha(ref[0]) || !isalpha(ref[1]) {
		return GridRef{}, errors.Wrapf(ErrInvalidFormat, "grid reference %q: missing grid letters", gridRef)
	}
	l1 := int(toupper(ref[0]) - 'A')
	l2 := int(toupper(ref[1]) - 'A')
	if l1 == letterI || l2 == letterI {
		return GridRef{}, errors.Wrapf(ErrInvalidFormat, "grid reference %q: invalid grid letter", gridRef)
	}
	if l1 > letterI {
		l1--
	}
	if l2 > letterI {
		l2--
	}

	e100k := ((l1-2)%5)*5 + l2%5
	n100k := (19 - (l1/5)*5) - l2/5
	if e100k < 0 || e100k > maxE100k || n100k < 0 || n100k > maxN100k {
		return GridRef{}, errors.Wrapf(ErrInvalidFormat, "grid reference %q: grid square outside the grid", gridRef)
	}

	groups := strings.Fields(ref[2:])
	switch len(groups) {
	case 0:
		groups = []string{"", ""}
	case 1:
		digits := groups[0]
		if len(digits)%2 != 0 {
			return GridRef{}, errors.Wrapf(ErrInvalidFormat, "grid reference %q: odd number of digits", gridRef)
		}
		groups = []string{digits[:len(digits)/2], digits[len(digits)/2:]}
	case 2:
	default:
		return GridRef{}, errors.Wrapf(ErrInvalidFormat, "grid reference %q: too many digit groups", gridRef)
	}
	if len(groups[0]) != len(groups[1]) {
		return GridRef{}, errors.Wrapf(ErrInvalidFormat, "grid reference %q: easting and northing lengths differ", gridRef)
	}
	if len(groups[0]) > maxGroupDigits {
		return GridRef{}, errors.Wrapf(ErrInvalidFormat, "grid reference %q: too many digits", gridRef)
	}

	e, err := squareOffset(e100k, groups[0])
	if err != nil {
		return GridRef{}, errors.Wrapf(err, "grid reference %q", gridRef)
	}
	n, err := squareOffset(n100k, groups[1])
	if err != nil {
		return GridRef{}, errors.Wrapf(err, "grid reference %q", gridRef)
	}
	return GridRef{Easting: e, Northing: n}, nil
}

// squareOffset combines a 100km square index with a digit group, padding the
// group to metres.
func squareOffset(square int, digits string) (float64, error) {
	for i := 0; i < len(digits); i++ {
		if !isdigit(digits[i]) {
			return 0, errors.Wrapf(ErrInvalidFormat, "invalid digit %q", digits[i])
		}
	}
	if len(digits) < 5 {
		digits += strings.Repeat("0", 5-len(digits))
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, errors.Wrap(ErrInvalidFormat, err.Error())
	}
	scale := math.Pow10(len(digits) - 5)
	return (float64(square)*gridSquare*scale + float64(v)) / scale, nil
}

func parseNumericGridRef(ref string) (GridRef, error) {
	parts := strings.Split(ref, ",")
	if len(parts) != 2 {
		return GridRef{}, errors.Wrapf(ErrInvalidFormat, "numeric grid reference %q", ref)
	}
	var vals [2]float64
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if !isDecimal(p) {
			return GridRef{}, errors.Wrapf(ErrInvalidFormat, "numeric grid reference %q", ref)
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return GridRef{}, errors.Wrapf(ErrInvalidFormat, "numeric grid reference %q", ref)
		}
		vals[i] = v
	}
	return GridRef{Easting: vals[0], Northing: vals[1]}, nil
}

// isDecimal reports whether s is digits with at most one inner decimal point
// and an optional leading minus sign.
func isDecimal(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	dot := -1
	for i := 0; i < len(s); i++ {
		switch {
		case isdigit(s[i]):
		case s[i] == '.' && dot < 0:
			dot = i
		default:
			return false
		}
	}
	return dot != 0 && dot != len(s)-1
}

func isdigit(r byte) bool {
	return r >= '0' && r <= '9'
}

func isalpha(r byte) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func toupper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
