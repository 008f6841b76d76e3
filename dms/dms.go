// Package dms parses and formats angles written as degrees, minutes and
// seconds.
package dms

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Separator is placed between the degree, minute and second components and
// before a compass letter. It is a narrow no-break space.
const Separator = "\u202f"

var (
	// ErrInvalidFormat is returned for malformed input text.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrOutOfRange is returned when a value lies outside its domain.
	ErrOutOfRange = errors.New("out of range")
)

// Format selects how an angle is rendered.
type Format byte

// Format constants
const (
	DegMinSec Format = iota
	DegMin
	Deg
)

var nonNumeric = regexp.MustCompile(`[^0-9.,]+`)

// ParseFormat maps a format name ("d", "dm", "dms" or their long forms
// "deg", "deg+min", "deg+min+sec") to a Format. Unknown names yield DegMinSec.
func ParseFormat(name string) Format {
	switch strings.ToLower(name) {
	case "d", "deg":
		return Deg
	case "dm", "deg+min":
		return DegMin
	default:
		return DegMinSec
	}
}

func (f Format) String() string {
	switch f {
	case Deg:
		return "d"
	case DegMin:
		return "dm"
	default:
		return "dms"
	}
}

// DefaultDecimals is the number of decimal places used for the last
// component when a caller does not specify one.
func (f Format) DefaultDecimals() int {
	switch f {
	case Deg:
		return 4
	case DegMin:
		return 2
	default:
		return 0
	}
}

// Parse converts signed decimal degrees, or degrees/minutes/seconds
// separated by any non-numeric characters and optionally suffixed by a
// compass direction, to decimal degrees. A leading '-' or a trailing S or W
// makes the result negative.
//
//	Parse("51° 28′ 40.12″ N") // 51.4778
//	Parse("000° 00′ 05.31″ W") // -0.0015
func Parse(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, errors.Wrap(ErrInvalidFormat, "empty angle")
	}

	if deg, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(deg, 0) && !math.IsNaN(deg) {
		return deg, nil
	}

	clean := strings.TrimPrefix(trimmed, "-")
	if clean == "" {
		return 0, errors.Wrapf(ErrInvalidFormat, "angle %q", s)
	}
	if last := clean[len(clean)-1:]; strings.ContainsAny(last, "NSEWnsew") {
		clean = clean[:len(clean)-1]
	}
	parts := nonNumeric.Split(clean, -1)
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 || len(parts) > 3 {
		return 0, errors.Wrapf(ErrInvalidFormat, "angle %q", s)
	}

	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidFormat, "angle %q", s)
		}
		vals[i] = v
	}
	if len(parts) > 1 && vals[1] >= 60 {
		return 0, errors.Wrapf(ErrOutOfRange, "minutes in angle %q", s)
	}
	if len(parts) > 2 && vals[2] >= 60 {
		return 0, errors.Wrapf(ErrOutOfRange, "seconds in angle %q", s)
	}

	deg := vals[0] + vals[1]/60 + vals[2]/3600
	if strings.HasPrefix(trimmed, "-") || strings.ContainsAny(trimmed[len(trimmed)-1:], "SWsw") {
		deg = -deg
	}
	return deg, nil
}

// FormatAngle renders degrees using the requested format with decimals
// places on the last component; a negative decimals selects the format's
// default. The sign is discarded and degrees are zero-padded to three digits.
func FormatAngle(degrees float64, f Format, decimals int) string {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return "-"
	}
	if decimals < 0 {
		decimals = f.DefaultDecimals()
	}
	degrees = math.Abs(degrees)

	switch f {
	case Deg:
		return padFixed(degrees, 3, decimals) + "°"
	case DegMin:
		d := math.Floor(degrees)
		m := roundTo(math.Mod(degrees*60, 60), decimals)
		if m >= 60 {
			m = 0
			d++
		}
		return padFixed(d, 3, 0) + "°" + Separator + padFixed(m, 2, decimals) + "′"
	default:
		d := math.Floor(degrees)
		m := math.Mod(math.Floor(degrees*3600/60), 60)
		s := roundTo(math.Mod(degrees*3600, 60), decimals)
		if s >= 60 {
			s = 0
			m++
		}
		if m >= 60 {
			m = 0
			d++
		}
		return padFixed(d, 3, 0) + "°" + Separator + padFixed(m, 2, 0) + "′" + Separator +
			padFixed(s, 2, decimals) + "″"
	}
}

// Lat renders a latitude with a trailing N or S.
func Lat(degrees float64, f Format, decimals int) string {
	s := FormatAngle(degrees, f, decimals)
	if s == "-" {
		return s
	}
	return s[1:] + Separator + hemisphere(degrees, "N", "S")
}

// Lon renders a longitude with a trailing E or W.
func Lon(degrees float64, f Format, decimals int) string {
	s := FormatAngle(degrees, f, decimals)
	if s == "-" {
		return s
	}
	return s + Separator + hemisphere(degrees, "E", "W")
}

// Bearing renders a bearing normalized to 0..360 degrees.
func Bearing(degrees float64, f Format, decimals int) string {
	degrees = math.Mod(math.Mod(degrees, 360)+360, 360)
	s := FormatAngle(degrees, f, decimals)
	if strings.HasPrefix(s, "360") {
		s = "000" + s[3:]
	}
	return s
}

var cardinals = [3][]string{
	{"N", "E", "S", "W"},
	{"N", "NE", "E", "SE", "S", "SW", "W", "NW"},
	{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"},
}

// CompassPoint returns the compass point for a bearing in degrees. precision
// selects 4 (1), 8 (2) or 16 (3) points.
func CompassPoint(bearing float64, precision int) (string, error) {
	if precision < 1 || precision > 3 {
		return "", errors.Wrapf(ErrOutOfRange, "compass precision %d", precision)
	}
	bearing = math.Mod(math.Mod(bearing, 360)+360, 360)
	points := cardinals[precision-1]
	n := len(points)
	return points[int(math.Round(bearing/360*float64(n)))%n], nil
}

func hemisphere(degrees float64, pos, neg string) string {
	if degrees < 0 {
		return neg
	}
	return pos
}

func roundTo(v float64, decimals int) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	return r
}

// padFixed formats v with decimals places and left pads the integer part
// with zeros to width digits.
func padFixed(v float64, width, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	intLen := len(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intLen = i
	}
	if intLen < width {
		s = strings.Repeat("0", width-intLen) + s
	}
	return s
}
