package cli

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tzneal/geodesy"
	"github.com/tzneal/geodesy/dms"
)

func (a *app) togridCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "togrid LAT LON",
		Short: "Convert a latitude/longitude to a grid reference.",
		Long: `togrid converts a latitude/longitude on --datum to an OS National Grid
reference with --digits digits.`,
		Args:              cobra.ExactArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			datum, err := geodesy.DatumByName(a.cfg.GetString("datum"))
			if err != nil {
				return err
			}
			p, err := parseLatLon(args[0], args[1], datum)
			if err != nil {
				return err
			}
			ref, err := p.ToGridRef()
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"datum":     datum.Name(),
				"latitude":  p.Latitude,
				"longitude": p.Longitude,
				"easting":   ref.Easting,
				"northing":  ref.Northing,
			}).Debug("projected to national grid")

			s, err := ref.Format(a.cfg.GetInt("digits"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func (a *app) tolatlonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tolatlon GRIDREF",
		Short: "Convert a grid reference to a latitude/longitude.",
		Long: `tolatlon converts an OS National Grid reference, lettered ("SU 387 148")
or numeric ("438700,114800"), to a latitude/longitude on --datum.`,
		Args:              cobra.MinimumNArgs(1),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			datum, err := geodesy.DatumByName(a.cfg.GetString("datum"))
			if err != nil {
				return err
			}
			ref, err := geodesy.ParseGridRef(strings.Join(args, " "))
			if err != nil {
				return err
			}
			p, err := ref.ToLatLon(datum)
			if err != nil {
				return err
			}
			a.log.WithFields(logrus.Fields{
				"datum":     datum.Name(),
				"easting":   ref.Easting,
				"northing":  ref.Northing,
				"latitude":  p.Latitude,
				"longitude": p.Longitude,
			}).Debug("projected from national grid")

			fmt.Fprintln(cmd.OutOrStdout(), a.formatLatLon(p))
			return nil
		},
	}
}

func (a *app) convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert LAT LON",
		Short: "Convert a latitude/longitude between datums.",
		Long: `convert transforms a latitude/longitude on --from to --to, going through
WGS84 when neither datum is WGS84.`,
		Args:              cobra.ExactArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := geodesy.DatumByName(a.cfg.GetString("from"))
			if err != nil {
				return err
			}
			to, err := geodesy.DatumByName(a.cfg.GetString("to"))
			if err != nil {
				return err
			}
			p, err := parseLatLon(args[0], args[1], from)
			if err != nil {
				return err
			}
			q := p.ConvertDatum(to)
			a.log.WithFields(logrus.Fields{
				"from":      from.Name(),
				"to":        to.Name(),
				"latitude":  q.Latitude,
				"longitude": q.Longitude,
			}).Debug("converted datum")

			fmt.Fprintln(cmd.OutOrStdout(), a.formatLatLon(q))
			return nil
		},
	}
}

func (a *app) datumsCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "datums",
		Short:             "List the supported datums.",
		Args:              cobra.NoArgs,
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range geodesy.Datums() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s%s\n", d.Name(), d.Ellipsoid().Name())
			}
			return nil
		},
	}
}

func (a *app) formatLatLon(p geodesy.LatLon) string {
	return p.Format(dms.ParseFormat(a.cfg.GetString("format")), a.cfg.GetInt("decimals"))
}

func parseLatLon(lat, lon string, datum geodesy.Datum) (geodesy.LatLon, error) {
	latitude, err := dms.Parse(lat)
	if err != nil {
		return geodesy.LatLon{}, errors.Wrapf(err, "latitude %q", lat)
	}
	longitude, err := dms.Parse(lon)
	if err != nil {
		return geodesy.LatLon{}, errors.Wrapf(err, "longitude %q", lon)
	}
	return geodesy.NewLatLon(latitude, longitude, datum), nil
}
