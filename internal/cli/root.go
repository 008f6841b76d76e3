// Package cli implements the osgrid command-line tool.
package cli

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

// app holds one command tree together with its configuration and logger.
type app struct {
	cfg *viper.Viper
	log *logrus.Logger

	root     *cobra.Command
	togrid   *cobra.Command
	tolatlon *cobra.Command
	convert  *cobra.Command
	datums   *cobra.Command
}

// NewRoot builds the osgrid command tree. Each call returns an independent
// tree with its own configuration.
func NewRoot() *cobra.Command {
	a := &app{
		cfg: viper.New(),
		log: logrus.New(),
	}
	a.root = &cobra.Command{
		Use:   "osgrid",
		Short: "Convert between latitude/longitude and Ordnance Survey grid references.",
		Long: `osgrid converts positions between geodetic datums and the Ordnance Survey
National Grid. Latitudes and longitudes may be given in decimal degrees or
degrees-minutes-seconds with an optional hemisphere letter, e.g. 51.4778 or
51°28′40″N. Use 0.0016W rather than -0.0016 for negative values, or put the
arguments after --.

Configuration can be changed with command-line arguments, a configuration file
given by --config, or environment variables in the format 'OSGRID_var' where
'var' is the name of the option, e.g. OSGRID_DATUM=OSGB36.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setConfig(cmd) },
	}
	a.togrid = a.togridCmd()
	a.tolatlon = a.tolatlonCmd()
	a.convert = a.convertCmd()
	a.datums = a.datumsCmd()

	a.root.AddCommand(a.togrid, a.tolatlon, a.convert, a.datums)

	options := []option{
		{
			name:       "config",
			usage:      "config specifies the configuration file location.",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{a.root.PersistentFlags()},
		},
		{
			name:       "verbose",
			usage:      "verbose logs each conversion step to stderr.",
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{a.root.PersistentFlags()},
		},
		{
			name: "datum",
			usage: `datum is the datum of latitude/longitude input (togrid) or
output (tolatlon).`,
			shorthand:  "d",
			defaultVal: "WGS84",
			flagsets:   []*pflag.FlagSet{a.togrid.Flags(), a.tolatlon.Flags()},
		},
		{
			name: "digits",
			usage: `digits is the number of grid reference digits, 2 to 16 in steps
of two. 0 prints the numeric easting,northing form.`,
			shorthand:  "n",
			defaultVal: 10,
			flagsets:   []*pflag.FlagSet{a.togrid.Flags()},
		},
		{
			name:       "format",
			usage:      "format is the latitude/longitude output format: d, dm or dms.",
			shorthand:  "f",
			defaultVal: "dms",
			flagsets:   []*pflag.FlagSet{a.tolatlon.Flags(), a.convert.Flags()},
		},
		{
			name:       "decimals",
			usage:      "decimals is the number of decimal places of the smallest unit; -1 picks the format's default.",
			defaultVal: -1,
			flagsets:   []*pflag.FlagSet{a.tolatlon.Flags(), a.convert.Flags()},
		},
		{
			name:       "from",
			usage:      "from is the datum being converted from.",
			defaultVal: "WGS84",
			flagsets:   []*pflag.FlagSet{a.convert.Flags()},
		},
		{
			name:       "to",
			usage:      "to is the datum being converted to.",
			defaultVal: "OSGB36",
			flagsets:   []*pflag.FlagSet{a.convert.Flags()},
		},
	}

	// Set the prefix for configuration environment variables.
	a.cfg.SetEnvPrefix("OSGRID")
	a.cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
			a.cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
	return a.root
}

// Execute runs the osgrid command line.
func Execute() error {
	return NewRoot().Execute()
}

// setConfig reads the configuration file, if any, and sets up logging.
func (a *app) setConfig(cmd *cobra.Command) error {
	if cfgpath := a.cfg.GetString("config"); cfgpath != "" {
		a.cfg.SetConfigFile(cfgpath)
		if err := a.cfg.ReadInConfig(); err != nil {
			return errors.Wrap(err, "osgrid: problem reading configuration file")
		}
	}

	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	if a.cfg.GetBool("verbose") {
		a.log.SetLevel(logrus.DebugLevel)
	} else {
		a.log.SetLevel(logrus.InfoLevel)
	}
	return nil
}
