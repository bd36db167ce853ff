// Package main converts a pose file to the KALIBR or TUM_RGBD layout.
package main

import (
	"fmt"
	"os"

	"github.com/edaniels/golog"
	"github.com/urfave/cli/v2"
	"go.viam.com/utils"

	"go.viam.com/vio/logging"
	"go.viam.com/vio/poseformat"
)

const (
	flagConfig          = "config"
	flagInFile          = "infile"
	flagOutFile         = "outfile"
	flagInQuatOrder     = "in-quat-order"
	flagInTimeUnit      = "in-time-unit"
	flagOutputFormat    = "output-format"
	flagOutputDelimiter = "output-delimiter"
	flagLogFile         = "log-file"
	flagDebug           = "debug"
)

func main() {
	var (
		logger  logging.Logger
		logFile *logging.FileAppender
	)

	app := &cli.App{
		Name:  "convert",
		Usage: "convert a pose file of time, position and quaternion rows to a standard layout",
		Flags: convertFlags(),
		Before: func(c *cli.Context) error {
			if c.Bool(flagDebug) {
				logger = logging.FromZapCompatible(golog.NewDebugLogger("convert"))
			} else {
				logger = logging.NewLogger("convert")
			}
			if path := c.String(flagLogFile); path != "" {
				logFile = logging.NewFileAppender(path, 10)
				logger.AddAppender(logFile)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if logFile == nil {
				return nil
			}
			return logFile.Close()
		},
		Action: func(c *cli.Context) error {
			cfg, err := configFromContext(c)
			if err != nil {
				return err
			}
			summary, err := poseformat.Convert(c.Context, cfg, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "wrote %s\n%s\n", summary.OutFile, summary)
			utils.UncheckedError(logger.Sync())
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func convertFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  flagConfig,
			Usage: "JSON5 conversion config in `FILE`, flags given on the command line take precedence",
		},
		&cli.StringFlag{
			Name:  flagInFile,
			Usage: "pose file, time in secs or nanosecs at column 0 or 1, positions before quaternions",
		},
		&cli.StringFlag{
			Name:  flagOutFile,
			Usage: "output file (default: <infile>.out)",
		},
		&cli.StringFlag{
			Name:  flagInQuatOrder,
			Value: string(poseformat.QuatOrderXYZW),
			Usage: "input quaternion order, xyzw or wxyz",
		},
		&cli.StringFlag{
			Name:  flagInTimeUnit,
			Usage: "input time unit, s, ms, us or ns (default: detected as s or ns)",
		},
		&cli.StringFlag{
			Name:  flagOutputFormat,
			Value: string(poseformat.FormatTUMRGBD),
			Usage: "KALIBR [t[ns],x,y,z,qx,qy,qz,qw] or TUM_RGBD [t[s] x y z qx qy qz qw]",
		},
		&cli.StringFlag{
			Name:  flagOutputDelimiter,
			Value: ",",
			Usage: "output column delimiter",
		},
		&cli.StringFlag{
			Name:  flagLogFile,
			Usage: "also write logs to `FILE`, rotated every 10MB",
		},
		&cli.BoolFlag{
			Name:    flagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	}
}

// configFromContext starts from the --config file, if any, and applies every flag set explicitly.
func configFromContext(c *cli.Context) (poseformat.Config, error) {
	var cfg poseformat.Config
	if path := c.String(flagConfig); path != "" {
		var err error
		if cfg, err = poseformat.ReadConfig(path); err != nil {
			return poseformat.Config{}, err
		}
	}
	override := func(name string, dst *string) {
		if c.IsSet(name) || *dst == "" {
			*dst = c.String(name)
		}
	}
	override(flagInFile, &cfg.InFile)
	override(flagOutFile, &cfg.OutFile)
	override(flagOutputDelimiter, &cfg.OutputDelimiter)
	inTimeUnit, inQuatOrder, outputFormat := string(cfg.InTimeUnit), string(cfg.InQuatOrder), string(cfg.OutputFormat)
	override(flagInTimeUnit, &inTimeUnit)
	override(flagInQuatOrder, &inQuatOrder)
	override(flagOutputFormat, &outputFormat)
	cfg.InTimeUnit = poseformat.TimeUnit(inTimeUnit)
	cfg.InQuatOrder = poseformat.QuatOrder(inQuatOrder)
	cfg.OutputFormat = poseformat.OutputFormat(outputFormat)
	return cfg, nil
}
