package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/forest-guardian/agro-report-poc/internal/bands"
	"github.com/forest-guardian/agro-report-poc/internal/delivery"
	"github.com/forest-guardian/agro-report-poc/internal/glossary"
	"github.com/forest-guardian/agro-report-poc/internal/index"
	"github.com/forest-guardian/agro-report-poc/internal/properties"
	"github.com/forest-guardian/agro-report-poc/internal/report"
	"github.com/forest-guardian/agro-report-poc/internal/utils"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

// analysisFlags are shared by every command that computes indices.
type analysisFlags struct {
	convention string
	table      string
	noCache    bool
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.convention, "convention", "", "band order for unlabeled rasters: rgbn or bgrn (default BAND_CONVENTION or rgbn)")
	cmd.Flags().StringVar(&f.table, "table", "", "YAML interpretation table overriding the built-in one (default INTERPRETATION_TABLE_PATH)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "always recompute indices")
}

func (f *analysisFlags) options(ctx report.Context) (delivery.Options, error) {
	opts, err := delivery.NewOptions(ctx)
	if err != nil {
		return opts, err
	}
	if f.convention != "" {
		if opts.Convention, err = bands.ParseConvention(f.convention); err != nil {
			return opts, err
		}
	}
	if f.table != "" {
		gloss, err := glossary.Load(f.table)
		if err != nil {
			return opts, eris.Wrapf(err, "failed to load interpretation table %s", f.table)
		}
		opts.Engine = index.NewEngine(index.Config{Epsilon: index.DefaultEpsilon, Glossary: gloss})
	}
	if f.noCache {
		opts.Cache = nil
	}
	return opts, nil
}

// contextFlags hold the field facts of a report.
type contextFlags struct {
	crop, location     string
	date, sowingDate   string
	weather            string
	temperature, humid float64
	rain               float64
}

func (f *contextFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.crop, "crop", "", "crop name (soy, corn, wheat or soja, maíz, trigo)")
	cmd.Flags().StringVar(&f.location, "location", "", "field location")
	cmd.Flags().StringVar(&f.date, "date", "", "image date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.sowingDate, "sowing-date", "", "sowing date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.weather, "weather", "", "current weather description; enables the weather line")
	cmd.Flags().Float64Var(&f.temperature, "temperature", 0, "current temperature in °C")
	cmd.Flags().Float64Var(&f.humid, "humidity", 0, "current relative humidity in %")
	cmd.Flags().Float64Var(&f.rain, "rain", 0, "current rain in mm")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("sowing-date")
}

func (f *contextFlags) context() (report.Context, error) {
	date, err := time.Parse(report.DateLayout, f.date)
	if err != nil {
		return report.Context{}, fmt.Errorf("invalid --date %q, use YYYY-MM-DD", f.date)
	}
	sowing, err := time.Parse(report.DateLayout, f.sowingDate)
	if err != nil {
		return report.Context{}, fmt.Errorf("invalid --sowing-date %q, use YYYY-MM-DD", f.sowingDate)
	}

	ctx := report.Context{Crop: f.crop, Location: f.location, Date: date, SowingDate: sowing}
	if f.weather != "" {
		ctx.Weather = &report.Weather{
			Description:  f.weather,
			TemperatureC: f.temperature,
			HumidityPct:  f.humid,
			RainMM:       f.rain,
		}
	}
	return ctx, nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newAnalyzeCmd() *cobra.Command {
	var (
		af     analysisFlags
		cf     contextFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "analyze <image|->",
		Short: "Compute the indices of one image and print its report",
		Long:  "Compute the indices of one image and print its report. With - the GeoTIFF is read from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cf.context()
			if err != nil {
				return err
			}
			opts, err := af.options(ctx)
			if err != nil {
				return err
			}

			var analysis *delivery.Analysis
			if args[0] == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read image from stdin: %w", err)
				}
				analysis, err = delivery.AnalyzeBytes("stdin.tif", data, opts)
				if err != nil {
					return err
				}
			} else {
				analysis, err = delivery.AnalyzeFile(args[0], opts)
				if err != nil {
					return err
				}
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), analysis)
			}
			fmt.Fprintln(cmd.OutOrStdout(), analysis.Report.Text())
			return nil
		},
	}
	af.register(cmd)
	cf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var (
		af     analysisFlags
		cf     contextFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "batch [folder]",
		Short: "Report every image of a folder (default data/images)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := properties.DataPath("images")
			if len(args) == 1 {
				dir = args[0]
			}
			ctx, err := cf.context()
			if err != nil {
				return err
			}
			opts, err := af.options(ctx)
			if err != nil {
				return err
			}

			batch, err := delivery.AnalyzeDirectory(dir, opts)
			if batch != nil {
				out := cmd.OutOrStdout()
				if asJSON {
					failures := map[string]string{}
					for file, ferr := range batch.Failures {
						failures[file] = ferr.Error()
					}
					if werr := writeJSON(out, map[string]any{"analyses": batch.Analyses, "failures": failures}); werr != nil {
						return werr
					}
				} else {
					for _, analysis := range batch.Analyses {
						fmt.Fprintf(out, "=== %s ===\n%s\n\n", filepath.Base(analysis.File), analysis.Report.Text())
					}
					for _, file := range utils.GetSortedKeys(batch.Failures, true) {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", filepath.Base(file), batch.Failures[file].Error())
					}
				}
			}
			return err
		},
	}
	af.register(cmd)
	cf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analyses as JSON")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		af     analysisFlags
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "export <image>",
		Short: "Write index heatmaps, the per-pixel CSV and the footprint GeoJSON of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := af.options(report.Context{})
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = properties.DataPath("result")
			}

			export, err := delivery.ExportFile(args[0], outDir, opts)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), export)
		},
	}
	af.register(cmd)
	cmd.Flags().StringVar(&outDir, "out", "", "output folder (default data/result)")
	return cmd
}

func newImagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "images [folder]",
		Short: "List the images of a folder (default data/images)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := properties.DataPath("images")
			if len(args) == 1 {
				dir = args[0]
			}
			images, err := delivery.ListImages(dir)
			if err != nil {
				return err
			}
			for _, image := range images {
				fmt.Fprintln(cmd.OutOrStdout(), filepath.Base(image))
			}
			return nil
		},
	}
}
