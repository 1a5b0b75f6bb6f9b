package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/common-nighthawk/go-figure"
	bannercolor "github.com/fatih/color"
	"github.com/forest-guardian/agro-report-poc/internal/properties"
	"github.com/forest-guardian/agro-report-poc/internal/ui"
	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

func printBanner() {
	figure1 := figure.NewFigure("Agro", "isometric1", true)
	figure2 := figure.NewFigure("Report", "isometric1", true)
	bannercolor.Cyan(figure1.String())
	bannercolor.Cyan(figure2.String())
	fmt.Println()
}

// loadEnv loads the first .env found in the working directory or its
// parent. A missing file is not an error.
func loadEnv() error {
	for _, path := range []string{".env", "../.env"} {
		err := godotenv.Load(path)
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return eris.Wrapf(err, "failed to load %s", path)
		}
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "agro-report",
		Short:        "Vegetation and water index reports from multispectral or RGB field images",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnv(); err != nil {
				return err
			}
			return properties.InitLogger()
		},
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()
			ui.ShowMenu()
		},
	}

	root.AddCommand(
		newAnalyzeCmd(),
		newBatchCmd(),
		newExportCmd(),
		newImagesCmd(),
	)
	return root
}
