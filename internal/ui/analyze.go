package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/forest-guardian/agro-report-poc/internal/delivery"
	"github.com/forest-guardian/agro-report-poc/internal/notification"
	"github.com/forest-guardian/agro-report-poc/internal/properties"
	"github.com/forest-guardian/agro-report-poc/internal/report"
	"github.com/forest-guardian/agro-report-poc/internal/utils"
)

func options() (delivery.Options, error) {
	ctx, err := ReadContext()
	if err != nil {
		return delivery.Options{}, err
	}
	return delivery.NewOptions(ctx)
}

// notify reports a failed notification; the flow goes on.
func notify(err error) {
	if err != nil {
		failure.Printf("Failed to send notification: %s\n", err.Error())
	}
}

// AnalyzeImage handles the UI for the report of a single image
func AnalyzeImage() {
	PrintWarning("- Band descriptions (Red, Green, Blue, NIR...) take precedence over the band order.\n- Without descriptions the BAND_CONVENTION order is used.")

	path, err := SelectImage()
	if err != nil {
		PrintError(err.Error())
		return
	}
	opts, err := options()
	if err != nil {
		PrintError(err.Error())
		return
	}

	analysis, err := delivery.AnalyzeFile(path, opts)
	if err != nil {
		PrintError(fmt.Sprintf("Error analyzing image: %s", err.Error()))
		notify(notification.SendDiscordErrorNotification(fmt.Sprintf("Error analyzing image %s: %s", filepath.Base(path), err.Error())))
		return
	}

	fmt.Println()
	fmt.Println(analysis.Report.Text())
	notify(notification.SendDiscordSuccessNotification(analysis.Report.Text()))
}

// AnalyzeFolder handles the UI for reporting every image of data/images
func AnalyzeFolder() {
	opts, err := options()
	if err != nil {
		PrintError(err.Error())
		return
	}

	batch, err := delivery.AnalyzeDirectory(imagesPath(), opts)
	if batch != nil {
		printBatch(batch)
	}
	if err != nil {
		PrintError(fmt.Sprintf("Error analyzing images: %s", err.Error()))
		notify(notification.SendDiscordErrorNotification(fmt.Sprintf("Error analyzing images: %s", err.Error())))
		return
	}
	notify(notification.SendDiscordSuccessNotification(fmt.Sprintf("Analyzed %d images, %d failed", len(batch.Analyses), len(batch.Failures))))
}

func printBatch(batch *delivery.BatchResult) {
	for _, analysis := range batch.Analyses {
		success.Printf("\n=== %s ===\n", filepath.Base(analysis.File))
		fmt.Println(analysis.Report.Text())
	}
	if len(batch.Failures) == 0 {
		return
	}
	failures := []string{}
	for _, file := range utils.GetSortedKeys(batch.Failures, true) {
		failures = append(failures, fmt.Sprintf("- %s: %s", filepath.Base(file), batch.Failures[file].Error()))
	}
	PrintWarning(fmt.Sprintf("%d images failed:\n%s", len(failures), strings.Join(failures, "\n")))
}

// ExportImage handles the UI for writing index maps, pixel CSV and GeoJSON
func ExportImage() {
	PrintWarning("The result will be created at the 'data/result' folder.")

	path, err := SelectImage()
	if err != nil {
		PrintError(err.Error())
		return
	}
	opts, err := delivery.NewOptions(report.Context{})
	if err != nil {
		PrintError(err.Error())
		return
	}

	export, err := delivery.ExportFile(path, properties.DataPath("result"), opts)
	if err != nil {
		PrintError(fmt.Sprintf("Error exporting image: %s", err.Error()))
		notify(notification.SendDiscordErrorNotification(fmt.Sprintf("Error exporting image %s: %s", filepath.Base(path), err.Error())))
		return
	}

	message := fmt.Sprintf("Successful export!\n Index images: %s\n Pixel dataset: %s", strings.Join(export.Images, ", "), export.Dataset)
	if export.GeoJSON != "" {
		message += fmt.Sprintf("\n Footprint geojson: %s", export.GeoJSON)
	}
	PrintSuccess(message)
	notify(notification.SendDiscordSuccessNotification(message))
}
