package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/forest-guardian/agro-report-poc/internal/report"
)

var (
	warning = color.New(color.FgYellow)
	failure = color.New(color.FgRed)
	success = color.New(color.FgGreen)
	info    = color.New(color.FgBlue)
)

var input = bufio.NewReader(os.Stdin)

// SetInput replaces stdin as the source of answers.
func SetInput(r io.Reader) {
	input = bufio.NewReader(r)
}

// PrintWarning displays a warning message with consistent formatting
func PrintWarning(message string) {
	warning.Println("\nWarning:")
	warning.Println(message)
}

func PrintError(message string) {
	failure.Printf("\nError: %s\n", message)
}

func PrintSuccess(message string) {
	success.Printf("\n%s\n", message)
}

func PrintInfo(message string) {
	info.Print(message)
}

// ReadString reads a line with trimming. io.EOF is returned once input is
// exhausted and nothing was read.
func ReadString(prompt string) (string, error) {
	PrintInfo(prompt)
	line, err := input.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func ReadInt(prompt string, min, max int) (int, error) {
	text, err := ReadString(prompt)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", text)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("value must be between %d and %d", min, max)
	}
	return value, nil
}

// ReadDate accepts YYYY-MM-DD or "today".
func ReadDate(prompt string) (time.Time, error) {
	text, err := ReadString(prompt)
	if err != nil {
		return time.Time{}, err
	}
	if text == "today" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(report.DateLayout, text)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s. Please use YYYY-MM-DD", text)
	}
	return date, nil
}

// ReadFloat reads a number, returning def on an empty answer.
func ReadFloat(prompt string, def float64) (float64, error) {
	text, err := ReadString(prompt)
	if err != nil {
		return 0, err
	}
	if text == "" {
		return def, nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(text, ",", "."), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", text)
	}
	return value, nil
}

// ReadContext asks for the field facts that go into the report. Weather is
// optional and skipped on an empty description.
func ReadContext() (report.Context, error) {
	var ctx report.Context
	var err error

	if ctx.Crop, err = ReadString("Enter the crop (soy, corn, wheat...): "); err != nil {
		return ctx, err
	}
	if ctx.Location, err = ReadString("Enter the field location: "); err != nil {
		return ctx, err
	}
	if ctx.Date, err = ReadDate("Enter the image date (YYYY-MM-DD or today): "); err != nil {
		return ctx, err
	}
	if ctx.SowingDate, err = ReadDate("Enter the sowing date (YYYY-MM-DD): "); err != nil {
		return ctx, err
	}
	if ctx.SowingDate.After(ctx.Date) {
		return ctx, report.ErrSowingAfterImage
	}

	description, err := ReadString("Enter the current weather (empty to skip): ")
	if err != nil || description == "" {
		return ctx, err
	}
	weather := &report.Weather{Description: description}
	if weather.TemperatureC, err = ReadFloat("Temperature in °C: ", 0); err != nil {
		return ctx, err
	}
	if weather.HumidityPct, err = ReadFloat("Humidity in %: ", 0); err != nil {
		return ctx, err
	}
	if weather.RainMM, err = ReadFloat("Rain in mm (empty for 0): ", 0); err != nil {
		return ctx, err
	}
	ctx.Weather = weather
	return ctx, nil
}
