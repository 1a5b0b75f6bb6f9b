package ui

import (
	"fmt"
	"path/filepath"

	"github.com/forest-guardian/agro-report-poc/internal/delivery"
	"github.com/forest-guardian/agro-report-poc/internal/properties"
)

func imagesPath() string {
	return properties.DataPath("images")
}

// ListImages prints the images available under data/images.
func ListImages() {
	images, err := delivery.ListImages(imagesPath())
	if err != nil {
		PrintError(err.Error())
		return
	}
	PrintWarning("To add a new image, copy its '.tif' file into the 'data/images' folder.")
	if len(images) == 0 {
		PrintError("No images found")
		return
	}

	success.Println("\nAvailable images:")
	for i, image := range images {
		success.Printf("%d. %s\n", i+1, filepath.Base(image))
	}
}

// SelectImage lists data/images and returns the chosen path.
func SelectImage() (string, error) {
	images, err := delivery.ListImages(imagesPath())
	if err != nil {
		return "", err
	}
	if len(images) == 0 {
		return "", fmt.Errorf("no images found in %s", imagesPath())
	}

	success.Println("\nAvailable images:")
	for i, image := range images {
		success.Printf("%d. %s\n", i+1, filepath.Base(image))
	}
	choice, err := ReadInt("Enter the number of the image you want to use: ", 1, len(images))
	if err != nil {
		return "", err
	}
	return images[choice-1], nil
}
