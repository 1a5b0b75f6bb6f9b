package ui

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/forest-guardian/agro-report-poc/internal/notification"
)

type menuOption struct {
	title   string
	handler func()
}

// ShowMenu displays the main menu until the user exits or input ends. A
// panic in a handler is reported to Discord and ends the menu.
func ShowMenu() {
	defer func() {
		if r := recover(); r != nil {
			failure.Printf("\nPANIC: %v\n", r)
			failure.Println("Please check the input and try again.")
			failure.Println("Exiting...")

			errMessage := fmt.Sprintf("Agro report CLI panic:\n\n%v\n\nStack trace:\n%s", r, debug.Stack())
			notify(notification.SendDiscordErrorNotification(errMessage))
		}
	}()

	runMenu([]menuOption{
		{"Analyze a field image and build its report", AnalyzeImage},
		{"Analyze every image in the images folder", AnalyzeFolder},
		{"Export index maps, pixel dataset and footprint of an image", ExportImage},
		{"View the list of available images", ListImages},
	})
}

func runMenu(menuOptions []menuOption) {
	for {
		info.Println("===================")
		for i, opt := range menuOptions {
			info.Printf("%d. %s\n", i+1, opt.title)
		}
		info.Printf("%d. Exit the application\n", len(menuOptions)+1)

		choice, err := ReadInt("Please enter your choice: ", 1, len(menuOptions)+1)
		if err == io.EOF {
			return
		}
		if err != nil {
			PrintError(fmt.Sprintf("Invalid choice: %s", err.Error()))
			continue
		}
		if choice == len(menuOptions)+1 {
			fmt.Println("Exiting...")
			return
		}
		menuOptions[choice-1].handler()
	}
}
