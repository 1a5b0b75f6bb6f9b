package properties

import (
	"os"
	"path/filepath"
	"strconv"
)

func RootPath() string {
	root := os.Getenv("ROOT_PATH")
	if root == "" {
		return "."
	}
	return root
}

// DataPath joins elem under <ROOT_PATH>/data.
func DataPath(elem ...string) string {
	return filepath.Join(append([]string{RootPath(), "data"}, elem...)...)
}

func LogLevel() string {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return level
	}
	return "info"
}

// LogFormat is "console" or "json".
func LogFormat() string {
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		return format
	}
	return "console"
}

func BandConvention() string {
	return os.Getenv("BAND_CONVENTION")
}

func InterpretationTablePath() string {
	return os.Getenv("INTERPRETATION_TABLE_PATH")
}

// Workers is the batch analysis pool size, 4 when unset or invalid.
func Workers() int {
	n, err := strconv.Atoi(os.Getenv("WORKERS"))
	if err != nil || n < 1 {
		return 4
	}
	return n
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}

type Color struct {
	R, G, B uint8
}

// ColorNoData paints pixels without a valid index value.
var ColorNoData = Color{0, 0, 0}
