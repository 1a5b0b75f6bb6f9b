package main

import (
	"os"

	"go.uber.org/zap"
)

func main() {
	err := newRootCmd().Execute()
	zap.L().Sync()
	if err != nil {
		os.Exit(1)
	}
}
