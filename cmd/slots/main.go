package main

import (
	"os"

	"github.com/thongular/booking/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
