package main

import (
	"os"

	"signaler-launcher/cmd/signaler/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
