package main

import (
	"github.com/mj1618/visible/cmd"

	_ "github.com/mj1618/visible/internal/platform/chrome"
	_ "github.com/mj1618/visible/internal/platform/snapshot"
)

func main() {
	cmd.Execute()
}
