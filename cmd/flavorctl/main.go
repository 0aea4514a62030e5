package main

import (
	"github.com/OFFIS-RIT/flavor/backend/internal/cli"
	"github.com/OFFIS-RIT/flavor/backend/internal/util"
)

func main() {
	util.LoadEnv()
	cli.Execute()
}
