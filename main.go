package main

import (
	"github.com/Raindancer118/genesis/cmd"
	"github.com/Raindancer118/genesis/log"
)

func main() {
	log.Init()
	cmd.Execute()
}
