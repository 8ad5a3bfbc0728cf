package main

import (
	"github.com/jgrant/capgains/cmd"
)

func main() {
	cmd.Execute()
}
