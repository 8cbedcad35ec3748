package main

import (
	"assetregistry/cmd/registry/cmd"
)

func main() {
	cmd.Execute()
}
