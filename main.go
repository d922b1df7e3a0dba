package main

import "github.com/frahmantamala/workforce-ops/cmd"

func main() {
	cmd.Execute()
}
