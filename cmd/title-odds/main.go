package main

import "github.com/pfrederiksen/title-odds/internal/cli"

func main() {
	cli.Execute()
}
