package main

import "github.com/pinpt/crk/cmd"

func main() {
	cmd.Execute()
}
