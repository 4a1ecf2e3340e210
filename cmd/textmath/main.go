package main

import "github.com/textmath/textmath/cmd"

func main() {
	cmd.Execute()
}
