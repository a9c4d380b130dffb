package main

import "github.com/fant-market/client/cmd"

func main() {
	cmd.Execute()
}
