package main

import "github.com/forcebit/rsapad-go/internal/cli"

func main() {
	cli.Execute()
}
