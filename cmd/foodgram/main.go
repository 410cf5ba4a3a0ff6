package main

import "github.com/matt-dz/foodgram/internal/cli"

func main() {
	cli.Execute()
}
