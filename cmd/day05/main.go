package main

import "github.com/colorfulnotion/intcode/internal/daycmd"

func main() {
	daycmd.Main(5, "Sunny with a Chance of Asteroids: thermal environment diagnostics")
}
