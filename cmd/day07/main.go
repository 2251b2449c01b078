package main

import "github.com/colorfulnotion/intcode/internal/daycmd"

func main() {
	daycmd.Main(7, "Amplification Circuit: maximum thruster signal")
}
