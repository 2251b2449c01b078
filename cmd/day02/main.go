package main

import "github.com/colorfulnotion/intcode/internal/daycmd"

func main() {
	daycmd.Main(2, "1202 Program Alarm: run the patched program and search noun/verb")
}
