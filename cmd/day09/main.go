package main

import "github.com/colorfulnotion/intcode/internal/daycmd"

func main() {
	daycmd.Main(9, "Sensor Boost: BOOST keycode and distress signal coordinates")
}
