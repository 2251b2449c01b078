package main

import "github.com/colorfulnotion/intcode/internal/daycmd"

func main() {
	daycmd.Main(23, "Category Six: NIC network with NAT")
}
