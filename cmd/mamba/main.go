package main

import "mamba/internal/game"

func main() {
	game.RunDesktop()
}
