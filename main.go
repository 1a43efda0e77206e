package main

import "neighbrewhood-backend/cmd"

func main() {
	cmd.Run()
}
