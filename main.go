package main

import "photohunt-backend/cmd"

func main() {
	cmd.Run()
}
