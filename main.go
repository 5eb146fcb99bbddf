package main

import "dailydare-backend/cmd"

func main() {
	cmd.Run()
}
