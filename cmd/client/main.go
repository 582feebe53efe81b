package main

import "credshare/cmd/client/cmd"

func main() {
	cmd.Execute()
}
