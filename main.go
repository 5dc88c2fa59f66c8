package main

import "github.com/KaramelBytes/timeuse-cli/cmd"

func main() {
	cmd.Execute()
}
