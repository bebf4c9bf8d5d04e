package main

import "github.com/KaramelBytes/qbank-cli/cmd"

func main() {
	cmd.Execute()
}
