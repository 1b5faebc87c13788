package main

import "github.com/angelospk/opensubtitles-go/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
