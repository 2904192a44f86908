package main

import "github.com/coderFeedForwardAlg/web-term/cmd"

func main() {
	cmd.Execute()
}
