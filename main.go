package main

import "github.com/luxgs/eofetch/cmd"

func main() {
	cmd.Execute()
}
