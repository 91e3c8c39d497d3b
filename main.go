package main

import "github.com/earlab/aiprobe/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
