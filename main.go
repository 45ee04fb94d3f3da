package main

import "github.com/gaurav-prasanna/coursebuild/cmd"

func main() {
	cmd.Execute()
}
