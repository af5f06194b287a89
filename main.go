package main

import "github.com/greenroute/hopper/cmd"

func main() {
	cmd.Execute()
}
