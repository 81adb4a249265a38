package main

import "github.com/arloliu/go-b1500/cmd/b1500ctl/cmd"

func main() {
	cmd.Execute()
}
