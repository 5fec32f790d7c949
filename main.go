package main

import "github.com/storegenius/storegenius/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
