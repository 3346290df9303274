package main

import "github.com/lexcodex/featurekit/app/cmd"

func main() {
	cmd.Execute()
}
