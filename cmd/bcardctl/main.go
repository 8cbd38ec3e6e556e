package main

import "github.com/spec-kit/bcard-portal/cmd/bcardctl/cmd"

func main() {
	cmd.Execute()
}
