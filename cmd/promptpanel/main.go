package main

import "github.com/diogo/promptpanel/internal/commands"

func main() {
	commands.Execute()
}
