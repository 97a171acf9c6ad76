package main

import "github.com/siddhantjain/macro-tracker/cmd/macrotracker"

func main() {
	macrotracker.Execute()
}
