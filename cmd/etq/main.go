package main

import "github.com/victordelrosal/epictaskquest/cmd/etq/root"

func main() {
	root.Execute()
}
