package main

import "github.com/thekrishmellow/life-sorter/cmd/jarvis/root"

func main() {
	root.Execute()
}
