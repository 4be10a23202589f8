package main

import (
	"fmt"
	"os"

	"github.com/tim-hardcastle/Minnow/source/pf"
	"github.com/tim-hardcastle/Minnow/source/repl"
	"github.com/tim-hardcastle/Minnow/source/text"
)

func main() {
	fmt.Print(text.Logo())
	service := pf.NewService()
	if len(os.Args) > 1 {
		service.InitializeFromFilepath(os.Args[1])
	}
	repl.Start(service)
}
