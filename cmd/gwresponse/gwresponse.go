package main

import (
	"fmt"
	"log"
	"os"

	"github.com/viant/gwresponse/cmd"
	"github.com/viant/gwresponse/cmd/build"
)

var (
	Version      = "development"
	BuildTimeInS string
)

func init() {
	if err := build.SetBuildTime(BuildTimeInS); err != nil {
		panic(err)
	}
}

func main() {
	if err := cmd.RunApp(Version, os.Args[1:]); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		log.Fatal(err)
	}
}
