// Package main provides the Strata framework CLI.
package main

import (
	"fmt"
	"os"

	"github.com/strata-ml/strata/array"
	_ "github.com/strata-ml/strata/backend/native"
	"github.com/strata-ml/strata/backend/webgpu"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Strata %s\n", version)
			return
		case "devices":
			printDevices()
			return
		}
	}

	fmt.Println("Strata - N-dimensional arrays for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  devices    List available devices")
}

func printDevices() {
	fmt.Printf("default: %s\n", array.DefaultDevice())
	fmt.Println("native:  available")
	if webgpu.IsAvailable() {
		gpu, err := webgpu.New()
		if err != nil {
			fmt.Printf("webgpu:  error: %v\n", err)
			return
		}
		defer gpu.Release()
		fmt.Printf("webgpu:  %s\n", gpu.Name())
	} else {
		fmt.Println("webgpu:  not available")
	}
}
