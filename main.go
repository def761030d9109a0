// Package main is the entry point for the sbcharts CLI, which stores StatsBomb
// open-data matches and draws pass networks, shot maps and goal freeze frames.
package main

import "github.com/pable/go-sb-charts/cmd"

func main() {
	cmd.Execute()
}
