package main

import "github.com/kestrelmesh/trimesh/cmd/trimeshdemo/cmd"

func main() {
	cmd.Execute()
}
