// Command knight runs Knight programming language programs.
package main

import "github.com/knight-lang/go-knight/cmd/knight/cmd"

func main() {
	cmd.Execute()
}
