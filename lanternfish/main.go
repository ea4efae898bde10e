// Command lanternfish counts and simulates lanternfish populations.
package main

import "github.com/sarchlab/lanternfish/lanternfish/cmd"

func main() {
	cmd.Execute()
}
