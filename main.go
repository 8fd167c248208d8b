// Streamline is a point-to-point file transfer tool over TCP.
package main

import "github.com/KIRKR101/Streamline/cmd"

func main() {
	cmd.Execute()
}
