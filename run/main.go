// Command fdrtrace traces the upstream flow path from a start point over a D8 flow
// direction raster and prints the result envelope.
package main

func main() {
	Execute()
}
