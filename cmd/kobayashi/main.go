// Command kobayashi is a local harness for exercising the combat engine,
// Monte Carlo runner, and optimizer from the command line — not the
// HTTP/JSON boundary or a UI, both of which are explicitly out of scope.
package main

func main() {
	Execute()
}
