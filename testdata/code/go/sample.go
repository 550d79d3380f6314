package main

import "fmt"

// Greeter greets.
type Greeter struct {
	name string
}

// Greet returns a greeting.
func (g *Greeter) Greet() string {
	return fmt.Sprintf("hello %s", g.name)
}

func main() {
	callback := func(x int) int {
		return x * 2
	}
	fmt.Println(callback(5))
}

var handler = func() { fmt.Println("hi") }
