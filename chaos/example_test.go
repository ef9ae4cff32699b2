package chaos_test

import (
	"fmt"

	"github.com/katalvlaran/choreo/chaos"
)

// ExampleRK4 integrates the Lorenz system for zero steps: only the initial
// condition comes back.
func ExampleRK4() {
	tr, err := chaos.RK4(chaos.DefaultLorenz().Func(), chaos.Vector{1, 1, 1}, 0, 0.01)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(tr.Points)

	// Output:
	// [[1 1 1]]
}

// ExampleMapper runs a Lorenz mapping trajectory through its lifecycle.
func ExampleMapper() {
	m, err := chaos.NewMapper(chaos.DefaultLorenz().Func(), chaos.Vector{1, 1, 1}, 100, 0.01)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(m.State())
	tr, _ := m.Run()
	fmt.Println(m.State(), tr.Len())

	// Output:
	// uninitialized
	// done 101
}
