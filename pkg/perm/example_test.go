package perm_test

import (
	"fmt"
	"slices"

	"github.com/matzehuels/permrank/pkg/perm"
)

func ExampleGenerate() {
	// Generate all permutations of 3 elements
	perms := perm.Generate(3, -1)
	fmt.Println("All permutations of [0,1,2]:")
	for _, p := range perms {
		fmt.Println(p)
	}
	// Output:
	// All permutations of [0,1,2]:
	// [0 1 2]
	// [1 0 2]
	// [2 0 1]
	// [0 2 1]
	// [1 2 0]
	// [2 1 0]
}

func ExampleGenerate_limited() {
	// Generate only the first 5 permutations of 10 elements
	perms := perm.Generate(10, 5)
	fmt.Println("Count:", len(perms))
	// Output:
	// Count: 5
}

func ExampleFactorial() {
	fmt.Println("4! =", perm.Factorial(4))
	fmt.Println("5! =", perm.Factorial(5))
	// Output:
	// 4! = 24
	// 5! = 120
}

func ExamplePermutations() {
	// The yielded slice is the source itself; clone to keep it.
	var kept [][]string
	for p := range perm.Permutations([]string{"x", "y", "z"}) {
		kept = append(kept, slices.Clone(p))
	}
	fmt.Println(kept)
	// Output:
	// [[x y z] [y x z] [z x y] [x z y] [y z x] [z y x]]
}

func ExampleNextPermutation() {
	s := []int{1, 2, 3}
	for ok := true; ok; ok = perm.NextPermutation(s) {
		fmt.Println(s)
	}
	fmt.Println("done:", s)
	// Output:
	// [1 2 3]
	// [1 3 2]
	// [2 1 3]
	// [2 3 1]
	// [3 1 2]
	// [3 2 1]
	// done: [3 2 1]
}
