package bijective_test

import (
	"fmt"

	"github.com/matzehuels/permrank/pkg/perm/bijective"
)

func ExampleCountWithRepetition() {
	count, _ := bijective.CountWithRepetition(2, 3)
	fmt.Println(count)
	// Output:
	// 14
}

func ExampleUnrank() {
	alphabet := []string{"a", "b"}
	buf := make([]string, 3)
	for r := uint64(0); r <= 7; r++ {
		w, _ := bijective.Unrank(buf, r, alphabet)
		fmt.Println(r, w)
	}
	// Output:
	// 0 []
	// 1 [a]
	// 2 [b]
	// 3 [a a]
	// 4 [a b]
	// 5 [b a]
	// 6 [b b]
	// 7 [a a a]
}

func ExampleSearchSpace_Split() {
	ss, _ := bijective.NewSearchSpace([]byte("ab"), 2)
	for _, r := range ss.Split(2) {
		fmt.Printf("[%d, %d):", r.Start, r.End)
		for _, w := range ss.WordsRange(r) {
			fmt.Printf(" %s", w)
		}
		fmt.Println()
	}
	// Output:
	// [0, 3): a b aa
	// [3, 6): ab ba bb
}
