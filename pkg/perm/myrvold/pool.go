package myrvold

import (
	"sync"

	perrors "github.com/matzehuels/permrank/pkg/errors"
)

var scratch = sync.Pool{
	New: func() any {
		buf := make([]int, 0, 32)
		return &buf
	},
}

func getScratch(n int) *[]int {
	p := scratch.Get().(*[]int)
	if cap(*p) < n {
		*p = make([]int, n)
	}
	*p = (*p)[:n]
	return p
}

// Rank returns the Myrvold-Ruskey rank of perm, a permutation of [0, n). perm
// is not modified.
func Rank(perm []int) (uint64, error) {
	n := len(perm)
	if _, err := Count(n); err != nil {
		return 0, err
	}

	work := getScratch(n)
	defer scratch.Put(work)
	inv := getScratch(n)
	defer scratch.Put(inv)

	if err := Inverse(perm, *inv); err != nil {
		return 0, err
	}
	copy(*work, perm)
	return RankInPlace(*work, *inv, n), nil
}

// Unrank overwrites perm with the permutation of length len(perm) that has
// the given rank. perm is left untouched when rank is out of range.
func Unrank(rank uint64, perm []int) error {
	count, err := Count(len(perm))
	if err != nil {
		return err
	}
	if rank >= count {
		return perrors.RangeViolation(rank, count)
	}
	Identity(perm)
	UnrankInPlace(rank, perm, len(perm))
	return nil
}
