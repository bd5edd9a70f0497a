package scheme

import (
	"math/big"
	"slices"

	perrors "github.com/matzehuels/permrank/pkg/errors"
	"github.com/matzehuels/permrank/pkg/perm"
	"github.com/matzehuels/permrank/pkg/perm/bijective"
	"github.com/matzehuels/permrank/pkg/perm/factoradic"
	"github.com/matzehuels/permrank/pkg/perm/lehmer"
	"github.com/matzehuels/permrank/pkg/perm/myrvold"
)

var lexicographic = &definition{
	name:        Lexicographic,
	description: "k-permutations without repetition in lexicographic order (factorial number system)",
	ordered:     true,
	count:       factoradic.CountWithoutRepetitionBig,
	rank:        factoradic.RankWithoutRepetitionBig,
	unrank:      factoradic.UnrankWithoutRepetitionBig,
}

var repetition = &definition{
	name:        Repetition,
	description: "words of length k with repetition in base-n order",
	ordered:     true,
	repetition:  true,
	count:       factoradic.CountWithRepetitionBig,
	rank:        factoradic.RankWithRepetitionBig,
	unrank:      factoradic.UnrankWithRepetitionBig,
}

var lehmerScheme = &definition{
	name:        Lehmer,
	description: "k-permutations without repetition via Lehmer codes (uint64 ranks)",
	ordered:     true,
	count: func(n, k int) (*big.Int, error) {
		if err := perrors.ValidateNK(n, k, false); err != nil {
			return nil, err
		}
		count, err := lehmer.Radixes(make([]uint64, k), n)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(count), nil
	},
	rank: func(p []int, n int) (*big.Int, error) {
		r, err := lehmer.Rank(p, n)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(r), nil
	},
	unrank: func(rank *big.Int, n, k int) ([]int, error) {
		return lehmer.Unrank(rank.Uint64(), n, k)
	},
}

var bijectiveScheme = &definition{
	name:        Bijective,
	description: "words of length 1..k with repetition in shortlex order (bijective base-n)",
	ordered:     false,
	repetition:  true,
	first:       1,
	count: func(n, k int) (*big.Int, error) {
		count, err := bijective.CountWithRepetition(n, k)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(count), nil
	},
	rank: func(p []int, n int) (*big.Int, error) {
		if len(p) == 0 {
			return nil, perrors.New(perrors.ErrCodeInvalidInput, "bijective words must be non-empty")
		}
		if err := perrors.ValidatePermutation(p, n, true); err != nil {
			return nil, err
		}
		r, err := bijective.Rank(p, perm.Seq(n))
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(r), nil
	},
	unrank: func(rank *big.Int, n, k int) ([]int, error) {
		w, err := bijective.Unrank(make([]int, k), rank.Uint64(), perm.Seq(n))
		if err != nil {
			return nil, err
		}
		return slices.Clone(w), nil
	},
}

var myrvoldScheme = &definition{
	name:        Myrvold,
	description: "full permutations in Myrvold-Ruskey order (linear time, not lexicographic)",
	count: func(n, k int) (*big.Int, error) {
		if err := fullLength(n, k); err != nil {
			return nil, err
		}
		count, err := myrvold.Count(n)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(count), nil
	},
	rank: func(p []int, n int) (*big.Int, error) {
		if err := fullLength(n, len(p)); err != nil {
			return nil, err
		}
		r, err := myrvold.Rank(p)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(r), nil
	},
	unrank: func(rank *big.Int, n, k int) ([]int, error) {
		p := make([]int, n)
		if err := myrvold.Unrank(rank.Uint64(), p); err != nil {
			return nil, err
		}
		return p, nil
	},
}

func fullLength(n, k int) error {
	if k != n {
		return perrors.New(perrors.ErrCodeInvalidInput, "myrvold ranks full permutations: length %d must equal alphabet size %d", k, n)
	}
	return nil
}
