package factoradic

import (
	"math/big"
	"slices"

	perrors "github.com/matzehuels/permrank/pkg/errors"
	"github.com/matzehuels/permrank/pkg/perm"
)

// CountWithoutRepetitionBig is CountWithoutRepetition without the uint64 limit.
func CountWithoutRepetitionBig(n, k int) (*big.Int, error) {
	if err := perrors.ValidateNK(n, k, false); err != nil {
		return nil, err
	}
	if k == 0 {
		return big.NewInt(1), nil
	}
	return new(big.Int).MulRange(int64(n-k+1), int64(n)), nil
}

// CountWithRepetitionBig is CountWithRepetition without the uint64 limit.
func CountWithRepetitionBig(n, k int) (*big.Int, error) {
	if err := perrors.ValidateNK(n, k, true); err != nil {
		return nil, err
	}
	return new(big.Int).Exp(big.NewInt(int64(n)), big.NewInt(int64(k)), nil), nil
}

// RankWithoutRepetitionBig is RankWithoutRepetition for any n.
func RankWithoutRepetitionBig(p []int, n int) (*big.Int, error) {
	if err := perrors.ValidatePermutation(p, n, false); err != nil {
		return nil, err
	}
	k := len(p)
	blocks := blockSizesBig(n, k)
	avail := perm.Seq(n)
	rank := new(big.Int)
	term := new(big.Int)
	for i, v := range p {
		pos := slices.Index(avail, v)
		term.Mul(big.NewInt(int64(pos)), blocks[i])
		rank.Add(rank, term)
		avail = slices.Delete(avail, pos, pos+1)
	}
	return rank, nil
}

// UnrankWithoutRepetitionBig is UnrankWithoutRepetition for any n. rank is not
// modified.
func UnrankWithoutRepetitionBig(rank *big.Int, n, k int) ([]int, error) {
	count, err := CountWithoutRepetitionBig(n, k)
	if err != nil {
		return nil, err
	}
	if rank.Sign() < 0 || rank.Cmp(count) >= 0 {
		return nil, perrors.RangeViolation(rank, count)
	}

	blocks := blockSizesBig(n, k)
	avail := perm.Seq(n)
	out := make([]int, k)
	r := new(big.Int).Set(rank)
	q := new(big.Int)
	for i := range out {
		q.QuoRem(r, blocks[i], r)
		pos := int(q.Int64())
		out[i] = avail[pos]
		avail = slices.Delete(avail, pos, pos+1)
	}
	return out, nil
}

func blockSizesBig(n, k int) []*big.Int {
	blocks := make([]*big.Int, k)
	size := big.NewInt(1)
	for i := k - 1; i >= 0; i-- {
		blocks[i] = new(big.Int).Set(size)
		size.Mul(size, big.NewInt(int64(n-i)))
	}
	return blocks
}

// RankWithRepetitionBig is RankWithRepetition for any n and k.
func RankWithRepetitionBig(p []int, n int) (*big.Int, error) {
	if err := perrors.ValidatePermutation(p, n, true); err != nil {
		return nil, err
	}
	base := big.NewInt(int64(n))
	rank := new(big.Int)
	for _, d := range p {
		rank.Mul(rank, base)
		rank.Add(rank, big.NewInt(int64(d)))
	}
	return rank, nil
}

// UnrankWithRepetitionBig is UnrankWithRepetition for any n and k. rank is not
// modified.
func UnrankWithRepetitionBig(rank *big.Int, n, k int) ([]int, error) {
	count, err := CountWithRepetitionBig(n, k)
	if err != nil {
		return nil, err
	}
	if rank.Sign() < 0 || rank.Cmp(count) >= 0 {
		return nil, perrors.RangeViolation(rank, count)
	}

	base := big.NewInt(int64(n))
	r := new(big.Int).Set(rank)
	m := new(big.Int)
	out := make([]int, k)
	for i := k - 1; i >= 0; i-- {
		r.QuoRem(r, base, m)
		out[i] = int(m.Int64())
	}
	return out, nil
}
