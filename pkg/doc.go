// Package pkg holds the libraries behind permrank, a tool for ranking and
// unranking permutations of an alphabet.
//
// # Overview
//
// A rank is the position of a permutation in a fixed ordering of all
// permutations of a given length. permrank maps words to ranks and back under
// several schemes, counts the rank space, and enumerates or draws
// permutations. Ranks are arbitrary precision, so alphabets of any size work.
//
// The libraries are organized in layers:
//
//  1. [perm] - permutation primitives, Heap's algorithm, next/previous
//     arrangement, and the ranking algorithms in its subpackages
//  2. [scheme] - named ranking schemes and alphabet parsing
//  3. [pipeline] - validated requests, caching and observability around schemes
//  4. [cache] - result and artifact caches (file, Redis, no-op)
//  5. [server] - the HTTP API
//
// Supporting packages: [errors] for coded errors, [config] for the TOML config
// file, [observability] for hooks and Prometheus metrics, and [buildinfo] for
// version data.
//
// # Data flow
//
//	word or rank
//	     ↓
//	[pipeline] (validate options, check cache)
//	     ↓
//	[scheme] (pick algorithm, map symbols to indices)
//	     ↓
//	[perm] subpackages (factoradic, lehmer, myrvold, bijective)
//	     ↓
//	rank, word, count, enumeration or SVG
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Rank(ctx, pipeline.Options{Alphabet: "abc"}, "bca")
//	// res.Rank == 3
//
// [perm]: github.com/matzehuels/permrank/pkg/perm
// [scheme]: github.com/matzehuels/permrank/pkg/scheme
// [pipeline]: github.com/matzehuels/permrank/pkg/pipeline
// [cache]: github.com/matzehuels/permrank/pkg/cache
// [server]: github.com/matzehuels/permrank/pkg/server
// [errors]: github.com/matzehuels/permrank/pkg/errors
// [config]: github.com/matzehuels/permrank/pkg/config
// [observability]: github.com/matzehuels/permrank/pkg/observability
// [buildinfo]: github.com/matzehuels/permrank/pkg/buildinfo
package pkg
