package samp_test

import (
	"sort"
	"testing"

	"github.com/ghemawat/samp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func sorted(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

func TestCountProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("reservoir never exceeds n", prop.ForAll(
		func(n, total int, seed uint64) bool {
			s, err := samp.NewSampler(samp.Count(n), samp.NewSource(seed), false)
			if err != nil {
				return false
			}
			for _, l := range numbers(1, total) {
				s.Add(l)
				if s.Len() > n {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 40),
		gen.IntRange(0, 300),
		gen.UInt64(),
	))

	properties.Property("selection size is min(n, total)", prop.ForAll(
		func(n, total int, seed uint64) bool {
			res, err := samp.SampleLines(&sliceLines{lines: numbers(1, total)},
				samp.Config{Mode: samp.Count(n), Source: samp.NewSource(seed)})
			return err == nil && len(res.Lines) == min(n, total) && res.Seen == int64(total)
		},
		gen.IntRange(0, 40),
		gen.IntRange(0, 300),
		gen.UInt64(),
	))

	properties.Property("short input keeps every line once", prop.ForAll(
		func(total int, seed uint64) bool {
			in := numbers(1, total)
			res, err := samp.SampleLines(&sliceLines{lines: in},
				samp.Config{Mode: samp.Count(total + 1), Source: samp.NewSource(seed)})
			if err != nil {
				return false
			}
			got, want := sorted(res.Lines), sorted(in)
			if len(got) != len(want) {
				return false
			}
			for i := range got {
				if got[i] != want[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 100),
		gen.UInt64(),
	))

	properties.Property("selection has no repeats and comes from the input", prop.ForAll(
		func(n, total int, seed uint64) bool {
			res, err := samp.SampleLines(&sliceLines{lines: numbers(1, total)},
				samp.Config{Mode: samp.Count(n), Source: samp.NewSource(seed)})
			if err != nil {
				return false
			}
			seen := map[string]bool{}
			for _, l := range res.Lines {
				if seen[l] {
					return false
				}
				seen[l] = true
			}
			for _, l := range res.Lines {
				if !contains(numbers(1, total), l) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 40),
		gen.IntRange(0, 200),
		gen.UInt64(),
	))

	properties.Property("ordered output is the same sample in input order", prop.ForAll(
		func(n, total int, seed uint64) bool {
			cfg := samp.Config{Mode: samp.Count(n), Source: samp.NewSource(seed)}
			plain, err := samp.SampleLines(&sliceLines{lines: numbers(1, total)}, cfg)
			if err != nil {
				return false
			}
			cfg.Source, cfg.Ordered = samp.NewSource(seed), true
			ordered, err := samp.SampleLines(&sliceLines{lines: numbers(1, total)}, cfg)
			if err != nil {
				return false
			}
			if !isSubsequence(ordered.Lines, numbers(1, total)) {
				return false
			}
			a, b := sorted(plain.Lines), sorted(ordered.Lines)
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i] != b[i] {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 40),
		gen.IntRange(0, 200),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestHeaderProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("headers pass through and never enter the sample", prop.ForAll(
		func(h, n, total int, seed uint64) bool {
			in := numbers(1, total)
			res, err := samp.SampleLines(&sliceLines{lines: in},
				samp.Config{Mode: samp.Count(n), Source: samp.NewSource(seed), Headers: h})
			if err != nil {
				return false
			}
			nh := min(h, total)
			if len(res.Headers) != nh {
				return false
			}
			for i := 0; i < nh; i++ {
				if res.Headers[i] != in[i] {
					return false
				}
			}
			for _, l := range res.Lines {
				if contains(in[:nh], l) {
					return false
				}
			}
			return res.Seen == int64(total-nh)
		},
		gen.IntRange(0, 10),
		gen.IntRange(0, 20),
		gen.IntRange(0, 100),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestRateProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("rate output is an in-order subsequence", prop.ForAll(
		func(p float64, total int, seed uint64) bool {
			in := numbers(1, total)
			res, err := samp.SampleLines(&sliceLines{lines: in},
				samp.Config{Mode: samp.Rate(p), Source: samp.NewSource(seed)})
			return err == nil && isSubsequence(res.Lines, in)
		},
		gen.Float64Range(0, 1),
		gen.IntRange(0, 200),
		gen.UInt64(),
	))

	properties.Property("rate 0 keeps nothing, rate 1 keeps everything", prop.ForAll(
		func(total int, seed uint64) bool {
			in := numbers(1, total)
			none, err := samp.SampleLines(&sliceLines{lines: in},
				samp.Config{Mode: samp.Rate(0), Source: samp.NewSource(seed)})
			if err != nil || len(none.Lines) != 0 {
				return false
			}
			all, err := samp.SampleLines(&sliceLines{lines: in},
				samp.Config{Mode: samp.Rate(1), Source: samp.NewSource(seed)})
			return err == nil && len(all.Lines) == total && isSubsequence(all.Lines, in)
		},
		gen.IntRange(0, 200),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// isSubsequence reports whether sub appears in seq in the same relative
// order.
func isSubsequence(sub, seq []string) bool {
	i := 0
	for _, s := range seq {
		if i < len(sub) && sub[i] == s {
			i++
		}
	}
	return i == len(sub)
}
