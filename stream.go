/*
Package samp selects a uniformly random subset of the lines of a text
stream in a single pass, without holding the whole input in memory.

Two sampling modes are provided.  Count(n) keeps exactly n lines using
reservoir sampling (Algorithm R); memory use is proportional to n no
matter how long the input is.  Rate(p) keeps every line independently
with probability p.  A fixed number of leading header lines may be
passed through untouched.

The core is synchronous and pulls lines from any Lines implementation,
for example a *bufio.Scanner:

	scanner := samp.NewScanner(os.Stdin, samp.DefaultMaxLineSize)
	res, err := samp.SampleLines(scanner, samp.Config{
		Mode:    samp.Count(20),
		Source:  samp.NewSource(42),
		Headers: 1,
	})
	if err == nil {
		err = samp.WriteResult(os.Stdout, res)
	}

Reproducible runs

A Source supplies the random draws.  NewSource(seed) returns a
deterministic generator, so repeated runs over identical input produce
identical output.  A nil Config.Source means a generator seeded from
the operating system's entropy pool.

Output order

In Count mode the selected lines come out in reservoir slot order,
which is not the order they had in the input.  Set Config.Ordered to
restore input order; the sampler then remembers the position of each
kept line and sorts by it at the end.  Rate mode always preserves
input order.

Pipelines

The sampler is also available as a Filter that can be chained with
other filters in a manner similar to Unix pipelines:

	samp.Run(
		samp.Cat("access.log.gz"),
		samp.SampleWithSeed(100, 7),
		samp.WriteLines(os.Stdout),
	)

Each filter takes as input a sequence of strings (read from a channel)
and produces as output a sequence of strings (written to a channel).
The empty sequence is passed as input to the first filter.  samp.Run
discards the final output, samp.Contents returns it as a []string and
samp.ForEach calls a function for every output item.  Errors reported
by any filter are returned from these functions.  A filter can ask
Arg.Err whether an earlier filter failed; the sampling filters do, and
emit no sample of a truncated input.
*/
package samp

import (
	"fmt"
	"sync"
)

// filterErrors records errors accumulated during the execution of a filter.
type filterErrors struct {
	mu  sync.Mutex
	err error
}

func (e *filterErrors) record(err error) {
	if err != nil {
		e.mu.Lock()
		if e.err == nil {
			e.err = err
		}
		e.mu.Unlock()
	}
}

func (e *filterErrors) getError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Arg contains the data passed to Filter.RunFilter. Arg.In is a channel
// that produces the input to the filter, and Arg.Out is a channel that
// receives the output from the filter.
type Arg struct {
	In  <-chan string
	Out chan<- string

	errs *filterErrors // shared by the filters of one pipeline
}

// Err returns the first error reported by any filter of the pipeline
// running this filter, or nil.  A filter that failed records its error
// before closing its output, so once Arg.In is closed Err tells a clean
// end of input from a truncated one.
func (a Arg) Err() error {
	if a.errs == nil {
		return nil
	}
	return a.errs.getError()
}

// The Filter interface represents a process that takes as input a
// sequence of strings from a channel and produces a sequence on
// another channel.
type Filter interface {
	// RunFilter reads a sequence of items from Arg.In and produces a
	// sequence of items on Arg.Out.  RunFilter returns nil on success,
	// an error otherwise.  RunFilter must *not* close the Arg.Out
	// channel.
	RunFilter(Arg) error
}

// FilterFunc is an adapter type that allows the use of ordinary
// functions as Filters.  If f is a function with the appropriate
// signature, FilterFunc(f) is a Filter that calls f.
type FilterFunc func(Arg) error

// RunFilter calls f(arg).
func (f FilterFunc) RunFilter(arg Arg) error { return f(arg) }

const channelBuffer = 1000

// Sequence returns a filter that is the concatenation of all filter arguments.
// The output of a filter is fed as input to the next filter.
func Sequence(filters ...Filter) Filter {
	if len(filters) == 1 {
		return filters[0]
	}
	return FilterFunc(func(arg Arg) error {
		e := &filterErrors{}
		in := arg.In
		for _, f := range filters {
			c := make(chan string, channelBuffer)
			go runFilter(f, Arg{In: in, Out: c, errs: e})
			in = c
		}
		for s := range in {
			arg.Out <- s
		}
		return e.getError()
	})
}

// Run executes the sequence of filters and discards all output.
// It returns either nil, or an error if any filter reported an error.
func Run(filters ...Filter) error {
	return ForEach(Sequence(filters...), func(s string) {})
}

// ForEach calls fn(s) for every item s in the output of filter and
// returns either nil, or any error reported by the execution of the filter.
func ForEach(filter Filter, fn func(s string)) error {
	in := make(chan string)
	close(in)
	out := make(chan string, channelBuffer)
	e := &filterErrors{}
	go runFilter(filter, Arg{In: in, Out: out, errs: e})
	for s := range out {
		fn(s)
	}
	return e.getError()
}

// Contents returns a slice that contains all items that are
// the output of filters.
func Contents(filters ...Filter) ([]string, error) {
	var result []string
	err := ForEach(Sequence(filters...), func(s string) {
		result = append(result, s)
	})
	if err != nil {
		result = nil // Discard results on error
	}
	return result, err
}

func runFilter(f Filter, arg Arg) {
	arg.errs.record(f.RunFilter(arg))
	close(arg.Out)
	for range arg.In { // Discard all unhandled input
	}
}

// Items emits items.
func Items(items ...string) Filter {
	return FilterFunc(func(arg Arg) error {
		for _, s := range items {
			arg.Out <- s
		}
		return nil
	})
}

// Numbers emits the integers x..y
func Numbers(x, y int) Filter {
	return FilterFunc(func(arg Arg) error {
		for i := x; i <= y; i++ {
			arg.Out <- fmt.Sprint(i)
		}
		return nil
	})
}

// Repeat emits n copies of s.
func Repeat(s string, n int) Filter {
	return FilterFunc(func(arg Arg) error {
		for i := 0; i < n; i++ {
			arg.Out <- s
		}
		return nil
	})
}
