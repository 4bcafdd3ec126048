package samp_test

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/ghemawat/samp"
	"github.com/stretchr/testify/require"
)

func ExampleSequence() {
	samp.ForEach(samp.Sequence(
		samp.Numbers(1, 10),
		samp.SampleWithSeed(3, 42),
	), func(s string) { fmt.Println(s) })
	// Output:
	// 6
	// 10
	// 4
}

func ExampleForEach() {
	err := samp.ForEach(samp.Numbers(1, 5), func(s string) {
		fmt.Print(s)
	})
	if err != nil {
		panic(err)
	}
	// Output:
	// 12345
}

func ExampleContents() {
	out, err := samp.Contents(samp.Numbers(1, 3))
	fmt.Println(out, err)
	// Output:
	// [1 2 3] <nil>
}

func ExampleRun() {
	err := samp.Run(
		samp.Items("line 1", "line 2"),
		samp.WriteLines(os.Stdout),
	)
	fmt.Println("error:", err)
	// Output:
	// line 1
	// line 2
	// error: <nil>
}

func ExampleItems() {
	samp.Run(
		samp.Items("hello", "world"),
		samp.WriteLines(os.Stdout),
	)
	// Output:
	// hello
	// world
}

func ExampleNumbers() {
	samp.Run(
		samp.Numbers(2, 5),
		samp.WriteLines(os.Stdout),
	)
	// Output:
	// 2
	// 3
	// 4
	// 5
}

func ExampleRepeat() {
	samp.Run(
		samp.Repeat("hello", 3),
		samp.WriteLines(os.Stdout),
	)
	// Output:
	// hello
	// hello
	// hello
}

func ExampleWriteLines() {
	samp.Run(
		samp.Numbers(1, 3),
		samp.WriteLines(os.Stdout),
	)
	// Output:
	// 1
	// 2
	// 3
}

func ExampleReadLines() {
	samp.Run(
		samp.ReadLines(bytes.NewBufferString("the\nquick\nbrown\nfox\n")),
		samp.SampleRate(1),
		samp.WriteLines(os.Stdout),
	)
	// Output:
	// the
	// quick
	// brown
	// fox
}

func ExampleCat() {
	samp.Run(
		samp.Cat("testdata/words.txt.gz"),
		samp.Sampling(samp.Config{Mode: samp.Count(10), Ordered: true}),
		samp.WriteLines(os.Stdout),
	)
	// Output:
	// alpha
	// bravo
	// charlie
	// delta
}

func ExampleCat_error() {
	err := samp.Run(samp.Cat("/no_such_file"))
	if err == nil {
		fmt.Println("samp.Cat did not return expected error")
	}
	// Output:
}

func TestSequenceReportsFirstError(t *testing.T) {
	boom := errors.New("boom")
	fail := samp.FilterFunc(func(arg samp.Arg) error { return boom })
	out, err := samp.Contents(samp.Numbers(1, 100000), fail, samp.Sample(3))
	require.ErrorIs(t, err, boom)
	require.Nil(t, out)
}

func TestSequenceSingle(t *testing.T) {
	out, err := samp.Contents(samp.Items("x"))
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, out)
}
