package samp

import (
	"sort"

	"github.com/cockroachdb/errors"
)

// Lines is a pull-based source of input lines.  *bufio.Scanner
// implements it.
type Lines interface {
	Scan() bool
	Text() string
	Err() error
}

// reservoirPrealloc caps the capacity reserved up front so that a huge
// requested count does not allocate before any input arrives.
const reservoirPrealloc = 1 << 10

// A Sampler consumes lines one at a time and keeps the current
// selection.  It is not safe for concurrent use.
type Sampler struct {
	mode    Mode
	rng     Source
	ordered bool

	seen     int64    // lines offered through Add
	selected []string // the reservoir in Count mode
	pos      []int64  // input position of each selected line, if ordered
}

// NewSampler returns a Sampler for mode drawing from src.  If ordered is
// set, Lines returns the selection in input order.
func NewSampler(mode Mode, src Source, ordered bool) (*Sampler, error) {
	if err := (Config{Mode: mode}).Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "no random source")
	}
	s := &Sampler{mode: mode, rng: src, ordered: ordered}
	if n, ok := mode.(Count); ok {
		s.selected = make([]string, 0, min(int(n), reservoirPrealloc))
	}
	return s, nil
}

// Add offers the next input line to the sampler.
func (s *Sampler) Add(line string) {
	i := s.seen
	s.seen++
	switch m := s.mode.(type) {
	case Count:
		n := int64(m)
		switch {
		case s.seen <= n:
			s.keep(line, i)
		case n > 0:
			if j := s.rng.Int63n(s.seen); j < n {
				s.selected[j] = line
				if s.ordered {
					s.pos[j] = i
				}
			}
		}
	case Rate:
		if s.rng.Float64() < float64(m) {
			s.keep(line, i)
		}
	}
}

func (s *Sampler) keep(line string, i int64) {
	s.selected = append(s.selected, line)
	if s.ordered {
		s.pos = append(s.pos, i)
	}
}

// Drain adds every line produced by lines.  It stops at the first read
// error and returns it.
func (s *Sampler) Drain(lines Lines) error {
	for lines.Scan() {
		s.Add(lines.Text())
	}
	return errors.Wrap(lines.Err(), "reading input")
}

// Len returns the number of lines currently selected.
func (s *Sampler) Len() int { return len(s.selected) }

// Seen returns the number of lines offered so far.
func (s *Sampler) Seen() int64 { return s.seen }

// Lines returns a copy of the current selection.
func (s *Sampler) Lines() []string {
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	if s.ordered {
		p := make([]int64, len(s.pos))
		copy(p, s.pos)
		sort.Sort(byPosition{lines: out, pos: p})
	}
	return out
}

// byPosition sorts selected lines by their input position.
type byPosition struct {
	lines []string
	pos   []int64
}

func (b byPosition) Len() int           { return len(b.lines) }
func (b byPosition) Less(i, j int) bool { return b.pos[i] < b.pos[j] }
func (b byPosition) Swap(i, j int) {
	b.lines[i], b.lines[j] = b.lines[j], b.lines[i]
	b.pos[i], b.pos[j] = b.pos[j], b.pos[i]
}

// ReadHeaders consumes up to h lines from lines and returns them.  Fewer
// than h lines are returned if the input ends first.
func ReadHeaders(lines Lines, h int) ([]string, error) {
	if h < 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "header count %d is negative", h)
	}
	var headers []string
	for len(headers) < h && lines.Scan() {
		headers = append(headers, lines.Text())
	}
	if err := lines.Err(); err != nil {
		return nil, errors.Wrap(err, "reading headers")
	}
	return headers, nil
}

// Result is the outcome of SampleLines.
type Result struct {
	Headers []string // preserved leading lines, in input order
	Lines   []string // the sample
	Seen    int64    // non-header lines read
}

// SampleLines reads lines to the end and samples them according to cfg.
// The configuration is checked before any line is read.
func SampleLines(lines Lines, cfg Config) (*Result, error) {
	s, err := newConfigSampler(cfg)
	if err != nil {
		return nil, err
	}
	headers, err := ReadHeaders(lines, cfg.Headers)
	if err != nil {
		return nil, err
	}
	if len(headers) == cfg.Headers {
		if err := s.Drain(lines); err != nil {
			return nil, err
		}
	}
	return &Result{Headers: headers, Lines: s.Lines(), Seen: s.Seen()}, nil
}

// newConfigSampler returns a Sampler for cfg, falling back to an
// entropy-seeded source.
func newConfigSampler(cfg Config) (*Sampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src := cfg.Source
	if src == nil {
		src = NewEntropySource()
	}
	return NewSampler(cfg.Mode, src, cfg.Ordered)
}
