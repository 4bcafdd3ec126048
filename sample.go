package samp

// Sampling returns a filter that samples its input according to cfg.
// Preserved headers are emitted as soon as they are read; the sample
// follows once the input is exhausted.  An invalid cfg is reported
// before any input is consumed, and nothing is sampled if an upstream
// filter fails.
func Sampling(cfg Config) Filter {
	return FilterFunc(func(arg Arg) error {
		s, err := newConfigSampler(cfg)
		if err != nil {
			return err
		}
		lines := &chanLines{arg: arg}
		headers, err := ReadHeaders(lines, cfg.Headers)
		if err != nil {
			return err
		}
		for _, h := range headers {
			arg.Out <- h
		}
		if len(headers) < cfg.Headers {
			return nil
		}
		if err := s.Drain(lines); err != nil {
			return err
		}
		for _, l := range s.Lines() {
			arg.Out <- l
		}
		return nil
	})
}

// Sample picks n pseudo-randomly chosen input items.
func Sample(n int) Filter {
	return Sampling(Config{Mode: Count(n)})
}

// SampleWithSeed picks n pseudo-randomly chosen input items. It uses
// seed as the argument for its random number generation and therefore
// picks the same items when run multiple times on the same input.
func SampleWithSeed(n int, seed uint64) Filter {
	return seeded(Count(n), seed)
}

// SampleRate emits each input item with probability p.
func SampleRate(p float64) Filter {
	return Sampling(Config{Mode: Rate(p)})
}

// SampleRateWithSeed emits each input item with probability p, drawing
// from a generator seeded with seed.
func SampleRateWithSeed(p float64, seed uint64) Filter {
	return seeded(Rate(p), seed)
}

// seeded builds a fresh generator on every run so that rerunning the
// filter repeats its output.
func seeded(mode Mode, seed uint64) Filter {
	return FilterFunc(func(arg Arg) error {
		return Sampling(Config{Mode: mode, Source: NewSource(seed)}).RunFilter(arg)
	})
}

// chanLines adapts a filter input to Lines.  A closed input reports
// the pipeline's error, if any.
type chanLines struct {
	arg Arg
	cur string
}

func (c *chanLines) Scan() bool {
	s, ok := <-c.arg.In
	c.cur = s
	return ok
}

func (c *chanLines) Text() string { return c.cur }

func (c *chanLines) Err() error { return c.arg.Err() }
