package samp

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
)

// ErrInvalidConfig is wrapped by every error reporting a sampling
// configuration that cannot be run.
var ErrInvalidConfig = errors.New("invalid sampling configuration")

// Mode selects how lines are chosen.  It is either a Count or a Rate;
// no other implementations exist.
type Mode interface {
	validate() error
	fmt.Stringer
}

// Count selects exactly that many lines (or every line, if the input is
// shorter) using reservoir sampling.
type Count int

func (n Count) validate() error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidConfig, "sample count %d is negative", int(n))
	}
	return nil
}

func (n Count) String() string { return fmt.Sprintf("count=%d", int(n)) }

// Rate selects every line independently with probability p, 0 <= p <= 1.
type Rate float64

func (p Rate) validate() error {
	if math.IsNaN(float64(p)) || p < 0 || p > 1 {
		return errors.Wrapf(ErrInvalidConfig, "sampling rate %v is outside [0,1]", float64(p))
	}
	return nil
}

func (p Rate) String() string { return fmt.Sprintf("rate=%v", float64(p)) }

// Config describes one sampling run.
type Config struct {
	// Mode is required.
	Mode Mode

	// Source supplies random draws.  If nil, a source seeded from the
	// operating system's entropy pool is used.
	Source Source

	// Headers is the number of leading lines copied to the output
	// without taking part in sampling.
	Headers int

	// Ordered makes Count mode emit the selected lines in input order.
	Ordered bool
}

// Validate returns an error wrapping ErrInvalidConfig if c cannot be run.
func (c Config) Validate() error {
	if c.Mode == nil {
		return errors.Wrap(ErrInvalidConfig, "no sampling mode")
	}
	if err := c.Mode.validate(); err != nil {
		return err
	}
	if c.Headers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "header count %d is negative", c.Headers)
	}
	return nil
}
