package triples

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
)

// DefaultChunkSize is the read size used by Decoder.All.
const DefaultChunkSize = 32 * 1024

// Decoder combines a Tokenizer and a Filter and keeps statement counts.
type Decoder struct {
	tok      *Tokenizer
	filter   *Filter
	accepted int
	dropped  int
}

// NewDecoder creates a decoder that filters with f.
func NewDecoder(f *Filter) *Decoder {
	return &Decoder{tok: NewTokenizer(), filter: f}
}

// Write feeds one chunk and returns the triples it completed. Triples that
// precede a fatal statement are returned along with the error.
func (d *Decoder) Write(chunk []byte) ([]Triple, error) {
	raws, err := d.tok.Feed(chunk)
	out := make([]Triple, 0, len(raws))
	for _, raw := range raws {
		t, ok, ferr := d.filter.Apply(raw)
		if ferr != nil {
			return out, ferr
		}
		if !ok {
			d.dropped++
			continue
		}
		d.accepted++
		out = append(out, t)
	}
	return out, err
}

// Close reports an unterminated trailing statement.
func (d *Decoder) Close() error {
	return d.tok.Finish()
}

// Accepted returns how many statements were emitted.
func (d *Decoder) Accepted() int { return d.accepted }

// Dropped returns how many statements were silently discarded.
func (d *Decoder) Dropped() int { return d.dropped }

// All reads r to the end and yields triples in stream order. Iteration stops
// at the first error, which is yielded once. Breaking out of the loop stops
// reading.
func (d *Decoder) All(ctx context.Context, r io.Reader) iter.Seq2[Triple, error] {
	return func(yield func(Triple, error) bool) {
		buf := make([]byte, DefaultChunkSize)
		for {
			if err := ctx.Err(); err != nil {
				yield(Triple{}, err)
				return
			}

			n, rerr := r.Read(buf)
			if n > 0 {
				batch, err := d.Write(buf[:n])
				for _, t := range batch {
					if !yield(t, nil) {
						return
					}
				}
				if err != nil {
					yield(Triple{}, err)
					return
				}
			}

			if errors.Is(rerr, io.EOF) {
				break
			}
			if rerr != nil {
				yield(Triple{}, fmt.Errorf("read statements: %w", rerr))
				return
			}
		}

		if err := d.Close(); err != nil {
			yield(Triple{}, err)
		}
	}
}

// Decode is shorthand for NewDecoder(f).All(ctx, r).
func Decode(ctx context.Context, r io.Reader, f *Filter) iter.Seq2[Triple, error] {
	return NewDecoder(f).All(ctx, r)
}

// Collect drains seq into a slice, stopping at the first error.
func Collect(seq iter.Seq2[Triple, error]) ([]Triple, error) {
	var out []Triple
	for t, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, nil
}
