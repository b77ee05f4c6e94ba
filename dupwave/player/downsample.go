package player

import "encoding/binary"

// Downsampler reduces a source's rate by an integer factor, averaging each
// group of input samples. The chip rate is far above what sound cards accept.
type Downsampler struct {
	src     Source
	factor  int
	in      []int16
	scratch []int16
}

// NewDownsampler wraps src. Factors below 1 pass samples through.
func NewDownsampler(src Source, factor int) *Downsampler {
	return &Downsampler{src: src, factor: max(factor, 1)}
}

// SampleRate returns the reduced rate.
func (d *Downsampler) SampleRate() int {
	return d.src.SampleRate() / d.factor
}

// Render fills buf with averaged samples. A final partial group is averaged
// over the samples it has.
func (d *Downsampler) Render(buf []int16) (int, error) {
	need := len(buf) * d.factor
	if cap(d.in) < need {
		d.in = make([]int16, need)
	}
	in := d.in[:need]

	got, err := fill(d.src, in)
	out := (got + d.factor - 1) / d.factor
	for i := range out {
		lo := i * d.factor
		hi := min(lo+d.factor, got)
		sum := 0
		for _, s := range in[lo:hi] {
			sum += int(s)
		}
		buf[i] = int16(sum / (hi - lo))
	}
	if out > 0 {
		return out, nil
	}
	return 0, err
}

// Read renders little endian signed 16 bit samples into b.
func (d *Downsampler) Read(b []byte) (int, error) {
	return readS16LE(d, &d.scratch, b)
}

// fill renders until buf is full or src fails.
func fill(src Source, buf []int16) (int, error) {
	n := 0
	for n < len(buf) {
		got, err := src.Render(buf[n:])
		n += got
		if err != nil {
			return n, err
		}
		if got == 0 {
			break
		}
	}
	return n, nil
}

func readS16LE(src Source, scratch *[]int16, b []byte) (int, error) {
	n := len(b) / 2
	if cap(*scratch) < n {
		*scratch = make([]int16, n)
	}
	samples := (*scratch)[:n]

	got, err := src.Render(samples)
	for i, s := range samples[:got] {
		binary.LittleEndian.PutUint16(b[2*i:], uint16(s))
	}
	return 2 * got, err
}
