package audio

// OscBuffer is a per-voice oscilloscope tap. The mixer appends one sample per
// output sample; readers copy out the most recent window.
type OscBuffer struct {
	Rate   int
	data   []int16
	needle int
}

// NewOscBuffer returns a tap that keeps the last size samples.
func NewOscBuffer(size int) *OscBuffer {
	return &OscBuffer{data: make([]int16, size)}
}

// Append records one sample.
func (o *OscBuffer) Append(v int16) {
	o.data[o.needle%len(o.data)] = v
	o.needle++
}

// Needle returns the number of samples appended since the last Reset.
func (o *OscBuffer) Needle() int {
	return o.needle
}

// Latest fills dst with the most recent samples, oldest first, and returns
// how many were available.
func (o *OscBuffer) Latest(dst []int16) int {
	n := min(len(dst), o.needle, len(o.data))
	start := o.needle - n
	for i := range n {
		dst[i] = o.data[(start+i)%len(o.data)]
	}
	return n
}

// Reset discards all recorded samples.
func (o *OscBuffer) Reset() {
	clear(o.data)
	o.needle = 0
}
