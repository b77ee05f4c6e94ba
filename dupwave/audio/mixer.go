package audio

// Acquire renders len(buf) output samples. Every voice's oscillator steps once
// per sample; muted and inactive voices contribute silence. Each voice sample
// is also written to that voice's oscilloscope tap. The sum is not clipped.
func (c *Chip) Acquire(buf []int16) {
	for h := range buf {
		var samp int16
		for i := range c.channels {
			voice := c.voiceSample(i)
			c.osc[i].Append(voice)
			samp += voice
		}
		buf[h] = samp
	}
}

func (c *Chip) voiceSample(i int) int16 {
	ch := &c.channels[i]
	ch.step()
	if c.isMuted[i] || !ch.Active {
		return 0
	}
	return int16(c.level(ch.Wave, ch.Phase) * ch.OutVol * outputScale)
}
