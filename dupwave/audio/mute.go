package audio

import "log/slog"

// MuteChannel mutes or unmutes a voice. Unmuting a voice that is holding a
// note restarts its waveform and requests a key-on instead of resuming
// mid-cycle.
func (c *Chip) MuteChannel(ch int, mute bool) {
	if ch < 0 || ch >= NumChannels {
		return
	}
	wasMuted := c.isMuted[ch]
	c.isMuted[ch] = mute
	if wasMuted && !mute && c.channels[ch].Active {
		c.channels[ch].Phase = 0
		c.channels[ch].Clock = 0
		c.channels[ch].KeyOn = true
		c.keyOn(ch)
	}
	slog.Debug("Channel mute", "channel", ch, "muted", mute)
}

// ToggleChannel flips the mute state of a voice.
func (c *Chip) ToggleChannel(ch int) {
	if ch < 0 || ch >= NumChannels {
		return
	}
	c.MuteChannel(ch, !c.isMuted[ch])
}

// SoloChannel mutes all voices except ch.
func (c *Chip) SoloChannel(ch int) {
	for i := range c.isMuted {
		c.MuteChannel(i, i != ch)
	}
}

// UnmuteAll unmutes every voice.
func (c *Chip) UnmuteAll() {
	for i := range c.isMuted {
		c.MuteChannel(i, false)
	}
}

// IsMuted reports whether a voice is muted.
func (c *Chip) IsMuted(ch int) bool {
	return c.isMuted[ch]
}

// GetChannelStatus reports, per voice, whether it is both unmuted and holding a note.
func (c *Chip) GetChannelStatus() (status [NumChannels]bool) {
	for i := range c.channels {
		status[i] = !c.isMuted[i] && c.channels[i].Active
	}
	return status
}

// GetChannelVolumes returns the volume each voice is currently mixed at.
func (c *Chip) GetChannelVolumes() (vols [NumChannels]uint8) {
	for i := range c.channels {
		vols[i] = uint8(c.channels[i].OutVol)
	}
	return vols
}
