package player

import "github.com/valerio/go-dupwave/dupwave/audio"

var _ audio.Monitor = (*Player)(nil)

// MuteChannel mutes or unmutes a voice.
func (p *Player) MuteChannel(ch int, mute bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chip.MuteChannel(ch, mute)
}

func (p *Player) ToggleChannel(ch int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chip.ToggleChannel(ch)
}

func (p *Player) SoloChannel(ch int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chip.SoloChannel(ch)
}

func (p *Player) UnmuteAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chip.UnmuteAll()
}

func (p *Player) GetChannelStatus() [audio.NumChannels]bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chip.GetChannelStatus()
}

func (p *Player) GetChannelVolumes() [audio.NumChannels]uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chip.GetChannelVolumes()
}

// Oscilloscope copies the latest samples of a voice's tap into dst.
func (p *Player) Oscilloscope(ch int, dst []int16) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chip.OscBuffer(ch).Latest(dst)
}
