//go:build headless

package player

import (
	"errors"
	"io"
)

// OtoOutput stub for headless builds
type OtoOutput struct{}

func NewOtoOutput(sampleRate int) (*OtoOutput, error) {
	return nil, errors.New("audio output not available in headless builds - compile without -tags headless")
}

func (o *OtoOutput) Play(src io.Reader) {}
func (o *OtoOutput) IsPlaying() bool    { return false }
func (o *OtoOutput) Close() error       { return nil }
