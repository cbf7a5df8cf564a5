// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audframe/audio"
)

var (
	// ErrFormatMismatch is returned when a stream does not match the device.
	ErrFormatMismatch = errors.New("stream format does not match the output device")

	// ErrClosed is returned by operations on a closed player.
	ErrClosed = errors.New("player is closed")
)

// Device is an open audio output. oto permits one per process.
type Device struct {
	ctx      *oto.Context
	rate     int
	channels int
	log      *slog.Logger
}

// DeviceOption tweaks Open.
type DeviceOption func(*deviceConfig)

type deviceConfig struct {
	buffer time.Duration
	log    *slog.Logger
}

// WithBuffer sets the device buffer length. Zero keeps the driver default.
func WithBuffer(d time.Duration) DeviceOption {
	return func(c *deviceConfig) { c.buffer = d }
}

// WithDeviceLogger sets the logger for device and player events.
func WithDeviceLogger(l *slog.Logger) DeviceOption {
	return func(c *deviceConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// Open starts the output device in float32 mode and waits until it is ready.
func Open(rate, channels int, opts ...DeviceOption) (*Device, error) {
	cfg := deviceConfig{log: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   cfg.buffer,
	})
	if err != nil {
		return nil, fmt.Errorf("open output device: %w", err)
	}
	<-ready

	cfg.log.Debug("output device ready", "rate", rate, "channels", channels)
	return &Device{ctx: ctx, rate: rate, channels: channels, log: cfg.log}, nil
}

// Player plays one stream on a Device.
type Player struct {
	mu      sync.Mutex
	player  *oto.Player
	reader  *streamReader
	started bool
	closed  bool
	log     *slog.Logger
}

// NewPlayer prepares s for playback. s must match the device rate and
// channel count; put it through a Resampler or ChannelMixer first if not.
func (d *Device) NewPlayer(s audio.Stream) (*Player, error) {
	if s.SampleRate() != d.rate || s.Channels() != d.channels {
		return nil, fmt.Errorf("%w: stream %d ch @ %d Hz, device %d ch @ %d Hz",
			ErrFormatMismatch, s.Channels(), s.SampleRate(), d.channels, d.rate)
	}

	r := newStreamReader(s)
	return &Player{
		player: d.ctx.NewPlayer(r),
		reader: r,
		log:    d.log,
	}, nil
}

// Start begins playback. Calling it again is a no-op.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if !p.started {
		p.player.Play()
		p.started = true
	}
	return nil
}

// Playing reports whether the device is still consuming the stream.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.closed && p.player.IsPlaying()
}

// Samples is how many samples have been pulled from the stream.
func (p *Player) Samples() int64 { return p.reader.Samples() }

// Close stops playback. It is safe to call more than once.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.log.Debug("player closed", "samples", p.reader.Samples())
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("close player: %w", err)
	}
	return nil
}
