package player

import (
	"sync"
	"time"

	"github.com/lunamoth/resona/internal/logger"
	"github.com/lunamoth/resona/internal/structures"
)

// The embedded rendering surface that actually plays audio is an external
// black box. This package only sends it remote-control commands and folds
// its state-change events into a snapshot. Event delivery is at-least-once
// and unordered relative to commands.

// Command is a remote-control instruction for the playback surface.
type Command struct {
	Name    string
	VideoID string  // Load
	Seconds float64 // Seek
	Level   float64 // SetVolume
}

// Command names understood by the playback surface.
const (
	CmdLoad      = "load"
	CmdPlay      = "play"
	CmdPause     = "pause"
	CmdNext      = "next"
	CmdPrevious  = "previous"
	CmdSeek      = "seek"
	CmdSetVolume = "setVolume"
	CmdLike      = "like"
	CmdDislike   = "dislike"
)

// StateEvent is one state-change notification from the playback surface.
type StateEvent struct {
	IsPlaying    bool
	Progress     float64 // seconds
	Duration     float64 // seconds
	Title        string
	Artist       string
	ThumbnailURL string
	LikeStatus   structures.LikeStatus
	TrackChanged bool
}

// State is the folded playback snapshot.
type State struct {
	IsPlaying    bool
	Progress     float64
	Duration     float64
	Title        string
	Artist       string
	ThumbnailURL string
	LikeStatus   structures.LikeStatus
	UpdatedAt    time.Time
}

// Bridge forwards commands to the playback surface and serializes inbound
// events into a state snapshot. Commands are delivered over an outbound
// channel the host application drains into the embedded surface.
type Bridge struct {
	commands chan Command

	mu        sync.Mutex
	state     State
	listeners []func(State)
	now       func() time.Time
}

// NewBridge creates a bridge with a buffered command channel.
func NewBridge() *Bridge {
	return &Bridge{
		commands: make(chan Command, 16),
		now:      time.Now,
	}
}

// Commands returns the outbound command channel.
func (b *Bridge) Commands() <-chan Command {
	return b.commands
}

// OnStateChange registers a listener invoked after each applied event.
func (b *Bridge) OnStateChange(fn func(State)) {
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}

// Apply folds one inbound event into the snapshot and notifies listeners.
func (b *Bridge) Apply(event StateEvent) {
	b.mu.Lock()

	b.state.IsPlaying = event.IsPlaying
	b.state.Progress = event.Progress
	b.state.Duration = event.Duration
	b.state.LikeStatus = event.LikeStatus
	b.state.UpdatedAt = b.now()

	if event.Title != "" {
		b.state.Title = event.Title
	}

	if event.Artist != "" {
		b.state.Artist = event.Artist
	}

	if event.ThumbnailURL != "" {
		b.state.ThumbnailURL = event.ThumbnailURL
	}

	if event.TrackChanged {
		logger.Debug("track changed: %s - %s", b.state.Artist, b.state.Title)
	}

	state := b.state
	listeners := make([]func(State), len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// State returns the current snapshot.
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

func (b *Bridge) send(cmd Command) {
	select {
	case b.commands <- cmd:
	default:
		// The surface fell behind; dropping a remote-control press mirrors
		// what a real remote does.
		logger.Warn("dropped playback command %s", cmd.Name)
	}
}

// Load loads and starts the given track.
func (b *Bridge) Load(videoID string) { b.send(Command{Name: CmdLoad, VideoID: videoID}) }

// Play resumes playback.
func (b *Bridge) Play() { b.send(Command{Name: CmdPlay}) }

// Pause pauses playback.
func (b *Bridge) Pause() { b.send(Command{Name: CmdPause}) }

// Next skips to the next track.
func (b *Bridge) Next() { b.send(Command{Name: CmdNext}) }

// Previous returns to the previous track.
func (b *Bridge) Previous() { b.send(Command{Name: CmdPrevious}) }

// Seek jumps to the given position.
func (b *Bridge) Seek(seconds float64) { b.send(Command{Name: CmdSeek, Seconds: seconds}) }

// SetVolume sets the playback volume, 0.0 to 1.0.
func (b *Bridge) SetVolume(level float64) { b.send(Command{Name: CmdSetVolume, Level: level}) }

// Like forwards a like press to the surface's own UI.
func (b *Bridge) Like() { b.send(Command{Name: CmdLike}) }

// Dislike forwards a dislike press to the surface's own UI.
func (b *Bridge) Dislike() { b.send(Command{Name: CmdDislike}) }
