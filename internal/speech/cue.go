package speech

import "sync"

// Fixed earcon names (spec §6). Additional names may be added by later
// phases but none are specified beyond these five (DESIGN.md Open
// Questions).
const (
	CueBrowseMode = "browse_mode"
	CueFocusMode  = "focus_mode"
	CueBoundary   = "boundary"
	CueWrap       = "wrap"
	CueError      = "error"
)

// AssetLoader loads the raw bytes of a named wave asset. Missing assets are
// tolerated (spec §6: "Missing files are tolerated").
type AssetLoader interface {
	Load(name string) (data []byte, ok bool)
}

// AudioDevice submits decoded PCM for playback on a background task. It is
// the external collaborator abstracting the OS audio output (out of scope
// per spec §1).
type AudioDevice interface {
	Play(pcm []byte)
}

// CuePlayer is the audio cue player described in spec §4.2. It pre-loads a
// fixed set of named assets at construction and plays them fire-and-forget.
type CuePlayer struct {
	device  AudioDevice
	mu      sync.RWMutex
	assets  map[string][]byte
	enabled bool
}

// NewCuePlayer pre-loads the fixed cue names from loader. Assets that fail
// to load are simply absent; playing them later is then a silent no-op.
func NewCuePlayer(loader AssetLoader, device AudioDevice, enabled bool) *CuePlayer {
	p := &CuePlayer{
		device:  device,
		assets:  make(map[string][]byte),
		enabled: enabled,
	}
	for _, name := range []string{CueBrowseMode, CueFocusMode, CueBoundary, CueWrap, CueError} {
		if data, ok := loader.Load(name); ok {
			p.assets[name] = data
		}
	}
	return p
}

// SetEnabled toggles whether Play actually submits audio (AudioCuesEnabled
// setting, spec §6).
func (p *CuePlayer) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

// Play fires name for playback. If cues are disabled or the named asset is
// missing, this is a silent no-op; otherwise the decoded PCM is submitted
// to the audio device on a background goroutine so multiple simultaneous
// plays are permitted (spec §4.2).
func (p *CuePlayer) Play(name string) {
	p.mu.RLock()
	enabled := p.enabled
	data, ok := p.assets[name]
	p.mu.RUnlock()

	if !enabled || !ok {
		return
	}

	go p.device.Play(data)
}
