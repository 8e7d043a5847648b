package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/jesseruder/beneaththesurface/internal/sim"
)

const (
	sampleRate        = 48000
	bytesPerFrame     = 4 // 16-bit stereo
	maxExplosionVoice = 3
)

// Sound plays procedural explosion effects. It implements
// sim.ExplosionObserver.
type Sound struct {
	ctx     *audio.Context
	volume  float64
	players []*audio.Player
	seed    uint64
	cache   map[int][]byte // by quantized size
}

// NewSound creates the audio context (or reuses the process one) at the
// given volume. A volume of zero keeps the game silent.
func NewSound(volume float64) *Sound {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &Sound{
		ctx:    ctx,
		volume: volume,
		seed:   0x9e3779b97f4a7c15,
		cache:  make(map[int][]byte),
	}
}

// ExplosionCreated plays a boom scaled to the explosion size.
func (s *Sound) ExplosionCreated(_ sim.Vec2, size float64) {
	if s == nil || s.volume <= 0 {
		return
	}
	s.prune()
	if len(s.players) >= maxExplosionVoice {
		return
	}
	key := int(math.Round(size * 4))
	pcm, ok := s.cache[key]
	if !ok {
		pcm = genExplosion(float64(key)/4, s.seed+uint64(key))
		s.cache[key] = pcm
	}
	p := s.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(s.volume)
	p.Play()
	s.players = append(s.players, p)
}

// prune drops finished players so they can be collected.
func (s *Sound) prune() {
	n := 0
	for _, p := range s.players {
		if p.IsPlaying() {
			s.players[n] = p
			n++
			continue
		}
		_ = p.Close()
	}
	s.players = s.players[:n]
}

// genExplosion renders a 16-bit stereo boom. Bigger sizes are longer and
// deeper.
func genExplosion(size float64, seed uint64) []byte {
	norm := clamp01(size / 2.5)
	dur := 0.22 + 0.5*norm
	n := int(dur * sampleRate)
	buf := make([]byte, n*bytesPerFrame)
	if seed == 0 {
		seed = 1
	}
	lp1, lp2 := 0.0, 0.0
	subPhase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)

		subStart := 140.0 - 60.0*norm
		subEnd := 30.0 - 15.0*norm
		subFreq := subStart * math.Pow(subEnd/subStart, p*(1.6+1.4*norm))
		subPhase += 2 * math.Pi * subFreq / sampleRate
		sub := math.Sin(subPhase) * math.Exp(-p*(7.0-3.5*norm)) * (0.45 + 0.3*norm)

		crack := 0.0
		if p < 0.03 {
			crack = lcg(&seed) * (1 - p/0.03) * (0.8 - 0.25*norm)
		}

		raw := lcg(&seed)
		lp1 = lp1*0.76 + raw*0.24
		lp2 = lp2*0.975 + raw*0.025
		body := (lp1 - lp2) * math.Exp(-p*(6.0-2.0*norm)) * (0.3 + 0.15*norm)

		putStereo16(buf, i, softSat((sub+crack+body)*0.85))
	}
	return buf
}

// putStereo16 writes a [-1,1] sample as signed 16-bit LE to both channels
// of frame i.
func putStereo16(buf []byte, i int, sample float64) {
	v := int16(clampF(sample, -1, 1) * math.MaxInt16)
	off := i * bytesPerFrame
	buf[off] = byte(v)
	buf[off+1] = byte(uint16(v) >> 8)
	buf[off+2] = byte(v)
	buf[off+3] = byte(uint16(v) >> 8)
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clampF(v, 0, 1) }
