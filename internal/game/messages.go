package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/jesseruder/beneaththesurface/internal/sim"
)

const (
	msgMaxEntries = 6
	msgLineHeight = 16
	msgLifetime   = 3 * time.Second
)

var styleColors = map[sim.Style]color.RGBA{
	sim.StyleInfo:    {R: 220, G: 230, B: 240, A: 255},
	sim.StyleSuccess: {R: 120, G: 230, B: 140, A: 255},
	sim.StyleWarning: {R: 250, G: 170, B: 80, A: 255},
}

// Message is one line in the feed.
type Message struct {
	Text    string
	Style   sim.Style
	Created time.Time
}

// MessageLog is a ring buffer of player feedback lines. It implements
// sim.Notifier and sim.ScoreSink.
type MessageLog struct {
	entries []Message
	head    int
	count   int
	now     func() time.Time
}

// NewMessageLog creates a message log with a fixed capacity.
func NewMessageLog() *MessageLog {
	return &MessageLog{
		entries: make([]Message, msgMaxEntries),
		now:     time.Now,
	}
}

// Notify appends a line to the feed.
func (ml *MessageLog) Notify(text string, style sim.Style) {
	ml.entries[ml.head] = Message{Text: text, Style: style, Created: ml.now()}
	ml.head = (ml.head + 1) % msgMaxEntries
	if ml.count < msgMaxEntries {
		ml.count++
	}
}

// ReportScore shows the score change as a feed line.
func (ml *MessageLog) ReportScore(delta int) {
	switch {
	case delta > 0:
		ml.Notify(fmt.Sprintf("+%d", delta), sim.StyleSuccess)
	case delta < 0:
		ml.Notify(fmt.Sprintf("%d", delta), sim.StyleWarning)
	}
}

// Recent returns unexpired entries in chronological order (oldest first).
func (ml *MessageLog) Recent() []Message {
	now := ml.now()
	result := make([]Message, 0, ml.count)
	for i := 0; i < ml.count; i++ {
		idx := (ml.head - ml.count + i + msgMaxEntries) % msgMaxEntries
		if now.Sub(ml.entries[idx].Created) > msgLifetime {
			continue
		}
		result = append(result, ml.entries[idx])
	}
	return result
}

// Draw renders the feed bottom-up from (x, bottomY), newest at the bottom.
func (ml *MessageLog) Draw(screen *ebiten.Image, x, bottomY int) {
	entries := ml.Recent()
	y := bottomY - len(entries)*msgLineHeight
	for _, e := range entries {
		col := styleColors[e.Style]
		w := float32(len(e.Text)*7 + 8)
		vector.FillRect(screen, float32(x-4), float32(y-1), w, msgLineHeight-2, color.RGBA{R: 8, G: 20, B: 35, A: 170}, false)
		drawText(screen, e.Text, x, y, col)
		y += msgLineHeight
	}
}
