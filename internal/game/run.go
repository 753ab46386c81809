package game

import "context"

// Run drives the session until the surface closes or ctx is done. The
// surface paces the loop through Present.
func Run(ctx context.Context, g *Game) error {
	for g.IsRunning() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		g.Update()
		g.Render()
	}
	return nil
}

// Summary is the outcome of a finished session.
type Summary struct {
	ID        string
	MapID     string
	Score     int
	Ticks     uint64
	Consumed  int
	Remaining int
}

// Summary reports the session outcome so far.
func (g *Game) Summary() Summary {
	return Summary{
		ID:        g.id,
		MapID:     g.mapID,
		Score:     g.score,
		Ticks:     g.ticks,
		Consumed:  g.consumed,
		Remaining: g.Remaining(),
	}
}
