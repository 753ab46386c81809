package core

// TickRate is the fixed number of ticks per second. Tile frame counters
// cycle over [0, TickRate).
const TickRate = 60

// RuntimeConfig contains the presentation parameters a surface is opened with.
type RuntimeConfig struct {
	Title     string // Window / terminal title
	ScreenW   int    // Surface width in pixels
	ScreenH   int    // Surface height in pixels
	CellSize  int    // Pixels per terminal cell (the map tile size)
	FrameRate int    // Frame-rate cap in frames per second (default 60)
	VSync     bool   // Synchronize presentation with the display where supported
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Title:     "PAC-MAN",
		ScreenW:   28 * 16,
		ScreenH:   28*16 + 32,
		CellSize:  16,
		FrameRate: TickRate,
		VSync:     true,
	}
}

// Cols returns the surface width in cells.
func (c RuntimeConfig) Cols() int {
	if c.CellSize <= 0 {
		return c.ScreenW
	}
	return c.ScreenW / c.CellSize
}

// Rows returns the surface height in cells.
func (c RuntimeConfig) Rows() int {
	if c.CellSize <= 0 {
		return c.ScreenH
	}
	return c.ScreenH / c.CellSize
}
