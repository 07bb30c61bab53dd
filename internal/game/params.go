package game

import "fmt"

// Params describe a minefield: dimensions and the number of mines.
type Params struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	MineCount int `json:"mine_count"`
}

func (p Params) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Width, p.Height, p.MineCount)
}

// ParseParams parses the "WxH(M)" form produced by [Params.String].
func ParseParams(s string) (*Params, error) {
	p := &Params{}
	n, err := fmt.Sscanf(s, "%dx%d(%d)", &p.Width, &p.Height, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf("invalid field params %q (n = %d, err = %w)", s, n, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p Params) Validate() error {
	if p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("field must be at least 1x1, got %s", p)
	}
	if p.MineCount < 0 || p.MineCount >= p.CellCount() {
		return fmt.Errorf(
			"mine count must be within [0, %d), got %d", p.CellCount(), p.MineCount,
		)
	}
	return nil
}

func (p Params) CellCount() int {
	return p.Width * p.Height
}

// SafeCellCount is the number of cells a player has to reveal to win.
func (p Params) SafeCellCount() int {
	return p.CellCount() - p.MineCount
}

func (p Params) CellInBounds(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}
