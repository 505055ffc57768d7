package board

import "strings"

// symbol bits mirror the teacher's sokoban example (floor/wall/box/goal/player
// composed as bit flags so '+' and '*' fall out of simple ORs), extended
// here with outside-floor handling per spec §6 ("lines of unequal length
// are right-padded with outside").
const (
	symFloor  byte = 0
	symWall   byte = 1 << 0
	symBox    byte = 1 << 1
	symGoal   byte = 1 << 2
	symPlayer byte = 1 << 3
)

var symbols = map[rune]byte{
	'#': symWall,
	' ': symFloor,
	'$': symBox,
	'.': symGoal,
	'@': symPlayer,
	'+': symPlayer | symGoal,
	'*': symBox | symGoal,
}

// Load parses standard Sokoban level text (spec §4.1/§6): one line per
// row, '#' wall, ' ' floor, '@' player, '$' box, '.' target, '+'
// player-on-target, '*' box-on-target. Lines shorter than the widest
// line are right-padded with Outside rather than Wall. Every ' ' in the
// text becomes Floor, including spaces outside the walls; only the
// padded positions past the end of a line are Outside.
func Load(levelText string) (*Board, []Cell, error) {
	lines := strings.Split(strings.TrimRight(levelText, "\n"), "\n")
	width := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}
	height := len(lines)
	if width == 0 || height == 0 {
		return nil, nil, newLevelError(ErrMalformedLevel, 0, 0, "empty level")
	}

	kind := make([]Kind, width*height)
	for i := range kind {
		kind[i] = Outside
	}
	var boxes, targets []Cell
	playerStart := Invalid

	for y, line := range lines {
		runes := []rune(line)
		for x := 0; x < width; x++ {
			c := Cell(y*width + x)
			if x >= len(runes) {
				kind[c] = Outside
				continue
			}
			sym, ok := symbols[runes[x]]
			if !ok {
				return nil, nil, newLevelError(ErrMalformedLevel, y+1, x+1,
					"unrecognized level symbol %q", runes[x])
			}
			if sym&symWall != 0 {
				kind[c] = Wall
				continue
			}
			kind[c] = Floor
			if sym&symPlayer != 0 {
				if playerStart != Invalid {
					return nil, nil, newLevelError(ErrMalformedLevel, y+1, x+1,
						"multiple player start positions")
				}
				playerStart = c
			}
			if sym&symGoal != 0 {
				targets = append(targets, c)
			}
			if sym&symBox != 0 {
				boxes = append(boxes, c)
			}
		}
	}

	if playerStart == Invalid {
		return nil, nil, newLevelError(ErrMalformedLevel, 0, 0, "no player start found")
	}
	if len(targets) == 0 {
		return nil, nil, newLevelError(ErrMalformedLevel, 0, 0, "no targets found")
	}
	if len(boxes) != len(targets) {
		return nil, nil, newLevelError(ErrUnsolvableShape, 0, 0,
			"box count (%d) does not equal target count (%d)", len(boxes), len(targets))
	}

	sortCells(targets)
	b := New(width, height, kind, targets, playerStart)
	for _, box := range boxes {
		if !b.IsFloor(box) {
			return nil, nil, newLevelError(ErrMalformedLevel, 0, 0, "box at non-floor cell %d", box)
		}
	}
	if !b.IsFloor(playerStart) {
		return nil, nil, newLevelError(ErrMalformedLevel, 0, 0, "player start at non-floor cell")
	}
	return b, boxes, nil
}

func sortCells(cells []Cell) {
	for i := 1; i < len(cells); i++ {
		for j := i; j > 0 && cells[j-1] > cells[j]; j-- {
			cells[j-1], cells[j] = cells[j], cells[j-1]
		}
	}
}

// Render formats a board+state back into the standard symbol set, the
// inverse of Load, used by tests and the CLI's progress output.
func Render(b *Board, s State) string {
	var sb strings.Builder
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := b.CellAt(x, y)
			sb.WriteRune(renderCell(b, s, c))
		}
		if y < b.Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func renderCell(b *Board, s State, c Cell) rune {
	switch b.At(c) {
	case Outside:
		return ' '
	case Wall:
		return '#'
	}
	box := s.HasBox(c)
	target := b.IsTarget(c)
	player := s.Player == c
	switch {
	case box && target:
		return '*'
	case box:
		return '$'
	case player && target:
		return '+'
	case player:
		return '@'
	case target:
		return '.'
	default:
		return ' '
	}
}
