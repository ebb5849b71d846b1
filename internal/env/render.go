package env

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/packbotics/warehouse-rl/internal/env/core"
)

// Grid symbols for the text renderer.
const (
	SymbolAgent   = 'A'
	SymbolPackage = '$'
	SymbolGoal    = 'G'
	SymbolWall    = '#'
	SymbolEmpty   = '.'
)

// renderANSI projects episode state onto a printable grid. Delivered
// packages are not drawn; the agent symbol wins every tie.
func renderANSI(s *EnvState, width, height int, goal core.Position) string {
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = SymbolEmpty
		}
	}

	for pos := range s.Walls {
		grid[pos.Y][pos.X] = SymbolWall
	}
	for i := range s.Packages {
		p := &s.Packages[i]
		if !p.Delivered {
			grid[p.Pos.Y][p.Pos.X] = SymbolPackage
		}
	}
	grid[goal.Y][goal.X] = SymbolGoal
	grid[s.AgentPos.Y][s.AgentPos.X] = SymbolAgent

	carrying := "none"
	if s.Carrying != nil {
		carrying = strconv.Itoa(int(*s.Carrying))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("step=%d battery=%d carrying=%s", s.StepCount, s.Battery, carrying))
	for _, row := range grid {
		sb.WriteByte('\n')
		sb.WriteString(string(row))
	}
	return sb.String()
}
