package render

import (
	"io"
	"strconv"
	"strings"

	"nature-ca/internal/grid"
)

const (
	csi   = "\x1b["
	reset = csi + "0m"
)

// WriteANSI draws the lattice as two terminal columns per cell using 24-bit
// background colours. Tiles without a colour show their initial; empty cells
// are blank.
func WriteANSI(w io.Writer, g *grid.Grid) error {
	var sb strings.Builder
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			t := g.At(x, y)
			switch {
			case t == nil:
				sb.WriteString("  ")
			case t.HasColor:
				sb.WriteString(csi + "48;2;")
				sb.WriteString(strconv.Itoa(int(t.Color.R)))
				sb.WriteByte(';')
				sb.WriteString(strconv.Itoa(int(t.Color.G)))
				sb.WriteByte(';')
				sb.WriteString(strconv.Itoa(int(t.Color.B)))
				sb.WriteString("m  " + reset)
			default:
				sb.WriteByte(t.Name[0])
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
