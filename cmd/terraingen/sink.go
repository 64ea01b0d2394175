package main

import (
	"fmt"
	"io"

	"github.com/dm-vev/terrabuilder/server/world/generator/terrain"
)

// lineSink writes every placement as a comma separated line:
// class,name,x,y,posX,posY,posZ.
type lineSink struct {
	w io.Writer
}

func newLineSink(w io.Writer) lineSink {
	return lineSink{w: w}
}

// Place ...
func (s lineSink) Place(p terrain.Placement) error {
	_, err := fmt.Fprintf(s.w, "%v,%s,%d,%d,%g,%g,%g\n", p.Class, p.Name, p.Coord.X, p.Coord.Y, p.Pos.X(), p.Pos.Y(), p.Pos.Z())
	return err
}
