package datafill

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/lvkit/lvrsrc/internal/rsrcio"
	"github.com/lvkit/lvrsrc/internal/typedesc"
)

const specialClusterTagName = "SpecialDSTMCluster"

// Type map flag bits which control special cluster membership.
const (
	tmFlagSpecial04   = 0x0004
	tmFlagSpecial10   = 0x0010
	tmFlagSpecial20   = 0x0020
	tmFlagSpecial40   = 0x0040
	tmFlagSkipSpecial = 0x0200
)

// isSpecialClusterElement reports whether the client at the given
// position carries data inside a special cluster under the given type
// map flags. The first matching flag bit wins.
func (c *Codec) isSpecialClusterElement(idx int, tmFlags uint16) bool {
	switch {
	case tmFlags&tmFlagSpecial04 != 0:
		if c.Version.Below(10, 0, 0, 2) {
			return idx == 1
		}
		return idx == 2
	case tmFlags&tmFlagSpecial10 != 0:
		return idx >= 1 && idx <= 3
	case tmFlags&tmFlagSpecial20 != 0:
		return idx == 3
	case tmFlags&tmFlagSpecial40 != 0:
		return idx == 2
	}
	return false
}

// specialClusterFill is a cluster whose surrounding type map entry
// marks it special: only a flag-dependent subset of client positions
// carries data, and one more flag bit drops the first member of that
// subset. Bind and decode must walk the positions identically or the
// values shift against their descriptors.
type specialClusterFill struct {
	baseFill
	elems []Fill
}

func newSpecialClusterFill(c *Codec) *specialClusterFill {
	return &specialClusterFill{baseFill: newBase(c, typedesc.TagCluster)}
}

func (f *specialClusterFill) TagName() string { return specialClusterTagName }

// forEachMember walks the qualifying client positions in order,
// applying the skip flag, and calls fn with the member ordinal and
// the client descriptor at that position.
func (f *specialClusterFill) forEachMember(fn func(n, idx int, sub *typedesc.TypeDesc) error) error {
	skipNext := f.tmFlags&tmFlagSkipSpecial != 0
	n := 0
	for i, sub := range f.td.Clients() {
		if !f.codec.isSpecialClusterElement(i, f.tmFlags) {
			continue
		}
		if skipNext {
			skipNext = false
			continue
		}
		if err := fn(n, i, sub); err != nil {
			return err
		}
		n++
	}
	return nil
}

func (f *specialClusterFill) Bind(td *typedesc.TypeDesc, index int, tmFlags uint16) error {
	if err := f.baseFill.Bind(td, index, tmFlags); err != nil {
		return err
	}
	if len(f.elems) == 0 {
		return nil
	}
	return f.forEachMember(func(n, idx int, sub *typedesc.TypeDesc) error {
		if n >= len(f.elems) {
			return fmt.Errorf("%w: special cluster has %d values for more member positions",
				ErrMalformed, len(f.elems))
		}
		if err := f.elems[n].Bind(sub, idx, tmFlags); err != nil {
			return childErr(f.elems[n].Tag(), err)
		}
		return nil
	})
}

func (f *specialClusterFill) ReadData(r *rsrcio.Reader) error {
	f.elems = nil
	return f.forEachMember(func(n, idx int, sub *typedesc.TypeDesc) error {
		e, err := f.codec.NewFillForDesc(sub, idx, f.tmFlags)
		if err != nil {
			return childErr(sub.Tag(), err)
		}
		if err := e.ReadData(r); err != nil {
			return childErr(sub.Tag(), err)
		}
		f.elems = append(f.elems, e)
		return nil
	})
}

func (f *specialClusterFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	return writeChildren(w, f.elems, avoidRecompute)
}

func (f *specialClusterFill) ExpectedSize() (int, bool) { return childrenSize(f.elems) }

func (f *specialClusterFill) WriteXML(elem *etree.Element) error {
	return childrenToXML(elem, f.elems)
}

func (f *specialClusterFill) ReadXML(elem *etree.Element) error {
	elems, err := f.codec.childrenFromXML(elem)
	if err != nil {
		return err
	}
	f.elems = elems
	return nil
}

func (f *specialClusterFill) Finalize() error {
	if f.td != nil && len(f.elems) > 0 {
		if err := f.Bind(f.td, f.index, f.tmFlags); err != nil {
			return err
		}
	}
	return finalizeChildren(f.elems)
}
