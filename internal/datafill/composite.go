package datafill

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/lvkit/lvrsrc/internal/rsrcio"
	"github.com/lvkit/lvrsrc/internal/typedesc"
)

// childrenFromXML rebuilds a container's children from its child
// elements, dispatching each on its element name. The children come
// back unbound; the container's Bind and Finalize attach descriptors.
func (c *Codec) childrenFromXML(parent *etree.Element) ([]Fill, error) {
	var out []Fill
	for _, child := range parent.ChildElements() {
		sub, err := c.NewFillForTagName(child.Tag)
		if err != nil {
			return nil, err
		}
		if err := sub.ReadXML(child); err != nil {
			return nil, childErr(sub.Tag(), err)
		}
		out = append(out, sub)
	}
	return out, nil
}

// elementDesc returns the element descriptor of an array-like type.
// Descriptors built from files may carry placeholder clients before
// the real element type; the last one governs the data.
func elementDesc(td *typedesc.TypeDesc) (*typedesc.TypeDesc, error) {
	clients := td.Clients()
	if len(clients) == 0 {
		return nil, fmt.Errorf("%w: %s descriptor has no element type", ErrMalformed, td.Tag().Name())
	}
	return clients[len(clients)-1], nil
}

// arrayFill covers arrays: one 4-byte extent per dimension followed
// by the elements in row-major order.
type arrayFill struct {
	baseFill
	dims  []uint32
	elems []Fill
}

func (f *arrayFill) Bind(td *typedesc.TypeDesc, index int, tmFlags uint16) error {
	if err := f.baseFill.Bind(td, index, tmFlags); err != nil {
		return err
	}
	if len(f.elems) == 0 {
		return nil
	}
	sub, err := elementDesc(td)
	if err != nil {
		return err
	}
	for _, e := range f.elems {
		if err := e.Bind(sub, -1, tmFlags); err != nil {
			return childErr(e.Tag(), err)
		}
	}
	return nil
}

func (f *arrayFill) ReadData(r *rsrcio.Reader) error {
	dims := make([]uint32, f.td.DimensionCount())
	total := uint64(1)
	limit := uint64(f.codec.limits().ArrayData)
	for i := range dims {
		d, err := r.ReadU32()
		if err != nil {
			return err
		}
		dims[i] = d
		total *= uint64(d & 0x7FFFFFFF)
		if total > limit {
			return fmt.Errorf("%w: array claims %d elements, limit %d",
				ErrSizeLimit, total, limit)
		}
	}
	sub, err := elementDesc(f.td)
	if err != nil {
		return err
	}
	f.dims = dims
	f.elems = nil
	for i := uint64(0); i < total; i++ {
		e, err := f.codec.NewFillForDesc(sub, -1, f.tmFlags)
		if err != nil {
			return childErr(sub.Tag(), err)
		}
		if err := e.ReadData(r); err != nil {
			return childErr(sub.Tag(), err)
		}
		f.elems = append(f.elems, e)
	}
	return nil
}

func (f *arrayFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	for _, d := range f.dims {
		w.WriteU32(d)
	}
	return writeChildren(w, f.elems, avoidRecompute)
}

func (f *arrayFill) ExpectedSize() (int, bool) {
	n, ok := childrenSize(f.elems)
	if !ok {
		return 0, false
	}
	return 4*len(f.dims) + n, true
}

func (f *arrayFill) WriteXML(elem *etree.Element) error {
	for _, d := range f.dims {
		elem.CreateElement("dim").SetText(strconv.FormatUint(uint64(d), 10))
	}
	return childrenToXML(elem, f.elems)
}

func (f *arrayFill) ReadXML(elem *etree.Element) error {
	f.dims = nil
	f.elems = nil
	for _, child := range elem.ChildElements() {
		if child.Tag == "dim" {
			d, err := parseUintText(child.Text(), 32)
			if err != nil {
				return err
			}
			f.dims = append(f.dims, uint32(d))
			continue
		}
		sub, err := f.codec.NewFillForTagName(child.Tag)
		if err != nil {
			return err
		}
		if err := sub.ReadXML(child); err != nil {
			return childErr(sub.Tag(), err)
		}
		f.elems = append(f.elems, sub)
	}
	return nil
}

func (f *arrayFill) Finalize() error {
	if f.td != nil && len(f.elems) > 0 {
		sub, err := elementDesc(f.td)
		if err != nil {
			return err
		}
		for _, e := range f.elems {
			if err := e.Bind(sub, -1, f.tmFlags); err != nil {
				return childErr(e.Tag(), err)
			}
		}
	}
	return finalizeChildren(f.elems)
}

// clusterFill covers clusters: the client values concatenated in
// descriptor order with no padding of its own.
type clusterFill struct {
	baseFill
	elems []Fill
}

func (f *clusterFill) bindChildren() error {
	if f.td == nil || len(f.elems) == 0 {
		return nil
	}
	clients := f.td.Clients()
	if len(f.elems) != len(clients) {
		return fmt.Errorf("%w: cluster has %d values for %d client types",
			ErrMalformed, len(f.elems), len(clients))
	}
	for i, e := range f.elems {
		if err := e.Bind(clients[i], i, f.tmFlags); err != nil {
			return childErr(e.Tag(), err)
		}
	}
	return nil
}

func (f *clusterFill) Bind(td *typedesc.TypeDesc, index int, tmFlags uint16) error {
	if err := f.baseFill.Bind(td, index, tmFlags); err != nil {
		return err
	}
	return f.bindChildren()
}

func (f *clusterFill) ReadData(r *rsrcio.Reader) error {
	f.elems = nil
	for i, sub := range f.td.Clients() {
		e, err := f.codec.NewFillForDesc(sub, i, f.tmFlags)
		if err != nil {
			return childErr(sub.Tag(), err)
		}
		if err := e.ReadData(r); err != nil {
			return childErr(sub.Tag(), err)
		}
		f.elems = append(f.elems, e)
	}
	return nil
}

func (f *clusterFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	return writeChildren(w, f.elems, avoidRecompute)
}

func (f *clusterFill) ExpectedSize() (int, bool) { return childrenSize(f.elems) }

func (f *clusterFill) WriteXML(elem *etree.Element) error {
	return childrenToXML(elem, f.elems)
}

func (f *clusterFill) ReadXML(elem *etree.Element) error {
	elems, err := f.codec.childrenFromXML(elem)
	if err != nil {
		return err
	}
	f.elems = elems
	return nil
}

func (f *clusterFill) Finalize() error {
	if err := f.bindChildren(); err != nil {
		return err
	}
	return finalizeChildren(f.elems)
}

// repeatedBlockFill covers the repeated block type: the single client
// value repeated a fixed number of times given by the descriptor.
type repeatedBlockFill struct {
	baseFill
	elems []Fill
}

func (f *repeatedBlockFill) bindChildren() error {
	if f.td == nil || len(f.elems) == 0 {
		return nil
	}
	sub, err := elementDesc(f.td)
	if err != nil {
		return err
	}
	for _, e := range f.elems {
		if err := e.Bind(sub, -1, f.tmFlags); err != nil {
			return childErr(e.Tag(), err)
		}
	}
	return nil
}

func (f *repeatedBlockFill) Bind(td *typedesc.TypeDesc, index int, tmFlags uint16) error {
	if err := f.baseFill.Bind(td, index, tmFlags); err != nil {
		return err
	}
	return f.bindChildren()
}

func (f *repeatedBlockFill) ReadData(r *rsrcio.Reader) error {
	repeats := f.td.RepeatCount()
	if limit := f.codec.limits().ArrayData; repeats > limit {
		return fmt.Errorf("%w: repeated block claims %d repeats, limit %d",
			ErrSizeLimit, repeats, limit)
	}
	sub, err := elementDesc(f.td)
	if err != nil {
		return err
	}
	f.elems = nil
	for i := 0; i < repeats; i++ {
		e, err := f.codec.NewFillForDesc(sub, -1, f.tmFlags)
		if err != nil {
			return childErr(sub.Tag(), err)
		}
		if err := e.ReadData(r); err != nil {
			return childErr(sub.Tag(), err)
		}
		f.elems = append(f.elems, e)
	}
	return nil
}

func (f *repeatedBlockFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	return writeChildren(w, f.elems, avoidRecompute)
}

func (f *repeatedBlockFill) ExpectedSize() (int, bool) { return childrenSize(f.elems) }

func (f *repeatedBlockFill) WriteXML(elem *etree.Element) error {
	for i, e := range f.elems {
		if f.td != nil {
			if cmt, ok := f.td.Comment(i); ok && cmt != "" {
				elem.CreateComment(" " + cmt + " ")
			}
		}
		sub := elem.CreateElement(e.TagName())
		if err := e.WriteXML(sub); err != nil {
			return childErr(e.Tag(), err)
		}
	}
	return nil
}

func (f *repeatedBlockFill) ReadXML(elem *etree.Element) error {
	elems, err := f.codec.childrenFromXML(elem)
	if err != nil {
		return err
	}
	f.elems = elems
	return nil
}

func (f *repeatedBlockFill) Finalize() error {
	if err := f.bindChildren(); err != nil {
		return err
	}
	return finalizeChildren(f.elems)
}

// typeDefFill covers typedefs and type blocks, which contribute no
// bytes of their own and wrap a single inner value.
type typeDefFill struct {
	baseFill
	inner Fill
}

func (f *typeDefFill) bindInner() error {
	if f.td == nil || f.inner == nil {
		return nil
	}
	sub, err := elementDesc(f.td)
	if err != nil {
		return err
	}
	return f.inner.Bind(sub, -1, f.tmFlags)
}

func (f *typeDefFill) Bind(td *typedesc.TypeDesc, index int, tmFlags uint16) error {
	if err := f.baseFill.Bind(td, index, tmFlags); err != nil {
		return err
	}
	if err := f.bindInner(); err != nil {
		return childErr(f.inner.Tag(), err)
	}
	return nil
}

func (f *typeDefFill) ReadData(r *rsrcio.Reader) error {
	sub, err := elementDesc(f.td)
	if err != nil {
		return err
	}
	e, err := f.codec.NewFillForDesc(sub, -1, f.tmFlags)
	if err != nil {
		return childErr(sub.Tag(), err)
	}
	if err := e.ReadData(r); err != nil {
		return childErr(sub.Tag(), err)
	}
	f.inner = e
	return nil
}

func (f *typeDefFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	if f.inner == nil {
		return fmt.Errorf("%w: typedef value not initialized", ErrMalformed)
	}
	if err := f.inner.WriteData(w, avoidRecompute); err != nil {
		return childErr(f.inner.Tag(), err)
	}
	return nil
}

func (f *typeDefFill) ExpectedSize() (int, bool) {
	if f.inner == nil {
		return 0, false
	}
	return f.inner.ExpectedSize()
}

func (f *typeDefFill) WriteXML(elem *etree.Element) error {
	if f.inner == nil {
		return fmt.Errorf("%w: typedef value not initialized", ErrMalformed)
	}
	sub := elem.CreateElement(f.inner.TagName())
	if err := f.inner.WriteXML(sub); err != nil {
		return childErr(f.inner.Tag(), err)
	}
	return nil
}

func (f *typeDefFill) ReadXML(elem *etree.Element) error {
	children := elem.ChildElements()
	if len(children) != 1 {
		return fmt.Errorf("%w: typedef expects one inner value, got %d",
			ErrMalformed, len(children))
	}
	sub, err := f.codec.NewFillForTagName(children[0].Tag)
	if err != nil {
		return err
	}
	if err := sub.ReadXML(children[0]); err != nil {
		return childErr(sub.Tag(), err)
	}
	f.inner = sub
	return nil
}

func (f *typeDefFill) Finalize() error {
	if f.inner == nil {
		return nil
	}
	if err := f.bindInner(); err != nil {
		return childErr(f.inner.Tag(), err)
	}
	if err := f.inner.Finalize(); err != nil {
		return childErr(f.inner.Tag(), err)
	}
	return nil
}
