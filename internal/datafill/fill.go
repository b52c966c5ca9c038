package datafill

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/lvkit/lvrsrc/internal/rsrcio"
	"github.com/lvkit/lvrsrc/internal/typedesc"
)

// Fill is a decoded default value attached to a type descriptor. A
// fill is built in two phases: the factory creates it from a type tag,
// and Bind links it to the descriptor that governs its layout. Both
// the binary form and the XML form round-trip through the same fill.
type Fill interface {
	// Tag returns the type tag the fill was created for.
	Tag() typedesc.TypeTag
	// TagName returns the XML element name for this fill.
	TagName() string
	// Desc returns the bound descriptor, nil before Bind.
	Desc() *typedesc.TypeDesc
	// Index returns the descriptor's position within its parent, or -1.
	Index() int

	// Bind attaches the fill to its descriptor. Container fills
	// re-bind every already constructed child to the corresponding
	// child descriptor.
	Bind(td *typedesc.TypeDesc, index int, tmFlags uint16) error

	// ReadData decodes the fill's value from the binary stream.
	ReadData(r *rsrcio.Reader) error
	// WriteData encodes the fill's value to the binary stream.
	// avoidRecompute is forwarded to nested values untouched.
	WriteData(w *rsrcio.Writer, avoidRecompute bool) error
	// ExpectedSize returns the encoded byte size of the current
	// value, or false when the size cannot be determined.
	ExpectedSize() (int, bool)

	// ReadXML loads the fill's value from its XML element.
	ReadXML(elem *etree.Element) error
	// WriteXML stores the fill's value into its XML element.
	WriteXML(elem *etree.Element) error

	// Finalize runs deferred work once both the value and the
	// descriptor are known, such as late binding of children built
	// from XML.
	Finalize() error
}

// baseFill carries the state shared by every fill variant and the
// default behavior for leaves. Variants embed it and override what
// differs.
type baseFill struct {
	codec   *Codec
	tag     typedesc.TypeTag
	td      *typedesc.TypeDesc
	index   int
	tmFlags uint16
}

func newBase(c *Codec, tag typedesc.TypeTag) baseFill {
	return baseFill{codec: c, tag: tag, index: -1}
}

func (b *baseFill) Tag() typedesc.TypeTag    { return b.tag }
func (b *baseFill) TagName() string          { return b.tag.Name() }
func (b *baseFill) Desc() *typedesc.TypeDesc { return b.td }
func (b *baseFill) Index() int               { return b.index }

func (b *baseFill) Bind(td *typedesc.TypeDesc, index int, tmFlags uint16) error {
	if td == nil {
		return fmt.Errorf("%w: nil type descriptor", ErrMalformed)
	}
	if td.Tag() != b.tag {
		return fmt.Errorf("%w: %s fill bound to %s descriptor",
			ErrTypeMismatch, b.tag.Name(), td.Tag().Name())
	}
	b.td = td
	b.index = index
	b.tmFlags = tmFlags
	return nil
}

func (b *baseFill) Finalize() error { return nil }

func (b *baseFill) String() string {
	return fmt.Sprintf("%s(index=%d)", b.tag.Name(), b.index)
}

// childrenSize sums the encoded sizes of a fill's children. Any child
// of unknown size makes the total unknown.
func childrenSize(elems []Fill) (int, bool) {
	total := 0
	for _, e := range elems {
		n, ok := e.ExpectedSize()
		if !ok {
			return 0, false
		}
		total += n
	}
	return total, true
}

func writeChildren(w *rsrcio.Writer, elems []Fill, avoidRecompute bool) error {
	for _, e := range elems {
		if err := e.WriteData(w, avoidRecompute); err != nil {
			return childErr(e.Tag(), err)
		}
	}
	return nil
}

func childrenToXML(parent *etree.Element, elems []Fill) error {
	for _, e := range elems {
		sub := parent.CreateElement(e.TagName())
		if err := e.WriteXML(sub); err != nil {
			return childErr(e.Tag(), err)
		}
	}
	return nil
}

func finalizeChildren(elems []Fill) error {
	for _, e := range elems {
		if err := e.Finalize(); err != nil {
			return childErr(e.Tag(), err)
		}
	}
	return nil
}
