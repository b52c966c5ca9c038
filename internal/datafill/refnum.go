package datafill

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/lvkit/lvrsrc/internal/rsrcio"
	"github.com/lvkit/lvrsrc/internal/typedesc"
)

// newRefnumFill routes a refnum kind to its wire encoding. Most kinds
// are a bare 4-byte handle; the IO kinds, user-defined tag kinds and
// the class instance kind carry structured payloads.
func newRefnumFill(c *Codec, kind typedesc.RefnumKind) Fill {
	base := refnumBase{baseFill: newBase(c, typedesc.TagRefnum), kind: kind}
	switch kind {
	case typedesc.RefIVIRef, typedesc.RefVisaRef, typedesc.RefImaq:
		return &ioRefnumFill{refnumBase: base}
	case typedesc.RefUsrDefndTag, typedesc.RefUsrDefTagFlt:
		return &udTagRefnumFill{refnumBase: base}
	case typedesc.RefUsrDefined:
		return &udRefnumFill{simpleRefnumFill{refnumBase: base}}
	case typedesc.RefUDClassInst:
		return &udClassInstFill{refnumBase: base}
	default:
		return &simpleRefnumFill{refnumBase: base}
	}
}

type refnumBase struct {
	baseFill
	kind typedesc.RefnumKind
}

func (f *refnumBase) TagName() string { return f.kind.Name() }

func (f *refnumBase) String() string {
	return fmt.Sprintf("Refnum %s(index=%d)", f.kind.Name(), f.index)
}

// refKind prefers the bound descriptor's kind; before Bind the
// factory-supplied kind stands in.
func (f *refnumBase) refKind() typedesc.RefnumKind {
	if f.td != nil {
		return f.td.RefKind()
	}
	return f.kind
}

// simpleRefnumFill is the 4-byte handle shared by queue, notifier,
// network connection and the other plain reference kinds.
type simpleRefnumFill struct {
	refnumBase
	value uint32
}

func (f *simpleRefnumFill) ReadData(r *rsrcio.Reader) error {
	v, err := r.ReadU32()
	if err != nil {
		return err
	}
	f.value = v
	return nil
}

func (f *simpleRefnumFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	w.WriteU32(f.value)
	return w.Err()
}

func (f *simpleRefnumFill) ExpectedSize() (int, bool) { return 4, true }

func (f *simpleRefnumFill) WriteXML(elem *etree.Element) error {
	elem.SetText(strconv.FormatUint(uint64(f.value), 10))
	return nil
}

func (f *simpleRefnumFill) ReadXML(elem *etree.Element) error {
	v, err := parseUintText(elem.Text(), 32)
	if err != nil {
		return err
	}
	f.value = uint32(v)
	return nil
}

// udRefnumFill is the non-tag user-defined refnum. Its wire form is
// the plain handle; it stays a distinct variant because its kind
// gates the tag-string branch other user-defined kinds take.
type udRefnumFill struct {
	simpleRefnumFill
}

// ioRefnumFill covers instrument IO refnums. From format version
// 6.0.0 on the tag-string kinds store a length-prefixed name; older
// files and non-tag kinds store a 4-byte value.
type ioRefnumFill struct {
	refnumBase
	str   []byte
	num   uint32
	isStr bool
}

func (f *ioRefnumFill) storesString() bool {
	return f.codec.Version.AtLeast(6, 0, 0, 0) && f.refKind().IsTag()
}

func (f *ioRefnumFill) ReadData(r *rsrcio.Reader) error {
	if f.storesString() {
		b, err := r.ReadPrefixedBytes()
		if err != nil {
			return err
		}
		f.str = b
		f.isStr = true
		return nil
	}
	v, err := r.ReadU32()
	if err != nil {
		return err
	}
	f.num = v
	f.isStr = false
	return nil
}

func (f *ioRefnumFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	if f.storesString() {
		w.WritePrefixedBytes(f.str)
	} else {
		w.WriteU32(f.num)
	}
	return w.Err()
}

func (f *ioRefnumFill) ExpectedSize() (int, bool) {
	if f.storesString() {
		return 4 + len(f.str), true
	}
	return 4, true
}

func (f *ioRefnumFill) WriteXML(elem *etree.Element) error {
	if f.isStr {
		elem.CreateAttr("StoredAs", "String")
		f.codec.storeText(elem, f.str)
		return nil
	}
	elem.CreateAttr("StoredAs", "Int")
	elem.SetText(strconv.FormatUint(uint64(f.num), 10))
	return nil
}

func (f *ioRefnumFill) ReadXML(elem *etree.Element) error {
	switch stored := elem.SelectAttrValue("StoredAs", ""); stored {
	case "String":
		b, err := f.codec.loadText(elem)
		if err != nil {
			return err
		}
		f.str = b
		f.isStr = true
	case "Int":
		v, err := parseUintText(elem.Text(), 32)
		if err != nil {
			return err
		}
		f.num = uint32(v)
		f.isStr = false
	default:
		return fmt.Errorf("%w: IO refnum with StoredAs=%q", ErrMalformed, stored)
	}
	return nil
}

// udTagRefnumFill covers the user-defined tag refnum kinds: a
// length-prefixed tag string, a version-windowed pad byte and, for
// the filtered kind, four extra user-defined fields.
type udTagRefnumFill struct {
	refnumBase
	tagData []byte
	usr1    []byte
	usr2    []byte
	usr3    uint32
	usr4    []byte
}

// padByteActive covers the narrow run of format versions which wrote
// a stray alignment byte after the tag string.
func (f *udTagRefnumFill) padByteActive() bool {
	return f.codec.Version.AtLeast(12, 0, 0, 2) && f.codec.Version.Below(12, 0, 0, 5)
}

func (f *udTagRefnumFill) filtered() bool {
	return f.refKind() == typedesc.RefUsrDefTagFlt
}

func (f *udTagRefnumFill) ReadData(r *rsrcio.Reader) error {
	b, err := r.ReadPrefixedBytes()
	if err != nil {
		return err
	}
	f.tagData = b
	if f.padByteActive() {
		if err := r.Skip(1); err != nil {
			return err
		}
	}
	if f.filtered() {
		if f.usr1, err = r.ReadPrefixedBytes(); err != nil {
			return err
		}
		if f.usr2, err = r.ReadPrefixedBytes(); err != nil {
			return err
		}
		if f.usr3, err = r.ReadU32(); err != nil {
			return err
		}
		if f.usr4, err = r.ReadPrefixedBytes(); err != nil {
			return err
		}
	}
	return nil
}

func (f *udTagRefnumFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	w.WritePrefixedBytes(f.tagData)
	if f.padByteActive() {
		w.WriteU8(0)
	}
	if f.filtered() {
		w.WritePrefixedBytes(f.usr1)
		w.WritePrefixedBytes(f.usr2)
		w.WriteU32(f.usr3)
		w.WritePrefixedBytes(f.usr4)
	}
	return w.Err()
}

func (f *udTagRefnumFill) ExpectedSize() (int, bool) {
	n := 4 + len(f.tagData)
	if f.padByteActive() {
		n++
	}
	if f.filtered() {
		n += 4 + len(f.usr1)
		n += 4 + len(f.usr2)
		n += 4
		n += 4 + len(f.usr4)
	}
	return n, true
}

func (f *udTagRefnumFill) WriteXML(elem *etree.Element) error {
	f.codec.storeText(elem, f.tagData)
	if f.filtered() {
		u1, _ := f.codec.bytesToText(f.usr1)
		u2, _ := f.codec.bytesToText(f.usr2)
		u4, _ := f.codec.bytesToText(f.usr4)
		elem.CreateAttr("UsrDef1", u1)
		elem.CreateAttr("UsrDef2", u2)
		elem.CreateAttr("UsrDef3", strconv.FormatUint(uint64(f.usr3), 10))
		elem.CreateAttr("UsrDef4", u4)
	}
	return nil
}

func (f *udTagRefnumFill) ReadXML(elem *etree.Element) error {
	b, err := f.codec.loadText(elem)
	if err != nil {
		return err
	}
	f.tagData = b
	if attr := elem.SelectAttr("UsrDef1"); attr != nil {
		if f.usr1, err = f.codec.textToBytes(attr.Value); err != nil {
			return err
		}
	}
	if attr := elem.SelectAttr("UsrDef2"); attr != nil {
		if f.usr2, err = f.codec.textToBytes(attr.Value); err != nil {
			return err
		}
	}
	if attr := elem.SelectAttr("UsrDef3"); attr != nil {
		v, err := parseUintText(attr.Value, 32)
		if err != nil {
			return err
		}
		f.usr3 = uint32(v)
	}
	if attr := elem.SelectAttr("UsrDef4"); attr != nil {
		if f.usr4, err = f.codec.textToBytes(attr.Value); err != nil {
			return err
		}
	}
	return nil
}

// udClassInstFill covers the class instance refnum: a level count, a
// Pascal-style library name padded to a 4-byte boundary, then one
// length-prefixed version string per level.
type udClassInstFill struct {
	refnumBase
	libName []byte
	levels  [][]byte
}

func (f *udClassInstFill) ReadData(r *rsrcio.Reader) error {
	numLevels, err := r.ReadU32()
	if err != nil {
		return err
	}
	nameLen, err := r.ReadU8()
	if err != nil {
		return err
	}
	name, err := r.ReadBlock(int(nameLen))
	if err != nil {
		return err
	}
	if pad := pstrPad(int(nameLen)); pad > 0 {
		if err := r.Skip(pad); err != nil {
			return err
		}
	}
	if limit := f.codec.limits().TypeList; int(numLevels) > limit {
		return fmt.Errorf("%w: class instance refnum claims %d levels, limit %d",
			ErrSizeLimit, numLevels, limit)
	}
	f.libName = name
	f.levels = nil
	for i := uint32(0); i < numLevels; i++ {
		lv, err := r.ReadPrefixedBytes()
		if err != nil {
			return err
		}
		f.levels = append(f.levels, lv)
	}
	return nil
}

func (f *udClassInstFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	if len(f.libName) > 255 {
		return fmt.Errorf("%w: library name of %d bytes", ErrMalformed, len(f.libName))
	}
	w.WriteU32(uint32(len(f.levels)))
	w.WriteU8(uint8(len(f.libName)))
	w.WriteBlock(f.libName)
	if pad := pstrPad(len(f.libName)); pad > 0 {
		w.WriteBlock(make([]byte, pad))
	}
	for _, lv := range f.levels {
		w.WritePrefixedBytes(lv)
	}
	return w.Err()
}

// pstrPad returns the pad after a Pascal string of n content bytes so
// the string plus its length byte fills whole 4-byte units.
func pstrPad(n int) int {
	return (4 - (1+n)%4) % 4
}

func (f *udClassInstFill) ExpectedSize() (int, bool) {
	n := 4 + 1 + len(f.libName) + pstrPad(len(f.libName))
	for _, lv := range f.levels {
		n += 4 + len(lv)
	}
	return n, true
}

func (f *udClassInstFill) WriteXML(elem *etree.Element) error {
	f.codec.storeText(elem.CreateElement("LibName"), f.libName)
	for _, lv := range f.levels {
		f.codec.storeText(elem.CreateElement("LibVersion"), lv)
	}
	return nil
}

func (f *udClassInstFill) ReadXML(elem *etree.Element) error {
	f.libName = nil
	f.levels = nil
	for _, child := range elem.ChildElements() {
		switch child.Tag {
		case "LibName":
			b, err := f.codec.loadText(child)
			if err != nil {
				return err
			}
			f.libName = b
		case "LibVersion":
			b, err := f.codec.loadText(child)
			if err != nil {
				return err
			}
			f.levels = append(f.levels, b)
		default:
			return fmt.Errorf("%w: unexpected element %q in class instance refnum",
				ErrMalformed, child.Tag)
		}
	}
	return nil
}
