package datafill

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/lvkit/lvrsrc/internal/floatext"
	"github.com/lvkit/lvrsrc/internal/rsrcio"
	"github.com/lvkit/lvrsrc/internal/typedesc"
)

// voidFill occupies no bytes. It covers the void type and the
// alignment marker types, which exist only for their layout effect.
type voidFill struct {
	baseFill
}

func (f *voidFill) ReadData(r *rsrcio.Reader) error                       { return nil }
func (f *voidFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error { return nil }
func (f *voidFill) ExpectedSize() (int, bool)                             { return 0, true }
func (f *voidFill) ReadXML(elem *etree.Element) error                     { return nil }
func (f *voidFill) WriteXML(elem *etree.Element) error                    { return nil }

var intWidths = map[typedesc.TypeTag]struct {
	width  int
	signed bool
}{
	typedesc.TagNumInt8:    {1, true},
	typedesc.TagNumInt16:   {2, true},
	typedesc.TagNumInt32:   {4, true},
	typedesc.TagNumInt64:   {8, true},
	typedesc.TagNumUInt8:   {1, false},
	typedesc.TagNumUInt16:  {2, false},
	typedesc.TagNumUInt32:  {4, false},
	typedesc.TagNumUInt64:  {8, false},
	typedesc.TagUnitUInt8:  {1, false},
	typedesc.TagUnitUInt16: {2, false},
	typedesc.TagUnitUInt32: {4, false},
}

// intFill covers all fixed-width integer types, signed and unsigned,
// including the unit enumerations which share the unsigned layout.
type intFill struct {
	baseFill
	width  int
	signed bool
	value  uint64
}

func newIntFill(c *Codec, tag typedesc.TypeTag) *intFill {
	info := intWidths[tag]
	return &intFill{baseFill: newBase(c, tag), width: info.width, signed: info.signed}
}

func (f *intFill) ReadData(r *rsrcio.Reader) error {
	v, err := r.ReadUint(f.width)
	if err != nil {
		return err
	}
	f.value = v
	return nil
}

func (f *intFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	w.WriteUint(f.value, f.width)
	return w.Err()
}

func (f *intFill) ExpectedSize() (int, bool) { return f.width, true }

func (f *intFill) WriteXML(elem *etree.Element) error {
	if f.signed {
		elem.SetText(strconv.FormatInt(signExtend(f.value, f.width), 10))
	} else {
		elem.SetText(strconv.FormatUint(f.value, 10))
	}
	return nil
}

func (f *intFill) ReadXML(elem *etree.Element) error {
	if f.signed {
		v, err := parseIntText(elem.Text(), f.width*8)
		if err != nil {
			return err
		}
		f.value = uint64(v)
		return nil
	}
	v, err := parseUintText(elem.Text(), f.width*8)
	if err != nil {
		return err
	}
	f.value = v
	return nil
}

func signExtend(v uint64, width int) int64 {
	shift := 64 - uint(width)*8
	return int64(v<<shift) >> shift
}

// floatFill covers the three float widths. The 16-byte extended form
// is stored as IEEE binary128 on the wire and held here as float64,
// which matches the precision the rest of the toolkit works at.
type floatFill struct {
	baseFill
	width int
	value float64
}

func (f *floatFill) ReadData(r *rsrcio.Reader) error {
	switch f.width {
	case 4:
		v, err := r.ReadF32()
		if err != nil {
			return err
		}
		f.value = float64(v)
	case 8:
		v, err := r.ReadF64()
		if err != nil {
			return err
		}
		f.value = v
	case 16:
		b, err := r.ReadBlock(16)
		if err != nil {
			return err
		}
		var raw [16]byte
		copy(raw[:], b)
		f.value = floatext.Decode(raw)
	}
	return nil
}

func (f *floatFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	switch f.width {
	case 4:
		w.WriteF32(float32(f.value))
	case 8:
		w.WriteF64(f.value)
	case 16:
		raw := floatext.Encode(f.value)
		w.WriteBlock(raw[:])
	}
	return w.Err()
}

func (f *floatFill) ExpectedSize() (int, bool) { return f.width, true }

func (f *floatFill) WriteXML(elem *etree.Element) error {
	elem.SetText(floatext.Format(f.value))
	return nil
}

func (f *floatFill) ReadXML(elem *etree.Element) error {
	v, err := floatext.Parse(elem.Text())
	if err != nil {
		return fmt.Errorf("%w: bad float %q: %v", ErrMalformed, elem.Text(), err)
	}
	f.value = v
	return nil
}

// complexFill covers the complex types as two consecutive floats,
// real part first. width is the byte size of one part.
type complexFill struct {
	baseFill
	width int
	re    float64
	im    float64
}

func (f *complexFill) readPart(r *rsrcio.Reader) (float64, error) {
	switch f.width {
	case 4:
		v, err := r.ReadF32()
		return float64(v), err
	case 8:
		return r.ReadF64()
	default:
		b, err := r.ReadBlock(16)
		if err != nil {
			return 0, err
		}
		var raw [16]byte
		copy(raw[:], b)
		return floatext.Decode(raw), nil
	}
}

func (f *complexFill) writePart(w *rsrcio.Writer, v float64) {
	switch f.width {
	case 4:
		w.WriteF32(float32(v))
	case 8:
		w.WriteF64(v)
	default:
		raw := floatext.Encode(v)
		w.WriteBlock(raw[:])
	}
}

func (f *complexFill) ReadData(r *rsrcio.Reader) error {
	re, err := f.readPart(r)
	if err != nil {
		return err
	}
	im, err := f.readPart(r)
	if err != nil {
		return err
	}
	f.re, f.im = re, im
	return nil
}

func (f *complexFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	f.writePart(w, f.re)
	f.writePart(w, f.im)
	return w.Err()
}

func (f *complexFill) ExpectedSize() (int, bool) { return 2 * f.width, true }

func (f *complexFill) WriteXML(elem *etree.Element) error {
	elem.CreateElement("real").SetText(floatext.Format(f.re))
	elem.CreateElement("imag").SetText(floatext.Format(f.im))
	return nil
}

func (f *complexFill) ReadXML(elem *etree.Element) error {
	for _, child := range elem.ChildElements() {
		v, err := floatext.Parse(child.Text())
		if err != nil {
			return fmt.Errorf("%w: bad float %q: %v", ErrMalformed, child.Text(), err)
		}
		switch child.Tag {
		case "real":
			f.re = v
		case "imag":
			f.im = v
		default:
			return fmt.Errorf("%w: unexpected element %q in complex value", ErrMalformed, child.Tag)
		}
	}
	return nil
}

// boolFill covers both boolean types. The plain boolean's width
// depends on the file version and is resolved lazily, since a value
// loaded from XML exists before its version context is final.
type boolFill struct {
	baseFill
	width int
	value uint16
}

func (f *boolFill) resolveWidth() {
	if f.tag == typedesc.TagBooleanU16 {
		f.width = 2
		return
	}
	if f.codec.Version.AtLeast(4, 5, 0, 0) {
		f.width = 1
	} else {
		f.width = 2
	}
}

func (f *boolFill) ReadData(r *rsrcio.Reader) error {
	f.resolveWidth()
	v, err := r.ReadUint(f.width)
	if err != nil {
		return err
	}
	f.value = uint16(v)
	return nil
}

func (f *boolFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	if f.width == 0 {
		f.resolveWidth()
	}
	w.WriteUint(uint64(f.value), f.width)
	return w.Err()
}

func (f *boolFill) ExpectedSize() (int, bool) {
	if f.width == 0 {
		f.resolveWidth()
	}
	return f.width, true
}

func (f *boolFill) Finalize() error {
	f.resolveWidth()
	return nil
}

func (f *boolFill) WriteXML(elem *etree.Element) error {
	elem.SetText(strconv.FormatUint(uint64(f.value), 10))
	return nil
}

func (f *boolFill) ReadXML(elem *etree.Element) error {
	v, err := parseUintText(elem.Text(), 16)
	if err != nil {
		return err
	}
	f.value = uint16(v)
	return nil
}

// fixedPointFill covers the fixed point type: a 64-bit raw value plus
// an optional overflow status byte controlled by the descriptor.
type fixedPointFill struct {
	baseFill
	value    uint64
	flags    uint8
	hasFlags bool
}

func (f *fixedPointFill) overflowEnabled() bool {
	return f.td != nil && f.td.HasOverflowFlag()
}

func (f *fixedPointFill) ReadData(r *rsrcio.Reader) error {
	v, err := r.ReadU64()
	if err != nil {
		return err
	}
	f.value = v
	f.hasFlags = false
	if f.overflowEnabled() {
		fl, err := r.ReadU8()
		if err != nil {
			return err
		}
		f.flags = fl
		f.hasFlags = true
	}
	return nil
}

func (f *fixedPointFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	w.WriteU64(f.value)
	if f.overflowEnabled() {
		w.WriteU8(f.flags)
	}
	return w.Err()
}

func (f *fixedPointFill) ExpectedSize() (int, bool) {
	n := 8
	if f.overflowEnabled() {
		n++
	}
	return n, true
}

func (f *fixedPointFill) WriteXML(elem *etree.Element) error {
	elem.SetText(strconv.FormatUint(f.value, 10))
	if f.hasFlags {
		elem.CreateAttr("Flags", fmt.Sprintf("0x%02X", f.flags))
	}
	return nil
}

func (f *fixedPointFill) ReadXML(elem *etree.Element) error {
	v, err := parseUintText(elem.Text(), 64)
	if err != nil {
		return err
	}
	f.value = v
	f.hasFlags = false
	if attr := elem.SelectAttrValue("Flags", ""); attr != "" {
		fl, err := parseUintText(attr, 8)
		if err != nil {
			return err
		}
		f.flags = uint8(fl)
		f.hasFlags = true
	}
	return nil
}

// complexFixedFill is the complex variant of the fixed point type:
// real and imaginary raw values, each optionally followed by its own
// overflow status byte.
type complexFixedFill struct {
	baseFill
	values   [2]uint64
	flags    [2]uint8
	hasFlags bool
}

func (f *complexFixedFill) overflowEnabled() bool {
	return f.td != nil && f.td.HasOverflowFlag()
}

func (f *complexFixedFill) ReadData(r *rsrcio.Reader) error {
	f.hasFlags = false
	for i := range f.values {
		v, err := r.ReadU64()
		if err != nil {
			return err
		}
		f.values[i] = v
		if f.overflowEnabled() {
			fl, err := r.ReadU8()
			if err != nil {
				return err
			}
			f.flags[i] = fl
			f.hasFlags = true
		}
	}
	return nil
}

func (f *complexFixedFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	for i := range f.values {
		w.WriteU64(f.values[i])
		if f.overflowEnabled() {
			w.WriteU8(f.flags[i])
		}
	}
	return w.Err()
}

func (f *complexFixedFill) ExpectedSize() (int, bool) {
	n := 16
	if f.overflowEnabled() {
		n += 2
	}
	return n, true
}

func (f *complexFixedFill) WriteXML(elem *etree.Element) error {
	parts := [2]string{"real", "imag"}
	for i, name := range parts {
		sub := elem.CreateElement(name)
		sub.SetText(strconv.FormatUint(f.values[i], 10))
		if f.hasFlags {
			sub.CreateAttr("Flags", fmt.Sprintf("0x%02X", f.flags[i]))
		}
	}
	return nil
}

func (f *complexFixedFill) ReadXML(elem *etree.Element) error {
	f.hasFlags = false
	for _, child := range elem.ChildElements() {
		var i int
		switch child.Tag {
		case "real":
			i = 0
		case "imag":
			i = 1
		default:
			return fmt.Errorf("%w: unexpected element %q in complex value", ErrMalformed, child.Tag)
		}
		v, err := parseUintText(child.Text(), 64)
		if err != nil {
			return err
		}
		f.values[i] = v
		if attr := child.SelectAttrValue("Flags", ""); attr != "" {
			fl, err := parseUintText(attr, 8)
			if err != nil {
				return err
			}
			f.flags[i] = uint8(fl)
			f.hasFlags = true
		}
	}
	return nil
}
