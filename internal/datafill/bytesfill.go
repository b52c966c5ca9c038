package datafill

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/lvkit/lvrsrc/internal/lvclasses"
	"github.com/lvkit/lvrsrc/internal/rsrcio"
)

// stringFill covers the length-prefixed byte string types, including
// pictures and tags which share the layout.
type stringFill struct {
	baseFill
	value []byte
}

func (f *stringFill) ReadData(r *rsrcio.Reader) error {
	b, err := r.ReadPrefixedBytes()
	if err != nil {
		return err
	}
	f.value = b
	return nil
}

func (f *stringFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	w.WritePrefixedBytes(f.value)
	return w.Err()
}

func (f *stringFill) ExpectedSize() (int, bool) { return 4 + len(f.value), true }

func (f *stringFill) WriteXML(elem *etree.Element) error {
	f.codec.storeText(elem, f.value)
	return nil
}

func (f *stringFill) ReadXML(elem *etree.Element) error {
	b, err := f.codec.loadText(elem)
	if err != nil {
		return err
	}
	f.value = b
	return nil
}

// cstringFill covers the C string and Pascal string pointer types,
// which in default data are a bare 4-byte value rather than actual
// string content.
type cstringFill struct {
	baseFill
	value uint32
}

func (f *cstringFill) ReadData(r *rsrcio.Reader) error {
	v, err := r.ReadU32()
	if err != nil {
		return err
	}
	f.value = v
	return nil
}

func (f *cstringFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	w.WriteU32(f.value)
	return w.Err()
}

func (f *cstringFill) ExpectedSize() (int, bool) { return 4, true }

func (f *cstringFill) WriteXML(elem *etree.Element) error {
	elem.SetText(strconv.FormatUint(uint64(f.value), 10))
	return nil
}

func (f *cstringFill) ReadXML(elem *etree.Element) error {
	v, err := parseUintText(elem.Text(), 32)
	if err != nil {
		return err
	}
	f.value = uint32(v)
	return nil
}

// handleFill covers the pointer-to and array-data-pointer types: a
// 4-byte handle value in default data.
type handleFill struct {
	baseFill
	value uint32
}

func (f *handleFill) ReadData(r *rsrcio.Reader) error {
	v, err := r.ReadU32()
	if err != nil {
		return err
	}
	f.value = v
	return nil
}

func (f *handleFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	w.WriteU32(f.value)
	return w.Err()
}

func (f *handleFill) ExpectedSize() (int, bool) { return 4, true }

func (f *handleFill) WriteXML(elem *etree.Element) error {
	elem.SetText(strconv.FormatUint(uint64(f.value), 10))
	return nil
}

func (f *handleFill) ReadXML(elem *etree.Element) error {
	v, err := parseUintText(elem.Text(), 32)
	if err != nil {
		return err
	}
	f.value = uint32(v)
	return nil
}

// pathFill delegates to the self-identifying path classes. The stream
// starts with a 4-byte format identifier which selects the concrete
// representation.
type pathFill struct {
	baseFill
	value lvclasses.PathValue
}

func (f *pathFill) ReadData(r *rsrcio.Reader) error {
	magic, err := r.Peek(4)
	if err != nil {
		return err
	}
	pv, err := lvclasses.NewPathValue(string(magic))
	if err != nil {
		if errors.Is(err, lvclasses.ErrUnknownFormat) {
			return fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		return err
	}
	if err := pv.ReadData(r); err != nil {
		return f.mapErr(err)
	}
	f.value = pv
	return nil
}

func (f *pathFill) mapErr(err error) error {
	switch {
	case errors.Is(err, lvclasses.ErrUnsupportedData):
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	case errors.Is(err, lvclasses.ErrMalformed), errors.Is(err, lvclasses.ErrUnknownFormat):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return err
}

func (f *pathFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	if f.value == nil {
		return fmt.Errorf("%w: path value not initialized", ErrMalformed)
	}
	f.value.WriteData(w)
	return w.Err()
}

func (f *pathFill) ExpectedSize() (int, bool) {
	if f.value == nil {
		return 0, false
	}
	return f.value.ExpectedSize(), true
}

func (f *pathFill) WriteXML(elem *etree.Element) error {
	if f.value == nil {
		return fmt.Errorf("%w: path value not initialized", ErrMalformed)
	}
	f.value.WriteXML(elem)
	return nil
}

func (f *pathFill) ReadXML(elem *etree.Element) error {
	ident := elem.SelectAttrValue("Ident", "")
	pv, err := lvclasses.NewPathValue(ident)
	if err != nil {
		return f.mapErr(err)
	}
	if err := pv.ReadXML(elem); err != nil {
		return f.mapErr(err)
	}
	f.value = pv
	return nil
}

// blockFill covers the fixed-size opaque block types. The byte count
// comes from the descriptor; a value whose length drifted from it is
// padded or truncated on encode with a warning rather than failing.
type blockFill struct {
	baseFill
	value []byte
}

func (f *blockFill) size() int {
	if f.td == nil {
		return len(f.value)
	}
	return f.td.BlockSize()
}

func (f *blockFill) ReadData(r *rsrcio.Reader) error {
	b, err := r.ReadBlock(f.size())
	if err != nil {
		return err
	}
	f.value = b
	return nil
}

func (f *blockFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	want := f.size()
	if len(f.value) != want {
		f.codec.logger().Warn("block value length differs from descriptor, adjusting",
			"type", f.TagName(), "have", len(f.value), "want", want)
		if len(f.value) > want {
			f.value = f.value[:want]
		} else {
			f.value = append(f.value, make([]byte, want-len(f.value))...)
		}
	}
	w.WriteBlock(f.value)
	return w.Err()
}

func (f *blockFill) ExpectedSize() (int, bool) { return len(f.value), true }

func (f *blockFill) WriteXML(elem *etree.Element) error {
	elem.SetText(hex.EncodeToString(f.value))
	return nil
}

func (f *blockFill) ReadXML(elem *etree.Element) error {
	b, err := hex.DecodeString(strings.TrimSpace(elem.Text()))
	if err != nil {
		return fmt.Errorf("%w: bad hex block: %v", ErrMalformed, err)
	}
	f.value = b
	return nil
}

// variantFill wraps a variant container. The concrete representation
// depends on the file version: the native container from 6.0.0.2 on,
// the OLE form before that.
type variantFill struct {
	baseFill
	value lvclasses.VariantValue
}

func (f *variantFill) newValue() lvclasses.VariantValue {
	if f.codec.Version.AtLeast(6, 0, 0, 2) {
		return &lvclasses.LVVariant{}
	}
	return &lvclasses.OleVariant{}
}

func (f *variantFill) ReadData(r *rsrcio.Reader) error {
	v := f.newValue()
	if err := v.ReadData(r); err != nil {
		if errors.Is(err, lvclasses.ErrUnsupportedData) {
			return fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		return err
	}
	f.value = v
	return nil
}

func (f *variantFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	if f.value == nil {
		f.value = f.newValue()
	}
	f.value.WriteData(w)
	return w.Err()
}

func (f *variantFill) ExpectedSize() (int, bool) {
	if f.value == nil {
		return 0, false
	}
	return f.value.ExpectedSize(), true
}

func (f *variantFill) WriteXML(elem *etree.Element) error {
	if f.value == nil {
		f.value = f.newValue()
	}
	f.value.WriteXML(elem)
	return nil
}

func (f *variantFill) ReadXML(elem *etree.Element) error {
	v := f.newValue()
	if err := v.ReadXML(elem); err != nil {
		if errors.Is(err, lvclasses.ErrUnsupportedData) {
			return fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		return err
	}
	f.value = v
	return nil
}
