package lvclasses

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/lvkit/lvrsrc/internal/rsrcio"
)

// VariantValue is one of the two variant container representations.
// Coverage stops at the container header: a variant carrying a
// populated type table is a format gap, not corrupt data, and decoding
// one fails with ErrUnsupportedData.
type VariantValue interface {
	ClassName() string
	ReadData(r *rsrcio.Reader) error
	WriteData(w *rsrcio.Writer)
	ExpectedSize() int
	ReadXML(elem *etree.Element) error
	WriteXML(elem *etree.Element)
}

// LVVariant is the native variant container used from format version
// 6.0.0.2 on: a 4-byte container version, a 4-byte embedded-type
// count and a 4-byte attribute count.
type LVVariant struct {
	Version uint32
}

func (v *LVVariant) ClassName() string { return "LVVariant" }

func (v *LVVariant) ReadData(r *rsrcio.Reader) error {
	ver, err := r.ReadU32()
	if err != nil {
		return err
	}
	v.Version = ver
	typeCount, err := r.ReadU32()
	if err != nil {
		return err
	}
	if typeCount != 0 {
		return fmt.Errorf("%w: variant with %d embedded types", ErrUnsupportedData, typeCount)
	}
	attrCount, err := r.ReadU32()
	if err != nil {
		return err
	}
	if attrCount != 0 {
		return fmt.Errorf("%w: variant with %d attributes", ErrUnsupportedData, attrCount)
	}
	return nil
}

func (v *LVVariant) WriteData(w *rsrcio.Writer) {
	w.WriteU32(v.Version)
	w.WriteU32(0)
	w.WriteU32(0)
}

func (v *LVVariant) ExpectedSize() int { return 12 }

func (v *LVVariant) ReadXML(elem *etree.Element) error {
	ver, err := strconv.ParseUint(elem.SelectAttrValue("Version", "0"), 0, 32)
	if err != nil {
		return fmt.Errorf("%w: variant Version attribute", ErrMalformed)
	}
	v.Version = uint32(ver)
	return nil
}

func (v *LVVariant) WriteXML(elem *etree.Element) {
	elem.CreateAttr("Version", fmt.Sprintf("0x%08X", v.Version))
}

// OleVariant is the pre-6.0.0.2 container: a 2-byte OLE value-type
// code. Only the empty code is covered.
type OleVariant struct {
	VarType uint16
}

func (v *OleVariant) ClassName() string { return "OleVariant" }

func (v *OleVariant) ReadData(r *rsrcio.Reader) error {
	vt, err := r.ReadU16()
	if err != nil {
		return err
	}
	if vt != 0 {
		return fmt.Errorf("%w: OLE variant type 0x%04X", ErrUnsupportedData, vt)
	}
	v.VarType = vt
	return nil
}

func (v *OleVariant) WriteData(w *rsrcio.Writer) {
	w.WriteU16(v.VarType)
}

func (v *OleVariant) ExpectedSize() int { return 2 }

func (v *OleVariant) ReadXML(elem *etree.Element) error {
	vt, err := strconv.ParseUint(elem.SelectAttrValue("VarType", "0"), 0, 16)
	if err != nil {
		return fmt.Errorf("%w: variant VarType attribute", ErrMalformed)
	}
	if vt != 0 {
		return fmt.Errorf("%w: OLE variant type 0x%04X", ErrUnsupportedData, vt)
	}
	v.VarType = uint16(vt)
	return nil
}

func (v *OleVariant) WriteXML(elem *etree.Element) {
	elem.CreateAttr("VarType", strconv.Itoa(int(v.VarType)))
}
