package datafill

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/lvkit/lvrsrc/internal/lvver"
	"github.com/lvkit/lvrsrc/internal/rsrcio"
	"github.com/lvkit/lvrsrc/internal/typedesc"
)

// Limits caps the element counts a file may declare before any
// allocation happens.
type Limits struct {
	// ArrayData caps the total element count of an array or the
	// repeat count of a repeated block.
	ArrayData int
	// TypeList caps list-like counts inside single values, such as
	// the inheritance depth of a class instance refnum.
	TypeList int
}

// DefaultLimits returns the caps used when a Codec leaves Limits zero.
func DefaultLimits() Limits {
	return Limits{ArrayData: 134217728, TypeList: 4096}
}

// Codec holds the per-file context every fill decodes and encodes
// under: the format version of the file, size limits, the text
// encoding of string payloads and the logger for tolerated
// irregularities. The zero value is not usable; Version must be set.
type Codec struct {
	Version  lvver.Version
	Limits   Limits
	Encoding encoding.Encoding
	Logger   *slog.Logger
}

func (c *Codec) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Codec) limits() Limits {
	l := c.Limits
	d := DefaultLimits()
	if l.ArrayData <= 0 {
		l.ArrayData = d.ArrayData
	}
	if l.TypeList <= 0 {
		l.TypeList = d.TypeList
	}
	return l
}

func (c *Codec) encoding() encoding.Encoding {
	if c.Encoding != nil {
		return c.Encoding
	}
	return charmap.Windows1252
}

// NewFill creates an unbound fill for the given type tag. sub selects
// the measurement flavor or refnum kind where the tag needs one and is
// ignored otherwise.
func (c *Codec) NewFill(tag typedesc.TypeTag, sub uint16) (Fill, error) {
	switch tag {
	case typedesc.TagVoid, typedesc.TagVoidBlock, typedesc.TagAlignMarker:
		return &voidFill{baseFill: newBase(c, tag)}, nil
	case typedesc.TagNumInt8, typedesc.TagNumInt16, typedesc.TagNumInt32, typedesc.TagNumInt64,
		typedesc.TagNumUInt8, typedesc.TagNumUInt16, typedesc.TagNumUInt32, typedesc.TagNumUInt64,
		typedesc.TagUnitUInt8, typedesc.TagUnitUInt16, typedesc.TagUnitUInt32:
		return newIntFill(c, tag), nil
	case typedesc.TagNumFloat32, typedesc.TagUnitFloat32:
		return &floatFill{baseFill: newBase(c, tag), width: 4}, nil
	case typedesc.TagNumFloat64, typedesc.TagUnitFloat64:
		return &floatFill{baseFill: newBase(c, tag), width: 8}, nil
	case typedesc.TagNumFloatExt, typedesc.TagUnitFloatExt:
		return &floatFill{baseFill: newBase(c, tag), width: 16}, nil
	case typedesc.TagNumComplex64, typedesc.TagUnitComplex64:
		return &complexFill{baseFill: newBase(c, tag), width: 4}, nil
	case typedesc.TagNumComplex128, typedesc.TagUnitCmplx128:
		return &complexFill{baseFill: newBase(c, tag), width: 8}, nil
	case typedesc.TagNumComplexExt, typedesc.TagUnitCmplxExt:
		return &complexFill{baseFill: newBase(c, tag), width: 16}, nil
	case typedesc.TagBoolean, typedesc.TagBooleanU16:
		return &boolFill{baseFill: newBase(c, tag)}, nil
	case typedesc.TagString, typedesc.TagPicture, typedesc.TagTag:
		return &stringFill{baseFill: newBase(c, tag)}, nil
	case typedesc.TagCString, typedesc.TagPasString:
		return &cstringFill{baseFill: newBase(c, tag)}, nil
	case typedesc.TagPath:
		return &pathFill{baseFill: newBase(c, tag)}, nil
	case typedesc.TagArray, typedesc.TagArrayInterfc:
		return &arrayFill{baseFill: newBase(c, tag)}, nil
	case typedesc.TagArrayDataPtr, typedesc.TagPtrTo:
		return &handleFill{baseFill: newBase(c, tag)}, nil
	case typedesc.TagCluster:
		return &clusterFill{baseFill: newBase(c, tag)}, nil
	case typedesc.TagLVVariant:
		return &variantFill{baseFill: newBase(c, tag)}, nil
	case typedesc.TagMeasureData:
		return &measureFill{baseFill: newBase(c, tag), flavor: typedesc.Flavor(sub)}, nil
	case typedesc.TagFixedPoint:
		return &fixedPointFill{baseFill: newBase(c, tag)}, nil
	case typedesc.TagComplexFixed:
		return &complexFixedFill{baseFill: newBase(c, tag)}, nil
	case typedesc.TagBlock, typedesc.TagAlignedBlock:
		return &blockFill{baseFill: newBase(c, tag)}, nil
	case typedesc.TagRepeatedBlock:
		return &repeatedBlockFill{baseFill: newBase(c, tag)}, nil
	case typedesc.TagTypeBlock, typedesc.TagTypeDef:
		return &typeDefFill{baseFill: newBase(c, tag)}, nil
	case typedesc.TagRefnum:
		return newRefnumFill(c, typedesc.RefnumKind(sub)), nil
	case typedesc.TagPtr:
		return &ptrFill{baseFill: newBase(c, tag)}, nil
	case typedesc.TagExtData:
		return &extDataFill{baseFill: newBase(c, tag)}, nil
	case typedesc.TagSubString, typedesc.TagSubArray, typedesc.TagFunction, typedesc.TagPolyVI:
		return &unexpectedFill{baseFill: newBase(c, tag)}, nil
	default:
		return nil, fmt.Errorf("%w: no data fill for type %s", ErrUnsupported, tag.Name())
	}
}

// NewFillForDesc creates a fill for the descriptor and binds it in one
// step. This is the path binary decoding takes.
func (c *Codec) NewFillForDesc(td *typedesc.TypeDesc, index int, tmFlags uint16) (Fill, error) {
	if td == nil {
		return nil, fmt.Errorf("%w: nil type descriptor", ErrMalformed)
	}
	var sub uint16
	switch td.Tag() {
	case typedesc.TagMeasureData:
		sub = uint16(td.Flavor())
	case typedesc.TagRefnum:
		sub = uint16(td.RefKind())
	}
	f, err := c.NewFill(td.Tag(), sub)
	if err != nil {
		return nil, err
	}
	if err := f.Bind(td, index, tmFlags); err != nil {
		return nil, err
	}
	return f, nil
}

// NewFillForTagName creates an unbound fill from an XML element name.
// This is the path XML loading takes; the caller binds the descriptor
// later and runs Finalize.
func (c *Codec) NewFillForTagName(name string) (Fill, error) {
	if name == specialClusterTagName {
		return newSpecialClusterFill(c), nil
	}
	if fl, ok := typedesc.FlavorByName(name); ok {
		return c.NewFill(typedesc.TagMeasureData, uint16(fl))
	}
	if rk, ok := typedesc.RefnumByName(name); ok {
		return c.NewFill(typedesc.TagRefnum, uint16(rk))
	}
	if tag, ok := typedesc.TagByName(name); ok {
		return c.NewFill(tag, 0)
	}
	return nil, fmt.Errorf("%w: no data fill for tag %q", ErrUnsupported, name)
}

// NewSpecialClusterForDesc creates the special cluster fill used when
// the surrounding type map entry marks the cluster as one, and binds
// it to the descriptor.
func (c *Codec) NewSpecialClusterForDesc(td *typedesc.TypeDesc, index int, tmFlags uint16) (Fill, error) {
	f := newSpecialClusterFill(c)
	if err := f.Bind(td, index, tmFlags); err != nil {
		return nil, err
	}
	return f, nil
}

// EncodeBinary encodes a fill into a fresh byte slice.
func EncodeBinary(f Fill, avoidRecompute bool) ([]byte, error) {
	var buf bytes.Buffer
	w := rsrcio.NewWriter(&buf)
	if err := f.WriteData(w, avoidRecompute); err != nil {
		return nil, err
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBinary decodes a value for the descriptor from raw bytes.
func (c *Codec) DecodeBinary(data []byte, td *typedesc.TypeDesc, tmFlags uint16) (Fill, error) {
	f, err := c.NewFillForDesc(td, -1, tmFlags)
	if err != nil {
		return nil, err
	}
	r := rsrcio.NewReaderBytes(data)
	if err := f.ReadData(r); err != nil {
		return nil, err
	}
	c.logger().Debug("decoded data fill",
		"type", f.TagName(), "bytes", r.BytesRead())
	return f, nil
}

// ExportXML stores a fill as a child element of parent, named after
// the fill's tag name.
func ExportXML(parent *etree.Element, f Fill) (*etree.Element, error) {
	sub := parent.CreateElement(f.TagName())
	if err := f.WriteXML(sub); err != nil {
		return nil, childErr(f.Tag(), err)
	}
	return sub, nil
}
