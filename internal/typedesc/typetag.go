package typedesc

// TypeTag is the full-type identifier of a type descriptor. The values
// match the on-disk tag bytes of the consolidated type table, but the
// data-fill codec never reads them from the wire directly; it receives
// them through an already-built descriptor graph.
type TypeTag uint8

const (
	TagVoid          TypeTag = 0x00
	TagNumInt8       TypeTag = 0x01
	TagNumInt16      TypeTag = 0x02
	TagNumInt32      TypeTag = 0x03
	TagNumInt64      TypeTag = 0x04
	TagNumUInt8      TypeTag = 0x05
	TagNumUInt16     TypeTag = 0x06
	TagNumUInt32     TypeTag = 0x07
	TagNumUInt64     TypeTag = 0x08
	TagNumFloat32    TypeTag = 0x09
	TagNumFloat64    TypeTag = 0x0A
	TagNumFloatExt   TypeTag = 0x0B
	TagNumComplex64  TypeTag = 0x0C
	TagNumComplex128 TypeTag = 0x0D
	TagNumComplexExt TypeTag = 0x0E
	TagUnitUInt8     TypeTag = 0x15
	TagUnitUInt16    TypeTag = 0x16
	TagUnitUInt32    TypeTag = 0x17
	TagUnitFloat32   TypeTag = 0x19
	TagUnitFloat64   TypeTag = 0x1A
	TagUnitFloatExt  TypeTag = 0x1B
	TagUnitComplex64 TypeTag = 0x1C
	TagUnitCmplx128  TypeTag = 0x1D
	TagUnitCmplxExt  TypeTag = 0x1E
	TagBooleanU16    TypeTag = 0x20
	TagBoolean       TypeTag = 0x21
	TagString        TypeTag = 0x30
	TagPath          TypeTag = 0x32
	TagPicture       TypeTag = 0x33
	TagCString       TypeTag = 0x34
	TagPasString     TypeTag = 0x35
	TagTag           TypeTag = 0x37
	TagSubString     TypeTag = 0x3F
	TagArray         TypeTag = 0x40
	TagArrayDataPtr  TypeTag = 0x41
	TagArrayInterfc  TypeTag = 0x42
	TagSubArray      TypeTag = 0x4F
	TagCluster       TypeTag = 0x50
	TagLVVariant     TypeTag = 0x53
	TagMeasureData   TypeTag = 0x54
	TagComplexFixed  TypeTag = 0x5E
	TagFixedPoint    TypeTag = 0x5F
	TagBlock         TypeTag = 0x60
	TagTypeBlock     TypeTag = 0x61
	TagVoidBlock     TypeTag = 0x62
	TagAlignedBlock  TypeTag = 0x63
	TagRepeatedBlock TypeTag = 0x64
	TagAlignMarker   TypeTag = 0x65
	TagRefnum        TypeTag = 0x70
	TagPtr           TypeTag = 0x80
	TagPtrTo         TypeTag = 0x83
	TagExtData       TypeTag = 0x84
	TagFunction      TypeTag = 0xF0
	TagTypeDef       TypeTag = 0xF1
	TagPolyVI        TypeTag = 0xF2
)

var tagNames = map[TypeTag]string{
	TagVoid:          "Void",
	TagNumInt8:       "NumInt8",
	TagNumInt16:      "NumInt16",
	TagNumInt32:      "NumInt32",
	TagNumInt64:      "NumInt64",
	TagNumUInt8:      "NumUInt8",
	TagNumUInt16:     "NumUInt16",
	TagNumUInt32:     "NumUInt32",
	TagNumUInt64:     "NumUInt64",
	TagNumFloat32:    "NumFloat32",
	TagNumFloat64:    "NumFloat64",
	TagNumFloatExt:   "NumFloatExt",
	TagNumComplex64:  "NumComplex64",
	TagNumComplex128: "NumComplex128",
	TagNumComplexExt: "NumComplexExt",
	TagUnitUInt8:     "UnitUInt8",
	TagUnitUInt16:    "UnitUInt16",
	TagUnitUInt32:    "UnitUInt32",
	TagUnitFloat32:   "UnitFloat32",
	TagUnitFloat64:   "UnitFloat64",
	TagUnitFloatExt:  "UnitFloatExt",
	TagUnitComplex64: "UnitComplex64",
	TagUnitCmplx128:  "UnitComplex128",
	TagUnitCmplxExt:  "UnitComplexExt",
	TagBooleanU16:    "BooleanU16",
	TagBoolean:       "Boolean",
	TagString:        "String",
	TagPath:          "Path",
	TagPicture:       "Picture",
	TagCString:       "CString",
	TagPasString:     "PasString",
	TagTag:           "Tag",
	TagSubString:     "SubString",
	TagArray:         "Array",
	TagArrayDataPtr:  "ArrayDataPtr",
	TagArrayInterfc:  "ArrayInterfc",
	TagSubArray:      "SubArray",
	TagCluster:       "Cluster",
	TagLVVariant:     "LVVariant",
	TagMeasureData:   "MeasureData",
	TagComplexFixed:  "ComplexFixedPt",
	TagFixedPoint:    "FixedPoint",
	TagBlock:         "Block",
	TagTypeBlock:     "TypeBlock",
	TagVoidBlock:     "VoidBlock",
	TagAlignedBlock:  "AlignedBlock",
	TagRepeatedBlock: "RepeatedBlock",
	TagAlignMarker:   "AlignmntMarker",
	TagRefnum:        "Refnum",
	TagPtr:           "Ptr",
	TagPtrTo:         "PtrTo",
	TagExtData:       "ExtData",
	TagFunction:      "Function",
	TagTypeDef:       "TypeDef",
	TagPolyVI:        "PolyVI",
}

var tagByName = invert(tagNames)

func invert[K comparable](m map[K]string) map[string]K {
	out := make(map[string]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// Name returns the text-tree tag name used for this type, or a hex
// rendering for tags outside the known set.
func (t TypeTag) Name() string {
	if n, ok := tagNames[t]; ok {
		return n
	}
	return "Type0x" + hexByte(uint8(t))
}

func (t TypeTag) String() string { return t.Name() }

// TagByName performs the inverse lookup used when dispatching inbound
// text-tree nodes.
func TagByName(name string) (TypeTag, bool) {
	t, ok := tagByName[name]
	return t, ok
}

const hexDigits = "0123456789ABCDEF"

func hexByte(b uint8) string {
	return string([]byte{hexDigits[b>>4], hexDigits[b&0xF]})
}
