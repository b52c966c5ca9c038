package datafill

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvkit/lvrsrc/internal/lvver"
	"github.com/lvkit/lvrsrc/internal/rsrcio"
	"github.com/lvkit/lvrsrc/internal/typedesc"
)

func newTestCodec(major, minor, fix, build uint32) *Codec {
	return &Codec{Version: lvver.New(major, minor, fix, build)}
}

// decodeBytes builds a bound fill for td and decodes data into it.
func decodeBytes(t *testing.T, c *Codec, td *typedesc.TypeDesc, data []byte) Fill {
	t.Helper()
	f, err := c.DecodeBinary(data, td, 0)
	require.NoError(t, err)
	return f
}

// binaryRoundTrip decodes data, re-encodes it and checks the bytes
// and the size prediction match.
func binaryRoundTrip(t *testing.T, c *Codec, td *typedesc.TypeDesc, data []byte) Fill {
	t.Helper()
	f := decodeBytes(t, c, td, data)
	out, err := EncodeBinary(f, false)
	require.NoError(t, err)
	assert.Equal(t, data, out)
	if n, ok := f.ExpectedSize(); ok {
		assert.Equal(t, len(data), n)
	}
	return f
}

// xmlRoundTrip pushes a filled node through its XML form and back,
// then checks the rebuilt node encodes to identical bytes.
func xmlRoundTrip(t *testing.T, c *Codec, td *typedesc.TypeDesc, f Fill) {
	t.Helper()
	doc := etree.NewDocument()
	root := doc.CreateElement("Root")
	elem, err := ExportXML(root, f)
	require.NoError(t, err)

	back, err := c.NewFillForTagName(elem.Tag)
	require.NoError(t, err)
	require.NoError(t, back.ReadXML(elem))
	require.NoError(t, back.Bind(td, -1, 0))
	require.NoError(t, back.Finalize())

	want, err := EncodeBinary(f, false)
	require.NoError(t, err)
	got, err := EncodeBinary(back, false)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestIntegerRoundTrip(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	cases := []struct {
		tag  typedesc.TypeTag
		data []byte
	}{
		{typedesc.TagNumInt8, []byte{0x80}},
		{typedesc.TagNumInt8, []byte{0x7F}},
		{typedesc.TagNumUInt8, []byte{0x00}},
		{typedesc.TagNumUInt8, []byte{0xFF}},
		{typedesc.TagNumInt16, []byte{0x80, 0x00}},
		{typedesc.TagNumUInt16, []byte{0xFF, 0xFF}},
		{typedesc.TagNumInt32, []byte{0x7F, 0xFF, 0xFF, 0xFF}},
		{typedesc.TagNumUInt32, []byte{0xDE, 0xAD, 0xBE, 0xEF}},
		{typedesc.TagNumInt64, []byte{0x80, 0, 0, 0, 0, 0, 0, 0}},
		{typedesc.TagNumUInt64, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
		{typedesc.TagUnitUInt16, []byte{0x00, 0x05}},
	}
	for _, tc := range cases {
		td := typedesc.New(tc.tag)
		f := binaryRoundTrip(t, c, td, tc.data)
		xmlRoundTrip(t, c, td, f)
	}
}

func TestSignedIntegerXMLText(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.New(typedesc.TagNumInt16)
	f := decodeBytes(t, c, td, []byte{0xFF, 0xFE})

	doc := etree.NewDocument()
	elem, err := ExportXML(doc.CreateElement("Root"), f)
	require.NoError(t, err)
	assert.Equal(t, "-2", elem.Text())
}

func TestFloatRoundTrip(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	for _, tc := range []struct {
		tag  typedesc.TypeTag
		data []byte
	}{
		{typedesc.TagNumFloat32, []byte{0x40, 0x49, 0x0F, 0xDB}},
		{typedesc.TagNumFloat64, []byte{0xC0, 0x09, 0x21, 0xFB, 0x54, 0x44, 0x2D, 0x18}},
		{typedesc.TagNumFloatExt, append([]byte{0x40, 0x00, 0x92, 0x1F, 0xB5, 0x44, 0x42, 0xD1, 0x80}, make([]byte, 7)...)},
	} {
		td := typedesc.New(tc.tag)
		f := binaryRoundTrip(t, c, td, tc.data)
		xmlRoundTrip(t, c, td, f)
	}
}

func TestComplexRoundTrip(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.New(typedesc.TagNumComplex128)
	data := []byte{
		0x3F, 0xF0, 0, 0, 0, 0, 0, 0,
		0xC0, 0x00, 0, 0, 0, 0, 0, 0,
	}
	f := binaryRoundTrip(t, c, td, data)
	xmlRoundTrip(t, c, td, f)

	doc := etree.NewDocument()
	elem, err := ExportXML(doc.CreateElement("Root"), f)
	require.NoError(t, err)
	require.NotNil(t, elem.SelectElement("real"))
	require.NotNil(t, elem.SelectElement("imag"))
}

func TestBooleanWidthPolicy(t *testing.T) {
	// Plain boolean: 2 bytes before 4.5.0.0, 1 byte after.
	old := newTestCodec(4, 0, 0, 0)
	td := typedesc.New(typedesc.TagBoolean)
	binaryRoundTrip(t, old, td, []byte{0x00, 0x01})

	recent := newTestCodec(5, 0, 0, 0)
	binaryRoundTrip(t, recent, td, []byte{0x01})

	// The 16-bit boolean ignores the version.
	td16 := typedesc.New(typedesc.TagBooleanU16)
	binaryRoundTrip(t, recent, td16, []byte{0x00, 0x01})
}

func TestStringRoundTrip(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.New(typedesc.TagString)
	f := binaryRoundTrip(t, c, td, []byte{0, 0, 0, 5, 'h', 'e', 'l', 'l', 'o'})
	xmlRoundTrip(t, c, td, f)

	// Empty string is the 4-byte zero prefix alone.
	f = binaryRoundTrip(t, c, td, []byte{0, 0, 0, 0})
	xmlRoundTrip(t, c, td, f)
}

func TestStringXMLHexFallback(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.New(typedesc.TagString)
	f := decodeBytes(t, c, td, []byte{0, 0, 0, 3, 0x00, 0x01, 0x02})

	doc := etree.NewDocument()
	elem, err := ExportXML(doc.CreateElement("Root"), f)
	require.NoError(t, err)
	assert.Equal(t, "hex", elem.SelectAttrValue("Format", ""))
	assert.Equal(t, "000102", elem.Text())
	xmlRoundTrip(t, c, td, f)
}

func TestCStringPlaceholder(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.New(typedesc.TagCString)
	f := binaryRoundTrip(t, c, td, []byte{0x12, 0x34, 0x56, 0x78})
	xmlRoundTrip(t, c, td, f)
}

func TestBlockPadTruncateOnEncode(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewBlock(4)
	f := decodeBytes(t, c, td, []byte{1, 2, 3, 4})

	// Shrink the stored value behind the descriptor's back.
	bf := f.(*blockFill)
	bf.value = []byte{9}
	out, err := EncodeBinary(f, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 0, 0, 0}, out)
	assert.Equal(t, []byte{9, 0, 0, 0}, bf.value)
}

func TestPathRoundTrip(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.New(typedesc.TagPath)
	data := []byte{
		'P', 'T', 'H', '0',
		0, 0, 0, 12,
		0, 0,
		0, 2,
		3, 'u', 's', 'r',
		3, 'l', 'i', 'b',
	}
	f := binaryRoundTrip(t, c, td, data)
	xmlRoundTrip(t, c, td, f)
}

func TestPathUnknownMagic(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.New(typedesc.TagPath)
	_, err := c.DecodeBinary([]byte{'X', 'X', 'X', 'X', 0, 0, 0, 0}, td, 0)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestArrayElementCount(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewArray(2, typedesc.New(typedesc.TagNumInt16))
	data := []byte{
		0, 0, 0, 2,
		0, 0, 0, 3,
		0, 1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 6,
	}
	require.Len(t, data, 8+6*2)
	f := binaryRoundTrip(t, c, td, data)
	assert.Len(t, f.(*arrayFill).elems, 6)
	xmlRoundTrip(t, c, td, f)
}

func TestArrayZeroExtents(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewArray(1, typedesc.New(typedesc.TagNumInt32))
	f := binaryRoundTrip(t, c, td, []byte{0, 0, 0, 0})
	assert.Empty(t, f.(*arrayFill).elems)
	xmlRoundTrip(t, c, td, f)
}

func TestArraySizeLimit(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	c.Limits = Limits{ArrayData: 10, TypeList: 10}
	td := typedesc.NewArray(2, typedesc.New(typedesc.TagNumInt16))

	data := []byte{
		0, 0, 0, 4,
		0, 0, 0, 3,
		0, 1, // element bytes which must stay unread
	}
	r := rsrcio.NewReaderBytes(data)
	f, err := c.NewFillForDesc(td, -1, 0)
	require.NoError(t, err)
	err = f.ReadData(r)
	assert.ErrorIs(t, err, ErrSizeLimit)
	assert.Equal(t, 8, r.BytesRead())
}

func TestArrayExtentTopBitMasked(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewArray(1, typedesc.New(typedesc.TagNumUInt8))
	// Top bit of the extent is reserved and must not count.
	data := []byte{0x80, 0, 0, 2, 7, 9}
	f := binaryRoundTrip(t, c, td, data)
	assert.Len(t, f.(*arrayFill).elems, 2)
}

func TestClusterRoundTrip(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewCluster(
		typedesc.New(typedesc.TagNumInt16),
		typedesc.New(typedesc.TagBoolean),
		typedesc.New(typedesc.TagString),
	)
	data := []byte{
		0x01, 0x02,
		0x01,
		0, 0, 0, 2, 'o', 'k',
	}
	f := binaryRoundTrip(t, c, td, data)
	xmlRoundTrip(t, c, td, f)
}

func TestClusterChildErrorContext(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewCluster(typedesc.New(typedesc.TagNumInt32))
	_, err := c.DecodeBinary([]byte{0, 0}, td, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NumInt32")
}

func TestRepeatedBlockRoundTrip(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewRepeatedBlock(3, typedesc.New(typedesc.TagNumUInt16))
	data := []byte{0, 1, 0, 2, 0, 3}
	f := binaryRoundTrip(t, c, td, data)
	xmlRoundTrip(t, c, td, f)
}

func TestRepeatedBlockSizeLimit(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	c.Limits = Limits{ArrayData: 2, TypeList: 2}
	td := typedesc.NewRepeatedBlock(3, typedesc.New(typedesc.TagNumUInt16))
	_, err := c.DecodeBinary([]byte{0, 1, 0, 2, 0, 3}, td, 0)
	assert.ErrorIs(t, err, ErrSizeLimit)
}

func TestTypeDefPassThrough(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewTypeDef(typedesc.New(typedesc.TagNumInt32))
	f := binaryRoundTrip(t, c, td, []byte{0, 0, 0, 7})
	xmlRoundTrip(t, c, td, f)
}

func TestFixedPointOverflowByte(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)

	plain := typedesc.NewFixedPoint(false)
	f := binaryRoundTrip(t, c, plain, []byte{0, 0, 0, 0, 0, 0, 0, 9})
	xmlRoundTrip(t, c, plain, f)

	withOv := typedesc.NewFixedPoint(true)
	f = binaryRoundTrip(t, c, withOv, []byte{0, 0, 0, 0, 0, 0, 0, 9, 0x01})
	doc := etree.NewDocument()
	elem, err := ExportXML(doc.CreateElement("Root"), f)
	require.NoError(t, err)
	assert.Equal(t, "0x01", elem.SelectAttrValue("Flags", ""))
}

func TestComplexFixedPointRoundTrip(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewComplexFixedPoint(true)
	data := []byte{
		0, 0, 0, 0, 0, 0, 0, 1, 0x00,
		0, 0, 0, 0, 0, 0, 0, 2, 0x01,
	}
	f := binaryRoundTrip(t, c, td, data)
	xmlRoundTrip(t, c, td, f)
}

func TestSpecialClusterFiltering(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	clients := make([]*typedesc.TypeDesc, 8)
	for i := range clients {
		clients[i] = typedesc.New(typedesc.TagNumUInt8)
	}
	td := typedesc.NewCluster(clients...)

	f, err := c.NewSpecialClusterForDesc(td, -1, 0x0010)
	require.NoError(t, err)
	require.NoError(t, f.ReadData(rsrcio.NewReaderBytes([]byte{11, 22, 33})))
	sc := f.(*specialClusterFill)
	require.Len(t, sc.elems, 3)
	for i, want := range []int{1, 2, 3} {
		assert.Equal(t, want, sc.elems[i].Index())
	}

	// The skip bit drops the first qualifying position.
	f, err = c.NewSpecialClusterForDesc(td, -1, 0x0010|0x0200)
	require.NoError(t, err)
	require.NoError(t, f.ReadData(rsrcio.NewReaderBytes([]byte{22, 33})))
	sc = f.(*specialClusterFill)
	require.Len(t, sc.elems, 2)
	assert.Equal(t, 2, sc.elems[0].Index())
	assert.Equal(t, 3, sc.elems[1].Index())
}

func TestSpecialClusterXMLRoundTrip(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	clients := make([]*typedesc.TypeDesc, 8)
	for i := range clients {
		clients[i] = typedesc.New(typedesc.TagNumUInt8)
	}
	td := typedesc.NewCluster(clients...)

	f, err := c.NewSpecialClusterForDesc(td, -1, 0x0010)
	require.NoError(t, err)
	require.NoError(t, f.ReadData(rsrcio.NewReaderBytes([]byte{11, 22, 33})))

	doc := etree.NewDocument()
	elem, err := ExportXML(doc.CreateElement("Root"), f)
	require.NoError(t, err)
	assert.Equal(t, "SpecialDSTMCluster", elem.Tag)

	back, err := c.NewFillForTagName(elem.Tag)
	require.NoError(t, err)
	require.NoError(t, back.ReadXML(elem))
	require.NoError(t, back.Bind(td, -1, 0x0010))
	require.NoError(t, back.Finalize())
	out, err := EncodeBinary(back, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{11, 22, 33}, out)
}

func TestMeasureDataAnalogWaveform(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewMeasureData(typedesc.FlavorFloat64Waveform)
	data := []byte{}
	data = append(data, make([]byte, 16)...)                      // t0 block
	data = append(data, 0x3F, 0xF0, 0, 0, 0, 0, 0, 0)             // dt
	data = append(data, 0, 0, 0, 2)                               // Y extent
	data = append(data, 0x40, 0x00, 0, 0, 0, 0, 0, 0)             // Y[0]
	data = append(data, 0x40, 0x08, 0, 0, 0, 0, 0, 0)             // Y[1]
	data = append(data, 0, 0, 0, 0x18, 0, 0, 0, 0, 0, 0, 0, 0)    // variant header
	f := binaryRoundTrip(t, c, td, data)
	assert.Equal(t, "Float64Waveform", f.TagName())
	xmlRoundTrip(t, c, td, f)
}

func TestMeasureDataTimestamp(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewMeasureData(typedesc.FlavorTimeStamp)
	data := []byte{0, 0, 0, 0, 0x5C, 0x00, 0x01, 0x02, 0, 0, 0, 0, 0, 0, 0, 0}
	f := binaryRoundTrip(t, c, td, data)
	xmlRoundTrip(t, c, td, f)
}

func TestMeasureDataVersionGate(t *testing.T) {
	c := newTestCodec(7, 0, 0, 1)
	td := typedesc.NewMeasureData(typedesc.FlavorFloat64Waveform)
	_, err := c.DecodeBinary(make([]byte, 64), td, 0)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestMeasureDataUnknownFlavor(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewMeasureData(typedesc.Flavor(0xEE))
	_, err := c.DecodeBinary(make([]byte, 8), td, 0)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestSimpleRefnumRoundTrip(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewRefnum(typedesc.RefQueue)
	f := binaryRoundTrip(t, c, td, []byte{0, 0, 0, 42})
	assert.Equal(t, "Queue", f.TagName())
	xmlRoundTrip(t, c, td, f)
}

func TestIORefnumStringForm(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewRefnum(typedesc.RefVisaRef)
	f := binaryRoundTrip(t, c, td, []byte{0, 0, 0, 4, 'C', 'O', 'M', '1'})
	xmlRoundTrip(t, c, td, f)

	doc := etree.NewDocument()
	elem, err := ExportXML(doc.CreateElement("Root"), f)
	require.NoError(t, err)
	assert.Equal(t, "String", elem.SelectAttrValue("StoredAs", ""))
	assert.Equal(t, "COM1", elem.Text())
}

func TestIORefnumIntFormBeforeV6(t *testing.T) {
	c := newTestCodec(5, 0, 0, 0)
	td := typedesc.NewRefnum(typedesc.RefVisaRef)
	f := binaryRoundTrip(t, c, td, []byte{0, 0, 0, 7})

	doc := etree.NewDocument()
	elem, err := ExportXML(doc.CreateElement("Root"), f)
	require.NoError(t, err)
	assert.Equal(t, "Int", elem.SelectAttrValue("StoredAs", ""))
}

func TestUDTagRefnumPadWindow(t *testing.T) {
	td := typedesc.NewRefnum(typedesc.RefUsrDefndTag)
	payload := []byte{0, 0, 0, 3, 'a', 'b', 'c'}

	// Inside the window one pad byte follows the string.
	inWindow := newTestCodec(12, 0, 0, 3)
	binaryRoundTrip(t, inWindow, td, append(append([]byte{}, payload...), 0x00))

	// Outside it there is no pad byte.
	outside := newTestCodec(12, 0, 0, 6)
	binaryRoundTrip(t, outside, td, payload)
}

func TestUDTagRefnumFilteredExtras(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewRefnum(typedesc.RefUsrDefTagFlt)
	data := []byte{
		0, 0, 0, 2, 't', 'g',
		0, 0, 0, 1, 'x',
		0, 0, 0, 1, 'y',
		0, 0, 0, 5,
		0, 0, 0, 1, 'z',
	}
	f := binaryRoundTrip(t, c, td, data)
	xmlRoundTrip(t, c, td, f)

	doc := etree.NewDocument()
	elem, err := ExportXML(doc.CreateElement("Root"), f)
	require.NoError(t, err)
	assert.Equal(t, "x", elem.SelectAttrValue("UsrDef1", ""))
	assert.Equal(t, "5", elem.SelectAttrValue("UsrDef3", ""))
}

func TestUDClassInstRefnum(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewRefnum(typedesc.RefUDClassInst)
	data := []byte{
		0, 0, 0, 2, // level count
		5, 'm', 'y', 'l', 'i', 'b', // PStr library name
		0, 0, // pad to 4-byte unit
		0, 0, 0, 3, '1', '.', '0',
		0, 0, 0, 3, '2', '.', '0',
	}
	f := binaryRoundTrip(t, c, td, data)
	xmlRoundTrip(t, c, td, f)
}

func TestUDClassInstLevelLimit(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	c.Limits = Limits{ArrayData: 100, TypeList: 1}
	td := typedesc.NewRefnum(typedesc.RefUDClassInst)
	data := []byte{
		0, 0, 0, 9,
		1, 'l', 0, 0,
	}
	_, err := c.DecodeBinary(data, td, 0)
	assert.ErrorIs(t, err, ErrSizeLimit)
}

func TestPointerVersionGate(t *testing.T) {
	td := typedesc.New(typedesc.TagPtr)

	old := newTestCodec(8, 5, 0, 0)
	f := binaryRoundTrip(t, old, td, []byte{0, 0, 0, 9})
	doc := etree.NewDocument()
	elem, err := ExportXML(doc.CreateElement("Root"), f)
	require.NoError(t, err)
	assert.Equal(t, "9", elem.Text())

	recent := newTestCodec(8, 6, 0, 1)
	f = binaryRoundTrip(t, recent, td, []byte{})
	elem, err = ExportXML(doc.CreateElement("Root"), f)
	require.NoError(t, err)
	assert.Equal(t, "None", elem.Text())
}

func TestExtDataUnsupported(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.New(typedesc.TagExtData)
	_, err := c.DecodeBinary([]byte{1, 2, 3}, td, 0)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestUnexpectedTagTolerated(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.New(typedesc.TagFunction)
	f := binaryRoundTrip(t, c, td, []byte{})
	n, ok := f.ExpectedSize()
	assert.True(t, ok)
	assert.Zero(t, n)
}

func TestBindTypeMismatch(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	f, err := c.NewFill(typedesc.TagNumInt32, 0)
	require.NoError(t, err)
	err = f.Bind(typedesc.New(typedesc.TagString), -1, 0)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestFactoryUnknownTag(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	_, err := c.NewFill(typedesc.TypeTag(0xEF), 0)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = c.NewFillForTagName("NoSuchType")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestFillForTagNameDispatch(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)

	f, err := c.NewFillForTagName("Float64Waveform")
	require.NoError(t, err)
	assert.Equal(t, typedesc.TagMeasureData, f.Tag())

	f, err = c.NewFillForTagName("Queue")
	require.NoError(t, err)
	assert.Equal(t, typedesc.TagRefnum, f.Tag())

	f, err = c.NewFillForTagName("SpecialDSTMCluster")
	require.NoError(t, err)
	assert.Equal(t, "SpecialDSTMCluster", f.TagName())
}

func TestVariantRoundTrip(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.New(typedesc.TagLVVariant)
	data := []byte{0, 0, 0, 0x18, 0, 0, 0, 0, 0, 0, 0, 0}
	f := binaryRoundTrip(t, c, td, data)
	xmlRoundTrip(t, c, td, f)
}

func TestVariantPopulatedTableUnsupported(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.New(typedesc.TagLVVariant)
	data := []byte{0, 0, 0, 0x18, 0, 0, 0, 1, 0, 0, 0, 0}
	_, err := c.DecodeBinary(data, td, 0)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestAvoidRecomputePassThrough(t *testing.T) {
	c := newTestCodec(14, 0, 0, 3)
	td := typedesc.NewCluster(typedesc.New(typedesc.TagNumInt16))
	f := decodeBytes(t, c, td, []byte{0, 5})

	a, err := EncodeBinary(f, false)
	require.NoError(t, err)
	b, err := EncodeBinary(f, true)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
