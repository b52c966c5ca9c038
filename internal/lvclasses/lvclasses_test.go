package lvclasses

import (
	"bytes"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvkit/lvrsrc/internal/rsrcio"
)

func encodePath(t *testing.T, p PathValue) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := rsrcio.NewWriter(&buf)
	p.WriteData(w)
	require.NoError(t, w.Err())
	return buf.Bytes()
}

func TestFlatPathBinaryRoundTrip(t *testing.T) {
	p := &FlatPath{
		Kind:       PathAbsolute,
		Components: [][]byte{[]byte("C"), []byte("proj"), []byte("main.vi")},
	}
	raw := encodePath(t, p)
	assert.Equal(t, []byte("PTH0"), raw[:4])
	assert.Equal(t, p.ExpectedSize(), len(raw))

	got := &FlatPath{}
	r := rsrcio.NewReaderBytes(raw)
	require.NoError(t, got.ReadData(r))
	assert.Equal(t, p, got)
	assert.Equal(t, len(raw), r.BytesRead())
}

func TestExtendedPathBinaryRoundTrip(t *testing.T) {
	p := &ExtendedPath{
		ident:      "PTH2",
		Kind:       PathRelative,
		CompTypes:  []uint8{0, 1},
		Components: [][]byte{[]byte(".."), []byte("sub.vi")},
	}
	raw := encodePath(t, p)
	assert.Equal(t, []byte("PTH2"), raw[:4])
	assert.Equal(t, p.ExpectedSize(), len(raw))

	got := &ExtendedPath{}
	require.NoError(t, got.ReadData(rsrcio.NewReaderBytes(raw)))
	assert.Equal(t, p, got)
}

func TestPathDeclaredSizeMismatch(t *testing.T) {
	p := &FlatPath{Components: [][]byte{[]byte("x")}}
	raw := encodePath(t, p)
	raw[7]++ // corrupt the declared payload size
	err := (&FlatPath{}).ReadData(rsrcio.NewReaderBytes(raw))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestNewPathValue(t *testing.T) {
	for _, ident := range []string{"PTH0", "PTH1", "PTH2"} {
		p, err := NewPathValue(ident)
		require.NoError(t, err)
		assert.Equal(t, ident, p.Ident())
	}
	_, err := NewPathValue("PTH9")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestPathXMLRoundTrip(t *testing.T) {
	p := &FlatPath{
		Kind:       PathUNC,
		Components: [][]byte{[]byte("srv"), {0x00, 0xFF}},
	}
	elem := etree.NewElement("Path")
	p.WriteXML(elem)
	assert.Equal(t, "PTH0", elem.SelectAttrValue("Ident", ""))

	got := &FlatPath{}
	require.NoError(t, got.ReadXML(elem))
	assert.Equal(t, p, got)
	// The non-text component must have gone through the hex fallback.
	children := elem.SelectElements("String")
	require.Len(t, children, 2)
	assert.Equal(t, "hex", children[1].SelectAttrValue("Format", ""))
}

func TestLVVariantRoundTrip(t *testing.T) {
	v := &LVVariant{Version: 0x12008004}
	var buf bytes.Buffer
	w := rsrcio.NewWriter(&buf)
	v.WriteData(w)
	require.NoError(t, w.Err())
	assert.Equal(t, v.ExpectedSize(), buf.Len())

	got := &LVVariant{}
	require.NoError(t, got.ReadData(rsrcio.NewReaderBytes(buf.Bytes())))
	assert.Equal(t, v, got)

	elem := etree.NewElement("LVVariant")
	v.WriteXML(elem)
	fromXML := &LVVariant{}
	require.NoError(t, fromXML.ReadXML(elem))
	assert.Equal(t, v, fromXML)
}

func TestLVVariantPopulatedTypeTable(t *testing.T) {
	raw := []byte{0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 0}
	err := (&LVVariant{}).ReadData(rsrcio.NewReaderBytes(raw))
	assert.ErrorIs(t, err, ErrUnsupportedData)
}

func TestOleVariant(t *testing.T) {
	v := &OleVariant{}
	var buf bytes.Buffer
	w := rsrcio.NewWriter(&buf)
	v.WriteData(w)
	require.NoError(t, w.Err())
	assert.Equal(t, []byte{0, 0}, buf.Bytes())

	err := (&OleVariant{}).ReadData(rsrcio.NewReaderBytes([]byte{0x00, 0x08}))
	assert.ErrorIs(t, err, ErrUnsupportedData)
}
