// Package lvclasses implements the class-shaped values the data-fill
// codec delegates to: the on-disk path representations and the variant
// containers. Each value knows its own binary layout and XML form; the
// codec only selects which class to instantiate.
package lvclasses

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/beevik/etree"

	"github.com/lvkit/lvrsrc/internal/rsrcio"
)

var (
	// ErrUnknownFormat reports a class identifier outside the known
	// sub-formats.
	ErrUnknownFormat = errors.New("lvclasses: unrecognized format identifier")
	// ErrUnsupportedData reports class content this toolkit does not
	// cover (e.g. a variant with a populated type table).
	ErrUnsupportedData = errors.New("lvclasses: unsupported class content")
	// ErrMalformed reports class content whose declared and actual
	// sizes disagree.
	ErrMalformed = errors.New("lvclasses: malformed class data")
)

// PathValue is one of the two on-disk path representations. The
// 4-byte format identifier is part of the encoded value; ReadData
// consumes it.
type PathValue interface {
	Ident() string
	ReadData(r *rsrcio.Reader) error
	WriteData(w *rsrcio.Writer)
	ExpectedSize() int
	ReadXML(elem *etree.Element) error
	WriteXML(elem *etree.Element)
}

// NewPathValue returns the path representation for the given format
// identifier: PTH0 is the flat path, PTH1 and PTH2 the extended path.
func NewPathValue(ident string) (PathValue, error) {
	switch ident {
	case "PTH0":
		return &FlatPath{}, nil
	case "PTH1", "PTH2":
		return &ExtendedPath{ident: ident}, nil
	}
	return nil, fmt.Errorf("%w: path class %q", ErrUnknownFormat, ident)
}

// Path kind values shared by both representations.
const (
	PathAbsolute = 0
	PathRelative = 1
	PathNotAPath = 2
	PathUNC      = 3
)

// FlatPath is the PTH0 representation: identifier, a 4-byte size of
// the remaining payload, a 2-byte path kind, a 2-byte component count
// and Pascal-style component strings.
type FlatPath struct {
	Kind       uint16
	Components [][]byte
}

func (p *FlatPath) Ident() string { return "PTH0" }

func (p *FlatPath) ReadData(r *rsrcio.Reader) error {
	magic, err := r.ReadBlock(4)
	if err != nil {
		return err
	}
	if string(magic) != p.Ident() {
		return fmt.Errorf("%w: path class %q", ErrUnknownFormat, string(magic))
	}
	size, err := r.ReadU32()
	if err != nil {
		return err
	}
	start := r.BytesRead()
	kind, err := r.ReadU16()
	if err != nil {
		return err
	}
	count, err := r.ReadU16()
	if err != nil {
		return err
	}
	p.Kind = kind
	p.Components = make([][]byte, 0, count)
	for i := 0; i < int(count); i++ {
		n, err := r.ReadU8()
		if err != nil {
			return err
		}
		comp, err := r.ReadBlock(int(n))
		if err != nil {
			return err
		}
		p.Components = append(p.Components, comp)
	}
	if got := r.BytesRead() - start; got != int(size) {
		return fmt.Errorf("%w: flat path declared %d payload bytes, consumed %d", ErrMalformed, size, got)
	}
	return nil
}

func (p *FlatPath) payloadSize() int {
	n := 4
	for _, c := range p.Components {
		n += 1 + len(c)
	}
	return n
}

func (p *FlatPath) WriteData(w *rsrcio.Writer) {
	w.WriteBlock([]byte(p.Ident()))
	w.WriteU32(uint32(p.payloadSize()))
	w.WriteU16(p.Kind)
	w.WriteU16(uint16(len(p.Components)))
	for _, c := range p.Components {
		w.WriteU8(uint8(len(c)))
		w.WriteBlock(c)
	}
}

func (p *FlatPath) ExpectedSize() int {
	return 8 + p.payloadSize()
}

func (p *FlatPath) ReadXML(elem *etree.Element) error {
	kind, comps, err := pathFromXML(elem)
	if err != nil {
		return err
	}
	p.Kind = kind
	p.Components = comps
	return nil
}

func (p *FlatPath) WriteXML(elem *etree.Element) {
	pathToXML(elem, p.Ident(), p.Kind, p.Components)
}

// ExtendedPath is the PTH1/PTH2 representation. It differs from the
// flat path by a per-component type byte.
type ExtendedPath struct {
	ident      string
	Kind       uint16
	CompTypes  []uint8
	Components [][]byte
}

func (p *ExtendedPath) Ident() string {
	if p.ident == "" {
		return "PTH1"
	}
	return p.ident
}

func (p *ExtendedPath) ReadData(r *rsrcio.Reader) error {
	magic, err := r.ReadBlock(4)
	if err != nil {
		return err
	}
	switch string(magic) {
	case "PTH1", "PTH2":
		p.ident = string(magic)
	default:
		return fmt.Errorf("%w: path class %q", ErrUnknownFormat, string(magic))
	}
	size, err := r.ReadU32()
	if err != nil {
		return err
	}
	start := r.BytesRead()
	kind, err := r.ReadU16()
	if err != nil {
		return err
	}
	count, err := r.ReadU16()
	if err != nil {
		return err
	}
	p.Kind = kind
	p.CompTypes = make([]uint8, 0, count)
	p.Components = make([][]byte, 0, count)
	for i := 0; i < int(count); i++ {
		ct, err := r.ReadU8()
		if err != nil {
			return err
		}
		n, err := r.ReadU8()
		if err != nil {
			return err
		}
		comp, err := r.ReadBlock(int(n))
		if err != nil {
			return err
		}
		p.CompTypes = append(p.CompTypes, ct)
		p.Components = append(p.Components, comp)
	}
	if got := r.BytesRead() - start; got != int(size) {
		return fmt.Errorf("%w: extended path declared %d payload bytes, consumed %d", ErrMalformed, size, got)
	}
	return nil
}

func (p *ExtendedPath) payloadSize() int {
	n := 4
	for _, c := range p.Components {
		n += 2 + len(c)
	}
	return n
}

func (p *ExtendedPath) WriteData(w *rsrcio.Writer) {
	w.WriteBlock([]byte(p.Ident()))
	w.WriteU32(uint32(p.payloadSize()))
	w.WriteU16(p.Kind)
	w.WriteU16(uint16(len(p.Components)))
	for i, c := range p.Components {
		w.WriteU8(p.CompTypes[i])
		w.WriteU8(uint8(len(c)))
		w.WriteBlock(c)
	}
}

func (p *ExtendedPath) ExpectedSize() int {
	return 8 + p.payloadSize()
}

func (p *ExtendedPath) ReadXML(elem *etree.Element) error {
	kind, comps, err := pathFromXML(elem)
	if err != nil {
		return err
	}
	p.Kind = kind
	p.Components = comps
	p.CompTypes = make([]uint8, len(comps))
	for i, child := range elem.SelectElements("String") {
		if v := child.SelectAttrValue("CompType", ""); v != "" {
			ct, err := strconv.ParseUint(v, 0, 8)
			if err != nil {
				return fmt.Errorf("%w: CompType %q", ErrMalformed, v)
			}
			p.CompTypes[i] = uint8(ct)
		}
	}
	return nil
}

func (p *ExtendedPath) WriteXML(elem *etree.Element) {
	pathToXML(elem, p.Ident(), p.Kind, p.Components)
	for i, child := range elem.SelectElements("String") {
		if p.CompTypes[i] != 0 {
			child.CreateAttr("CompType", fmt.Sprintf("%d", p.CompTypes[i]))
		}
	}
}

func pathToXML(elem *etree.Element, ident string, kind uint16, comps [][]byte) {
	elem.CreateAttr("Ident", ident)
	elem.CreateAttr("Type", strconv.Itoa(int(kind)))
	for _, c := range comps {
		child := elem.CreateElement("String")
		storeBytes(child, c)
	}
}

func pathFromXML(elem *etree.Element) (uint16, [][]byte, error) {
	kind, err := strconv.ParseUint(elem.SelectAttrValue("Type", "0"), 0, 16)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: path Type attribute", ErrMalformed)
	}
	var comps [][]byte
	for _, child := range elem.SelectElements("String") {
		b, err := loadBytes(child)
		if err != nil {
			return 0, nil, err
		}
		comps = append(comps, b)
	}
	return uint16(kind), comps, nil
}

// storeBytes stores arbitrary bytes as element text, falling back to
// hex with a Format marker when the content is not XML-safe UTF-8.
func storeBytes(elem *etree.Element, b []byte) {
	if textSafe(b) {
		elem.SetText(string(b))
		return
	}
	elem.SetText(hex.EncodeToString(b))
	elem.CreateAttr("Format", "hex")
}

func loadBytes(elem *etree.Element) ([]byte, error) {
	if elem.SelectAttrValue("Format", "") == "hex" {
		b, err := hex.DecodeString(elem.Text())
		if err != nil {
			return nil, fmt.Errorf("%w: hex payload: %v", ErrMalformed, err)
		}
		return b, nil
	}
	return []byte(elem.Text()), nil
}

func textSafe(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, c := range b {
		if c < 0x20 && c != '\t' && c != '\n' && c != '\r' {
			return false
		}
	}
	return true
}
