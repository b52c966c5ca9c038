package datafill

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/lvkit/lvrsrc/internal/rsrcio"
)

// ptrFill covers the pointer type. Files from before format version
// 8.6.0.1 store a 4-byte value; newer files store nothing, and the
// fill keeps track of which case it saw so the XML form round-trips.
type ptrFill struct {
	baseFill
	value   uint32
	present bool
}

func (f *ptrFill) stored() bool {
	return f.codec.Version.Below(8, 6, 0, 1)
}

func (f *ptrFill) ReadData(r *rsrcio.Reader) error {
	if !f.stored() {
		f.present = false
		return nil
	}
	v, err := r.ReadU32()
	if err != nil {
		return err
	}
	f.value = v
	f.present = true
	return nil
}

func (f *ptrFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	if f.stored() {
		w.WriteU32(f.value)
	}
	return w.Err()
}

func (f *ptrFill) ExpectedSize() (int, bool) {
	if f.stored() {
		return 4, true
	}
	return 0, true
}

func (f *ptrFill) WriteXML(elem *etree.Element) error {
	if f.present {
		elem.SetText(strconv.FormatUint(uint64(f.value), 10))
	} else {
		elem.SetText("None")
	}
	return nil
}

func (f *ptrFill) ReadXML(elem *etree.Element) error {
	text := strings.TrimSpace(elem.Text())
	if text == "None" || text == "" {
		f.present = false
		f.value = 0
		return nil
	}
	v, err := parseUintText(text, 32)
	if err != nil {
		return err
	}
	f.value = uint32(v)
	f.present = true
	return nil
}

// extDataFill is the external data type. No sample files with a
// non-trivial payload have surfaced, so its layout is unknown and
// decoding fails rather than guessing.
type extDataFill struct {
	baseFill
}

func (f *extDataFill) ReadData(r *rsrcio.Reader) error {
	return fmt.Errorf("%w: external data layout unknown", ErrUnsupported)
}

func (f *extDataFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error { return nil }

func (f *extDataFill) ExpectedSize() (int, bool) { return 0, false }

func (f *extDataFill) ReadXML(elem *etree.Element) error {
	return fmt.Errorf("%w: external data layout unknown", ErrUnsupported)
}

func (f *extDataFill) WriteXML(elem *etree.Element) error { return nil }

// unexpectedFill stands in for type tags which should never carry
// default data, such as sub-strings and function types. Seeing one is
// tolerated with a warning and an empty value so a damaged file can
// still be inspected.
type unexpectedFill struct {
	baseFill
}

func (f *unexpectedFill) ReadData(r *rsrcio.Reader) error {
	f.codec.logger().Warn("data fill requested for a type which never carries data",
		"type", f.TagName())
	return nil
}

func (f *unexpectedFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error { return nil }

func (f *unexpectedFill) ExpectedSize() (int, bool) { return 0, true }

func (f *unexpectedFill) ReadXML(elem *etree.Element) error {
	f.codec.logger().Warn("data fill element for a type which never carries data",
		"type", f.TagName())
	return nil
}

func (f *unexpectedFill) WriteXML(elem *etree.Element) error { return nil }
