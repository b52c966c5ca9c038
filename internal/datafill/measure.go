package datafill

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/lvkit/lvrsrc/internal/rsrcio"
	"github.com/lvkit/lvrsrc/internal/typedesc"
)

// analogElemTags maps analog waveform flavors to the numeric type of
// one sample.
var analogElemTags = map[typedesc.Flavor]typedesc.TypeTag{
	typedesc.FlavorInt8Waveform:      typedesc.TagNumInt8,
	typedesc.FlavorInt16Waveform:     typedesc.TagNumInt16,
	typedesc.FlavorInt32Waveform:     typedesc.TagNumInt32,
	typedesc.FlavorInt64Waveform:     typedesc.TagNumInt64,
	typedesc.FlavorUInt8Waveform:     typedesc.TagNumUInt8,
	typedesc.FlavorUInt16Waveform:    typedesc.TagNumUInt16,
	typedesc.FlavorUInt32Waveform:    typedesc.TagNumUInt32,
	typedesc.FlavorUInt64Waveform:    typedesc.TagNumUInt64,
	typedesc.FlavorFloat32Waveform:   typedesc.TagNumFloat32,
	typedesc.FlavorFloat64Waveform:   typedesc.TagNumFloat64,
	typedesc.FlavorFloatExtWaveform:  typedesc.TagNumFloatExt,
	typedesc.FlavorComplex64Waveform: typedesc.TagNumComplex64,
	typedesc.FlavorCmplx128Waveform:  typedesc.TagNumComplex128,
	typedesc.FlavorCmplxExtWaveform:  typedesc.TagNumComplexExt,
}

// measureFill covers measurement data. The wire layout is not given
// by the descriptor's clients; it is a synthetic container derived
// from the flavor, built on demand and decoded like any other value.
type measureFill struct {
	baseFill
	flavor    typedesc.Flavor
	contained *typedesc.TypeDesc
	inner     Fill
}

func (f *measureFill) TagName() string { return f.flavor.Name() }

func (f *measureFill) String() string {
	return fmt.Sprintf("MeasureData %s(index=%d)", f.flavor.Name(), f.index)
}

func (f *measureFill) synthesize() error {
	if f.codec.Version.Below(7, 0, 0, 2) {
		return fmt.Errorf("%w: measurement data below format version 7.0.0.2", ErrUnsupported)
	}
	switch f.flavor {
	case typedesc.FlavorOldFloat64Waveform:
		f.contained = typedesc.OldFloat64WaveformCluster()
	case typedesc.FlavorTimeStamp:
		f.contained = typedesc.TimestampBlock()
	case typedesc.FlavorDigitaldata:
		f.contained = typedesc.DigitalTableCluster()
	case typedesc.FlavorDigitalWaveform:
		f.contained = typedesc.DigitalWaveformCluster()
	case typedesc.FlavorDynamicdata:
		f.contained = typedesc.DynamicTableCluster()
	default:
		elemTag, ok := analogElemTags[f.flavor]
		if !ok {
			return fmt.Errorf("%w: measurement flavor %s", ErrUnsupported, f.flavor.Name())
		}
		f.contained = typedesc.AnalogWaveformCluster(typedesc.New(elemTag))
	}
	return nil
}

// Bind does not touch the inner value: the contained layout belongs
// to the flavor, not to the bound descriptor's clients.
func (f *measureFill) Bind(td *typedesc.TypeDesc, index int, tmFlags uint16) error {
	return f.baseFill.Bind(td, index, tmFlags)
}

func (f *measureFill) ReadData(r *rsrcio.Reader) error {
	if err := f.synthesize(); err != nil {
		return err
	}
	e, err := f.codec.NewFillForDesc(f.contained, -1, f.tmFlags)
	if err != nil {
		return fmt.Errorf("measurement flavor %s: %w", f.flavor.Name(), err)
	}
	if err := e.ReadData(r); err != nil {
		return fmt.Errorf("measurement flavor %s: %w", f.flavor.Name(), err)
	}
	f.inner = e
	return nil
}

func (f *measureFill) WriteData(w *rsrcio.Writer, avoidRecompute bool) error {
	if f.inner == nil {
		return fmt.Errorf("%w: measurement value not initialized", ErrMalformed)
	}
	if err := f.inner.WriteData(w, avoidRecompute); err != nil {
		return fmt.Errorf("measurement flavor %s: %w", f.flavor.Name(), err)
	}
	return nil
}

func (f *measureFill) ExpectedSize() (int, bool) {
	if f.inner == nil {
		return 0, false
	}
	return f.inner.ExpectedSize()
}

// WriteXML flattens the synthetic container: the measurement element
// holds the container's children directly.
func (f *measureFill) WriteXML(elem *etree.Element) error {
	if f.inner == nil {
		return fmt.Errorf("%w: measurement value not initialized", ErrMalformed)
	}
	if err := f.inner.WriteXML(elem); err != nil {
		return fmt.Errorf("measurement flavor %s: %w", f.flavor.Name(), err)
	}
	return nil
}

func (f *measureFill) ReadXML(elem *etree.Element) error {
	if err := f.synthesize(); err != nil {
		return err
	}
	e, err := f.codec.NewFill(f.contained.Tag(), 0)
	if err != nil {
		return fmt.Errorf("measurement flavor %s: %w", f.flavor.Name(), err)
	}
	if err := e.ReadXML(elem); err != nil {
		return fmt.Errorf("measurement flavor %s: %w", f.flavor.Name(), err)
	}
	f.inner = e
	return nil
}

// Finalize late-binds the inner value to the synthesized layout,
// which an XML load could not do while the version was unknown.
func (f *measureFill) Finalize() error {
	if f.inner == nil {
		return nil
	}
	if err := f.synthesize(); err != nil {
		return err
	}
	if err := f.inner.Bind(f.contained, -1, f.tmFlags); err != nil {
		return fmt.Errorf("measurement flavor %s: %w", f.flavor.Name(), err)
	}
	if err := f.inner.Finalize(); err != nil {
		return fmt.Errorf("measurement flavor %s: %w", f.flavor.Name(), err)
	}
	return nil
}
