package typedesc

// Synthesized descriptors for MeasureData payloads. These types have
// no static client in the descriptor graph; the waveform data fill
// builds one of the clusters below at decode time, keyed on its
// flavor, and parses exactly one value against it.

// OldFloat64WaveformCluster is the legacy fixed float64 waveform
// layout used before the flavored analog waveforms existed: trigger
// time, sample interval, one-dimensional float64 sample array.
func OldFloat64WaveformCluster() *TypeDesc {
	return NewCluster(
		New(TagNumFloat64),
		New(TagNumFloat64),
		NewArray(1, New(TagNumFloat64)),
	)
}

// AnalogWaveformCluster is the generic analog waveform layout: a
// 16-byte timestamp block (t0), a float64 sample interval (dt), a
// one-dimensional sample array of the element type, and a variant
// holding waveform attributes.
func AnalogWaveformCluster(elem *TypeDesc) *TypeDesc {
	return NewCluster(
		NewBlock(16),
		New(TagNumFloat64),
		NewArray(1, elem),
		New(TagLVVariant),
	)
}

// TimestampBlock is the fixed 16-byte timestamp payload.
func TimestampBlock() *TypeDesc {
	return NewBlock(16)
}

// DigitalTableCluster is the digital data table: per-column transition
// counts and a two-dimensional sample byte table.
func DigitalTableCluster() *TypeDesc {
	return NewCluster(
		NewArray(1, New(TagNumUInt32)),
		NewArray(2, New(TagNumUInt8)),
	)
}

// DigitalWaveformCluster wraps a digital table with timing and
// attributes, mirroring the analog layout.
func DigitalWaveformCluster() *TypeDesc {
	return NewCluster(
		NewBlock(16),
		New(TagNumFloat64),
		DigitalTableCluster(),
		New(TagLVVariant),
	)
}

// DynamicTableCluster is the dynamic-data table: a one-dimensional
// array of float64 analog waveforms.
func DynamicTableCluster() *TypeDesc {
	return NewCluster(
		NewArray(1, AnalogWaveformCluster(New(TagNumFloat64))),
	)
}
