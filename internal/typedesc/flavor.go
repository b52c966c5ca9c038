package typedesc

// Flavor is the subtype of a MeasureData (waveform) type descriptor.
type Flavor uint16

const (
	FlavorOldFloat64Waveform Flavor = 0x01
	FlavorInt16Waveform      Flavor = 0x02
	FlavorFloat64Waveform    Flavor = 0x03
	FlavorFloat32Waveform    Flavor = 0x05
	FlavorTimeStamp          Flavor = 0x06
	FlavorDigitaldata        Flavor = 0x07
	FlavorDigitalWaveform    Flavor = 0x08
	FlavorDynamicdata        Flavor = 0x09
	FlavorFloatExtWaveform   Flavor = 0x0A
	FlavorUInt8Waveform      Flavor = 0x0B
	FlavorUInt16Waveform     Flavor = 0x0C
	FlavorUInt32Waveform     Flavor = 0x0D
	FlavorInt8Waveform       Flavor = 0x0E
	FlavorInt32Waveform      Flavor = 0x0F
	FlavorComplex64Waveform  Flavor = 0x10
	FlavorCmplx128Waveform   Flavor = 0x11
	FlavorCmplxExtWaveform   Flavor = 0x12
	FlavorInt64Waveform      Flavor = 0x13
	FlavorUInt64Waveform     Flavor = 0x14
)

var flavorNames = map[Flavor]string{
	FlavorOldFloat64Waveform: "OldFloat64Waveform",
	FlavorInt16Waveform:      "Int16Waveform",
	FlavorFloat64Waveform:    "Float64Waveform",
	FlavorFloat32Waveform:    "Float32Waveform",
	FlavorTimeStamp:          "TimeStamp",
	FlavorDigitaldata:        "Digitaldata",
	FlavorDigitalWaveform:    "DigitalWaveform",
	FlavorDynamicdata:        "Dynamicdata",
	FlavorFloatExtWaveform:   "FloatExtWaveform",
	FlavorUInt8Waveform:      "UInt8Waveform",
	FlavorUInt16Waveform:     "UInt16Waveform",
	FlavorUInt32Waveform:     "UInt32Waveform",
	FlavorInt8Waveform:       "Int8Waveform",
	FlavorInt32Waveform:      "Int32Waveform",
	FlavorComplex64Waveform:  "Complex64Waveform",
	FlavorCmplx128Waveform:   "Complex128Waveform",
	FlavorCmplxExtWaveform:   "ComplexExtWaveform",
	FlavorInt64Waveform:      "Int64Waveform",
	FlavorUInt64Waveform:     "UInt64Waveform",
}

var flavorByName = invert(flavorNames)

func (f Flavor) Name() string {
	if n, ok := flavorNames[f]; ok {
		return n
	}
	return "Flavor0x" + hexByte(uint8(f))
}

func (f Flavor) String() string { return f.Name() }

// FlavorByName performs the inverse lookup from a text-tree tag name.
func FlavorByName(name string) (Flavor, bool) {
	f, ok := flavorByName[name]
	return f, ok
}
