// Package typedesc holds the type-descriptor graph the data-fill codec
// walks. A descriptor tree is built once (by the consolidated-types
// reader, or synthesized for waveform payloads) and is read-only while
// any data fill is bound to it. Data-fill nodes borrow descriptors;
// they never own or mutate them.
package typedesc

// TypeDesc is a single node of the descriptor graph.
type TypeDesc struct {
	tag      TypeTag
	refKind  RefnumKind
	flavor   Flavor
	clients  []*TypeDesc
	dims     int
	repeats  int
	blkSize  int
	allocOv  bool
	comments map[int]string
}

// New returns a leaf descriptor with the given type tag.
func New(tag TypeTag) *TypeDesc {
	return &TypeDesc{tag: tag}
}

// NewRefnum returns a Refnum descriptor of the given kind.
func NewRefnum(kind RefnumKind) *TypeDesc {
	return &TypeDesc{tag: TagRefnum, refKind: kind}
}

// NewMeasureData returns a MeasureData descriptor of the given flavor.
func NewMeasureData(flavor Flavor) *TypeDesc {
	return &TypeDesc{tag: TagMeasureData, flavor: flavor}
}

// NewArray returns an Array descriptor with the given dimension count
// and element type.
func NewArray(dims int, elem *TypeDesc) *TypeDesc {
	return &TypeDesc{tag: TagArray, dims: dims, clients: []*TypeDesc{elem}}
}

// NewCluster returns a Cluster descriptor over the given clients, in
// declared order.
func NewCluster(clients ...*TypeDesc) *TypeDesc {
	return &TypeDesc{tag: TagCluster, clients: clients}
}

// NewBlock returns a Block descriptor of the given byte size.
func NewBlock(size int) *TypeDesc {
	return &TypeDesc{tag: TagBlock, blkSize: size}
}

// NewRepeatedBlock returns a RepeatedBlock descriptor repeating the
// element type the given number of times.
func NewRepeatedBlock(repeats int, elem *TypeDesc) *TypeDesc {
	return &TypeDesc{tag: TagRepeatedBlock, repeats: repeats, clients: []*TypeDesc{elem}}
}

// NewTypeDef returns a TypeDef descriptor wrapping a single client.
func NewTypeDef(inner *TypeDesc) *TypeDesc {
	return &TypeDesc{tag: TagTypeDef, clients: []*TypeDesc{inner}}
}

// NewFixedPoint returns a FixedPoint descriptor. overflow declares the
// trailing overflow-flag byte in the value encoding.
func NewFixedPoint(overflow bool) *TypeDesc {
	return &TypeDesc{tag: TagFixedPoint, allocOv: overflow}
}

// NewComplexFixedPoint is the two-part (real, imaginary) counterpart
// of NewFixedPoint.
func NewComplexFixedPoint(overflow bool) *TypeDesc {
	return &TypeDesc{tag: TagComplexFixed, allocOv: overflow}
}

// WithComment attaches a human-readable comment to the client at the
// given index; repeated-block XML export emits it before the element.
// It returns the receiver so descriptor construction can chain.
func (td *TypeDesc) WithComment(index int, text string) *TypeDesc {
	if td.comments == nil {
		td.comments = make(map[int]string)
	}
	td.comments[index] = text
	return td
}

// Tag returns the node's full type tag.
func (td *TypeDesc) Tag() TypeTag { return td.tag }

// RefKind returns the refnum subtype; meaningful only when Tag is
// TagRefnum.
func (td *TypeDesc) RefKind() RefnumKind { return td.refKind }

// Flavor returns the measurement-data subtype; meaningful only when
// Tag is TagMeasureData.
func (td *TypeDesc) Flavor() Flavor { return td.flavor }

// Clients returns the ordered child descriptors. Callers must not
// modify the returned slice.
func (td *TypeDesc) Clients() []*TypeDesc { return td.clients }

// DimensionCount returns the declared array dimension count.
func (td *TypeDesc) DimensionCount() int { return td.dims }

// RepeatCount returns the declared repeat count of a repeated block.
func (td *TypeDesc) RepeatCount() int { return td.repeats }

// BlockSize returns the declared byte size of an opaque block.
func (td *TypeDesc) BlockSize() int { return td.blkSize }

// HasOverflowFlag reports whether a fixed-point value carries the
// trailing 1-byte overflow flag.
func (td *TypeDesc) HasOverflowFlag() bool { return td.allocOv }

// Comment returns the comment attached to the client at index, if any.
func (td *TypeDesc) Comment(index int) (string, bool) {
	c, ok := td.comments[index]
	return c, ok
}
