package typedesc

// RefnumKind is the subtype of a Refnum type descriptor. It selects
// which reference encoding the data fill uses.
type RefnumKind uint16

const (
	RefGeneric     RefnumKind = 0x00
	RefDataLog     RefnumKind = 0x01
	RefByteStream  RefnumKind = 0x02
	RefDevice      RefnumKind = 0x03
	RefOccurrence  RefnumKind = 0x04
	RefTCPNetConn  RefnumKind = 0x05
	RefAutoRef     RefnumKind = 0x06
	RefLVObjCtl    RefnumKind = 0x07
	RefMenu        RefnumKind = 0x08
	RefImaq        RefnumKind = 0x0A
	RefDataSocket  RefnumKind = 0x0D
	RefVisaRef     RefnumKind = 0x0F
	RefIVIRef      RefnumKind = 0x10
	RefUDPNetConn  RefnumKind = 0x11
	RefNotifierRef RefnumKind = 0x12
	RefQueue       RefnumKind = 0x13
	RefIrdaNetConn RefnumKind = 0x14
	RefUsrDefined  RefnumKind = 0x15
	RefUsrDefndTag RefnumKind = 0x16
	RefEventReg    RefnumKind = 0x17
	RefUsrDefTagFlt RefnumKind = 0x1C
	RefUDClassInst  RefnumKind = 0x1E
)

var refnumNames = map[RefnumKind]string{
	RefGeneric:      "Generic",
	RefDataLog:      "DataLog",
	RefByteStream:   "ByteStream",
	RefDevice:       "Device",
	RefOccurrence:   "Occurrence",
	RefTCPNetConn:   "TCPNetConnection",
	RefAutoRef:      "AutoRef",
	RefLVObjCtl:     "LVObjCtl",
	RefMenu:         "Menu",
	RefImaq:         "Imaq",
	RefDataSocket:   "DataSocket",
	RefVisaRef:      "VisaRef",
	RefIVIRef:       "IVIRef",
	RefUDPNetConn:   "UDPNetConnection",
	RefNotifierRef:  "NotifierRef",
	RefQueue:        "Queue",
	RefIrdaNetConn:  "IrdaNetConnection",
	RefUsrDefined:   "UsrDefined",
	RefUsrDefndTag:  "UsrDefndTag",
	RefEventReg:     "EventRegistration",
	RefUsrDefTagFlt: "UsrDefTagFlt",
	RefUDClassInst:  "UDClassInst",
}

var refnumByName = invert(refnumNames)

func (k RefnumKind) Name() string {
	if n, ok := refnumNames[k]; ok {
		return n
	}
	return "Refnum0x" + hexByte(uint8(k))
}

func (k RefnumKind) String() string { return k.Name() }

// RefnumByName performs the inverse lookup from a text-tree tag name.
func RefnumByName(name string) (RefnumKind, bool) {
	k, ok := refnumByName[name]
	return k, ok
}

// IsTag reports whether this refnum kind stores its value as a
// length-prefixed tag string rather than a 4-byte handle (from format
// version 6.0.0 on).
func (k RefnumKind) IsTag() bool {
	switch k {
	case RefIVIRef, RefVisaRef, RefUsrDefTagFlt, RefUsrDefndTag:
		return true
	}
	return false
}
