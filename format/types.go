package format

type (
	// Representation is the 16-bit encapsulation identifier carried in the first
	// two bytes of every top-level CDR message (big-endian on the wire).
	Representation uint16
	// Datatype is the element tag of a point-field descriptor.
	Datatype uint8
	// CompressionType identifies the codec applied to a compressed payload.
	CompressionType uint8
)

const (
	RepresentationCDRBE    Representation = 0x0000 // plain CDR, big-endian
	RepresentationCDRLE    Representation = 0x0001 // plain CDR, little-endian
	RepresentationPLCDRBE  Representation = 0x0002 // parameter-list CDR, big-endian
	RepresentationPLCDRLE  Representation = 0x0003 // parameter-list CDR, little-endian
	RepresentationCDR2BE   Representation = 0x0006 // XCDR2 plain, big-endian
	RepresentationCDR2LE   Representation = 0x0007 // XCDR2 plain, little-endian
	RepresentationDCDR2BE  Representation = 0x0008 // XCDR2 delimited, big-endian
	RepresentationDCDR2LE  Representation = 0x0009 // XCDR2 delimited, little-endian
	RepresentationPLCDR2BE Representation = 0x000a // XCDR2 parameter-list, big-endian
	RepresentationPLCDR2LE Representation = 0x000b // XCDR2 parameter-list, little-endian
)

// Point-field datatype tags, numbered as in sensor_msgs/PointField.
const (
	DatatypeInt8    Datatype = 1
	DatatypeUint8   Datatype = 2
	DatatypeInt16   Datatype = 3
	DatatypeUint16  Datatype = 4
	DatatypeInt32   Datatype = 5
	DatatypeUint32  Datatype = 6
	DatatypeFloat32 Datatype = 7
	DatatypeFloat64 Datatype = 8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// IsSupported reports whether the representation is plain CDR, the only
// encapsulation this codec implements.
func (r Representation) IsSupported() bool {
	return r == RepresentationCDRBE || r == RepresentationCDRLE
}

// IsLittleEndian reports whether the representation selects little-endian
// primitive encoding. Every identifier pairs BE/LE in its lowest bit.
func (r Representation) IsLittleEndian() bool {
	return r&0x1 == 0x1
}

func (r Representation) String() string {
	switch r {
	case RepresentationCDRBE:
		return "CDR_BE"
	case RepresentationCDRLE:
		return "CDR_LE"
	case RepresentationPLCDRBE:
		return "PL_CDR_BE"
	case RepresentationPLCDRLE:
		return "PL_CDR_LE"
	case RepresentationCDR2BE:
		return "CDR2_BE"
	case RepresentationCDR2LE:
		return "CDR2_LE"
	case RepresentationDCDR2BE:
		return "D_CDR2_BE"
	case RepresentationDCDR2LE:
		return "D_CDR2_LE"
	case RepresentationPLCDR2BE:
		return "PL_CDR2_BE"
	case RepresentationPLCDR2LE:
		return "PL_CDR2_LE"
	default:
		return "Unknown"
	}
}

// Width returns the size in bytes of one element of the datatype, or 0 for an
// unknown tag.
func (d Datatype) Width() int {
	switch d {
	case DatatypeInt8, DatatypeUint8:
		return 1
	case DatatypeInt16, DatatypeUint16:
		return 2
	case DatatypeInt32, DatatypeUint32, DatatypeFloat32:
		return 4
	case DatatypeFloat64:
		return 8
	default:
		return 0
	}
}

// IsValid reports whether d is one of the eight known datatype tags.
func (d Datatype) IsValid() bool {
	return d >= DatatypeInt8 && d <= DatatypeFloat64
}

func (d Datatype) String() string {
	switch d {
	case DatatypeInt8:
		return "int8"
	case DatatypeUint8:
		return "uint8"
	case DatatypeInt16:
		return "int16"
	case DatatypeUint16:
		return "uint16"
	case DatatypeInt32:
		return "int32"
	case DatatypeUint32:
		return "uint32"
	case DatatypeFloat32:
		return "float32"
	case DatatypeFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
