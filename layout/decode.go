package layout

import (
	"math"

	"github.com/arloliu/cdr/endian"
	"github.com/arloliu/cdr/format"
)

// decodeFunc widens one element at the start of b to float64.
type decodeFunc func(b []byte, engine endian.EndianEngine) float64

// decodeTable maps every datatype tag to its element decoder. Unknown tags
// stay nil.
var decodeTable = [...]decodeFunc{
	format.DatatypeInt8:    decodeInt8,
	format.DatatypeUint8:   decodeUint8,
	format.DatatypeInt16:   decodeInt16,
	format.DatatypeUint16:  decodeUint16,
	format.DatatypeInt32:   decodeInt32,
	format.DatatypeUint32:  decodeUint32,
	format.DatatypeFloat32: decodeFloat32,
	format.DatatypeFloat64: decodeFloat64,
}

func lookupDecoder(dt format.Datatype) decodeFunc {
	if int(dt) >= len(decodeTable) {
		return nil
	}

	return decodeTable[dt]
}

func decodeInt8(b []byte, _ endian.EndianEngine) float64 {
	return float64(int8(b[0]))
}

func decodeUint8(b []byte, _ endian.EndianEngine) float64 {
	return float64(b[0])
}

func decodeInt16(b []byte, engine endian.EndianEngine) float64 {
	return float64(int16(engine.Uint16(b)))
}

func decodeUint16(b []byte, engine endian.EndianEngine) float64 {
	return float64(engine.Uint16(b))
}

func decodeInt32(b []byte, engine endian.EndianEngine) float64 {
	return float64(int32(engine.Uint32(b)))
}

func decodeUint32(b []byte, engine endian.EndianEngine) float64 {
	return float64(engine.Uint32(b))
}

func decodeFloat32(b []byte, engine endian.EndianEngine) float64 {
	return float64(math.Float32frombits(engine.Uint32(b)))
}

func decodeFloat64(b []byte, engine endian.EndianEngine) float64 {
	return math.Float64frombits(engine.Uint64(b))
}
