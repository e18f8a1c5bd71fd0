// Package endian provides byte order utilities for CDR encoding and decoding.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine interface.
// A CDR message selects its byte order once, in the encapsulation header, and
// every primitive in the message body is read or written through the engine
// resolved from that header.
//
// # Basic Usage
//
// Most producers emit little-endian CDR (CDR_LE), which is what ROS 2 middleware
// writes on every mainstream platform:
//
//	engine := endian.GetLittleEndianEngine()
//	engine.PutUint32(buf, 42)
//
// Consumers resolve the engine from the header instead of choosing one:
//
//	engine := endian.ForLittleEndian(header.Representation.IsLittleEndian())
//
// # Native Order
//
// When the message byte order matches the host, arrays of fixed-width primitives
// can be copied in bulk instead of being swapped element by element.
// CompareNativeEndian reports whether that fast path applies.
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var nativeEngine = detectNative()

func detectNative() EndianEngine {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// CheckEndianness returns the host's byte order.
func CheckEndianness() binary.ByteOrder {
	return nativeEngine
}

// NativeEngine returns the engine matching the host's byte order.
func NativeEngine() EndianEngine {
	return nativeEngine
}

func IsNativeLittleEndian() bool {
	return nativeEngine == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return nativeEngine == binary.BigEndian
}

// CompareNativeEndian reports whether engine uses the host's byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == nativeEngine
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForLittleEndian returns the little-endian engine when little is true and the
// big-endian engine otherwise.
func ForLittleEndian(little bool) EndianEngine {
	if little {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// IsLittleEndian reports whether engine is the little-endian engine.
func IsLittleEndian(engine EndianEngine) bool {
	return engine == binary.LittleEndian
}
