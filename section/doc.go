// Package section defines the fixed binary structures that frame a CDR message.
//
// A top-level CDR message consists of a fixed 4-byte encapsulation header
// followed by the message body:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Encapsulation Header (4 bytes, fixed)                   │
//	│  - Representation (2 bytes, big-endian identifier)      │
//	│  - Options (2 bytes, reserved, echoed unchanged)        │
//	├─────────────────────────────────────────────────────────┤
//	│ Body (variable)                                         │
//	│  - Fields in declaration order, no framing              │
//	│  - Alignment measured from the first body byte          │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes | Field          | Description
//	------|----------------|-------------------------------------------
//	0-1   | Representation | 0x0000 CDR_BE, 0x0001 CDR_LE, others reserved
//	2-3   | Options        | Reserved, zero by default
//
// The second byte alone decides the byte order of plain CDR: 0 selects
// big-endian and 1 selects little-endian. Identifiers of 2 and above name
// parameter-list and XCDR2 representations; they are recognised so that they
// can be rejected as unsupported rather than misread.
//
// Only the outermost message carries a header. Nested structures, sequence
// elements and recorder entries are encoded without one.
//
// # Thread Safety
//
// EncapsulationHeader is a small value type. Parse mutates its receiver; all
// other methods are read-only and safe for concurrent use.
package section
