package encoding

// Marshaler is implemented by record types that can write their fields, in
// declaration order, to an Encoder. Nested structures are written inline
// without a header of their own.
type Marshaler interface {
	MarshalCDR(e *Encoder)
}

// Unmarshaler is implemented by record types that can read their fields from a
// Decoder. Implementations return the first read error unchanged.
type Unmarshaler interface {
	UnmarshalCDR(d *Decoder) error
}

// Message is a top-level record type with a fully qualified schema name such
// as "sensor_msgs/msg/PointCloud2".
type Message interface {
	Marshaler
	Unmarshaler
	SchemaName() string
}
