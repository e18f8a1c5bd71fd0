package layout

import (
	"fmt"

	"github.com/arloliu/cdr/format"
)

// FieldDescriptor describes one column of a fixed-stride row.
type FieldDescriptor struct {
	// Name is the column name, unique within a plan.
	Name string
	// Offset is the byte offset of the first element from the start of the row.
	Offset uint32
	// Datatype is the element type tag.
	Datatype format.Datatype
	// Count is the number of consecutive elements; at least 1.
	Count uint32
}

// Size returns the number of bytes the column occupies, or 0 for an unknown datatype.
func (f FieldDescriptor) Size() int {
	return f.Datatype.Width() * int(f.Count)
}

// End returns the offset one past the last byte of the column.
func (f FieldDescriptor) End() int {
	return int(f.Offset) + f.Size()
}

func (f FieldDescriptor) String() string {
	return fmt.Sprintf("%s@%d:%s[%d]", f.Name, f.Offset, f.Datatype, f.Count)
}
