// Package layout decodes fixed-stride row payloads whose column layout is
// only known at runtime, such as the data blob of a point cloud.
//
// A payload describes itself with a list of FieldDescriptors (name, byte
// offset inside the row, element datatype, element count). NewPlan validates
// the descriptors once against the row stride and resolves each datatype to a
// decode function, so decoding a row is a loop over precomputed columns with
// no per-row parsing:
//
//	plan, err := layout.NewPlan(fields, pointStep, endian.GetLittleEndianEngine())
//	if err != nil {
//	    return err
//	}
//	rows, err := layout.NewRowDecoder(plan, data, width*height)
//	if err != nil {
//	    return err
//	}
//	for i, rec := range rows.All() {
//	    x, _ := rec.Value("x")
//	    ...
//	}
//
// Every element is widened to float64. Records copy their values out of the
// payload and remain valid after the payload buffer is reused.
//
// A Plan is immutable and safe for concurrent use; a RowDecoder only reads its
// buffer, so several goroutines may decode disjoint rows of the same payload.
package layout
