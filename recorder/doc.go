// Package recorder stores CDR messages in an append-only chunked log.
//
// # File Layout
//
// All integers are little-endian.
//
//	file header (16 bytes)
//	  [0:4]   magic "CDRL"
//	  [4:6]   version (1)
//	  [6:7]   default compression type
//	  [7:8]   reserved
//	  [8:16]  creation time, Unix nanoseconds
//	chunk*
//	  chunk header (32 bytes)
//	    [0:4]   magic "CHNK"
//	    [4:5]   compression type
//	    [5:8]   reserved
//	    [8:12]  entry count
//	    [12:16] uncompressed size
//	    [16:20] stored size
//	    [20:24] schema count
//	    [24:32] xxHash64 of the uncompressed chunk
//	  stored chunk bytes
//
// An uncompressed chunk holds a schema table followed by the entries:
//
//	schema:  id uint64, name length uint16, name bytes
//	entry:   schema id uint64, log time int64 (Unix nanoseconds), length uint32, CDR payload
//
// Each chunk is self-contained, so a reader can skip or verify chunks
// independently and a truncated file loses at most its last chunk.
package recorder
