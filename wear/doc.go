// Package wear implements a wear-leveled record store for byte-addressable,
// limited-endurance devices such as EEPROMs.
//
// # Overview
//
// A logical value is stored as a record: an 8-byte marker chosen by the caller,
// an 8-bit additive checksum, a 16-bit little-endian payload size, then the
// payload. There is no allocation table. Records are recovered by scanning the
// pool for the marker and accepting the first occurrence whose payload
// checksum matches.
//
// # Implicit Invalidation
//
// Each new record for a marker is placed so that its final 8 bytes land
// exactly on the previous record's marker:
//
//	new = prior - (size - 8)
//
//	        new                 prior
//	         |                    |
//	         v                    v
//	  ...... [hdr|payload.........][old marker][old payload...] ......
//	                              ^^^^^^^^^^^^
//	                   overwritten by the new record's tail
//
// Writing the new record therefore destroys the old marker with no separate
// erase cycle. Successive writes walk downward through the pool. When the next
// slot would fall below the pool start, the record wraps to the top of the pool
// and the stale marker is retired with a single byte write.
//
// The first record for a marker is placed at a pseudo-random address drawn from
// an injected Source, spreading wear statistically across the pool.
//
// # Power Loss
//
// The header is written before the payload. A record torn by power loss fails
// its checksum and is skipped by the locator; the previous record stays
// readable for as long as its marker has not been overwritten.
//
// # Thread Safety
//
// A Store is NOT thread-safe and assumes it is the only writer to its pool.
package wear
