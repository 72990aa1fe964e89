// Package buffer provides the growable byte buffers that encoded elements are built in.
//
// Two buffer kinds exist:
//
//   - Buffer, an append-only byte region with a power-of-two growth policy and a hard
//     64MiB ceiling. It runs either on the heap, or with the inline policy where the
//     first 512 bytes live in an array embedded in the Buffer itself.
//   - Aligned, whose data always starts at an 8192 byte aligned address. It is meant
//     for I/O paths that require aligned memory and grows up to 512MiB.
//
// # Offsets, Not Pointers
//
// Every append returns the offset it wrote to. Raw slices returned by Grow, Bytes or
// At alias the current backing block and become invalid at the next reallocation.
// Generation changes every time the backing block is replaced, so holders of raw
// slices (or of element views bound with element.FromSource) can detect staleness.
// Reserve returns a Mark, a placeholder that stays valid across growth and is filled
// in later with PatchInt32 and friends.
//
// # Fatal Conditions
//
// Exceeding a size ceiling or failing to allocate is not a recoverable error for a
// caller that is halfway through encoding a document. These conditions panic with a
// *errs.FatalError before any byte of the offending request is written. Guard turns
// such a panic back into an error at an API boundary.
//
// # Basic Usage
//
//	b, _ := buffer.New()
//	length := b.Reserve(4)
//	b.AppendByte(byte(format.TypeInt32))
//	b.AppendCString("x")
//	b.AppendInt32(3)
//	b.AppendByte(0)
//	b.PatchInt32(length, int32(b.Len()))
//
// # Thread Safety
//
// Buffers are not safe for concurrent use. Use one buffer per in-flight encode.
package buffer
