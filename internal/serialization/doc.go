// Package serialization implements the .synap checkpoint file format.
//
// Layout:
//
//	[4]  magic "SYNP"
//	[4]  format version (uint32, little-endian)
//	[8]  header size (uint64, little-endian)
//	[..] header JSON (tensor metadata + optional checkpoint metadata)
//	[..] zero padding to a 64-byte boundary
//	[..] tensor data section (float32, little-endian, offsets per header)
//	[32] SHA-256 checksum of everything before it
//
// Tensors are written in lexicographic name order so identical state always
// produces identical bytes. The reader validates magic, version, checksum
// and tensor offsets before exposing any data.
package serialization
