// Package serialization saves and loads named tensors in SafeTensors format.
//
// The engine uses it to snapshot leaf values and their gradients after a
// backward pass so they can be inspected with any SafeTensors reader:
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, tensor name -> {dtype, shape, data_offsets}]
//	  [Tensor data: raw little-endian bytes, tensors sorted by name]
//
// The writer records a SHA-256 of the data section under the "sha256"
// metadata key; the reader verifies it when present.
//
// Example usage:
//
//	snapshot, err := serialization.Snapshot(map[string]*autodiff.Tensor{"w": w})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := serialization.SaveSafeTensors("grads.safetensors", snapshot, nil); err != nil {
//	    log.Fatal(err)
//	}
package serialization
