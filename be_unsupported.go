//go:build !(amd64 || arm64 || 386 || arm || riscv64 || loong64 || mipsle || mips64le || ppc64le || wasm)

package main

// The oto player hands float32 samples to a FormatFloat32LE stream and the
// SDL backend uploads RGB565 words as-is, both by reinterpreting memory.
var _ = "newspeccy requires a little-endian architecture" + 1
