// Package family builds toolchain descriptors for each supported toolchain
// family: host GCC with optional mingw-w64 cross front-ends, Visual C++,
// osxcross clang and the Android NDK's clang.
//
// A configurator either returns descriptors ready for registration or an
// [*UnavailableError] explaining which external dependency is missing. It
// never returns a half-built descriptor: anything that has to be discovered
// on disk is resolved before the descriptor is created.
package family
