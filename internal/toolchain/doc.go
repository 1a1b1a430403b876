// Package toolchain models toolchain descriptors: declarative records naming
// the executables and argument rules needed to compile, link, archive and
// strip for one or more target triples.
//
// A [Descriptor] belongs to a [Family]. The family supplies default executable
// names and the set of roles every target must be able to fill; per-target
// [Bundle] overrides replace those defaults. [Descriptor.Validate] merges the
// two and reports the first role left empty.
//
// Argument injection is expressed as named [ArgRule] values with a
// [Placement] rather than index arithmetic:
//
//	exe := toolchain.Executable{Name: "clang-14"}.
//		With(toolchain.Prepend("sysroot-include", "-isystem", inc)).
//		With(toolchain.Append("target", "-target", "aarch64-linux-android21"))
//	exe.Arguments("-c", "foo.c")
//	// -isystem <inc> -c foo.c -target aarch64-linux-android21
package toolchain
