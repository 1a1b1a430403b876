// Package locator finds external toolchain bundles (the Android NDK, an
// osxcross install) on the build host.
//
// Discovery is driven by [Hints] probed in strict precedence order:
//
//  1. an explicit override property (-D androidNdk=/opt/ndk)
//  2. environment variables, in the order listed
//  3. a directory under the working directory whose name starts with a prefix
//  4. the directory containing a marker executable found on PATH
//
// The first hint that resolves wins. When nothing resolves, Locate logs an
// advisory naming every remediation and reports false; a missing toolchain is
// never an error. Results are cached on the [BuildContext] for the rest of
// the run and never persisted.
//
// When several directories match the prefix, the lexicographically smallest
// name wins and a warning lists the candidates.
package locator
