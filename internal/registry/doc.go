// Package registry holds the toolchains configured for a build and answers
// downstream queries about them.
//
// [Configure] runs the host's platform policy, asks each family for its
// descriptors, validates all of them and registers them in one step, then
// seals the registry. Once sealed a [Registry] is read-only and safe for
// concurrent use.
//
// Families whose external dependency is missing are skipped and recorded in
// the [Report]; a malformed descriptor aborts configuration with
// [ErrMalformedDescriptor] and nothing is registered.
package registry
