// Package config parses the #[ffi(...)] attribute into a Config.
//
// The attribute is a flat list of key = "value" pairs. Four keys are
// recognized: abi, name, mode and feature. Every value must be a quoted
// string; the sentinel value "none" puts a field into its unset state, which
// is indistinguishable from the key being absent. Unrecognized keys are
// accepted without effect.
//
// Validation happens once, here, at the boundary: the abi value against the
// registry, the mode value against its three legal spellings. Downstream
// code never sees a raw unvalidated string. The capability record derived
// from the resolved convention travels with the Config.
package config
