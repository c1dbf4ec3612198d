//go:build !release

package union

// diagnosticsDefault enables undefined-converter diagnostics in development
// builds. Build with -tags release to turn them off.
const diagnosticsDefault = true
