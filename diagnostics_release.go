//go:build release

package union

const diagnosticsDefault = false
