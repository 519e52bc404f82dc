// Package heirloom carries module-level metadata.
package heirloom

// Version is the module version reported by the keeper CLI.
const Version = "0.3.0"
