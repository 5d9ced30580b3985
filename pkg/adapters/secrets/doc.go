// Package secrets groups secret store adapters used by the boot-time
// configuration overlay.
package secrets
