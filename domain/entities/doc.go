// Package entities provides the core domain types shared by the export registry,
// the wallet collaborators and the host adapters.
package entities
