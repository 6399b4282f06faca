// Package ports defines the interfaces of the native collaborators whose
// functions the export table exposes. The registry depends only on these
// abstractions; application/wallet and application/utils implement them.
package ports
