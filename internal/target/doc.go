// Package target parses address and port definitions into lazily
// re-enumerable sequences of concrete values.
//
// An address definition names a single address, a CIDR network, or a
// "first-last" range of addresses sharing a family; a port definition
// names a single port or a "first-last" range of ports. Both forms accept
// comma- or whitespace-separated lists of terms, re-walked from the start
// each time the owning spec is asked to reset.
//
// The types here hold no network state; they are pure value iterators
// consumed by package dial to produce concrete dial targets.
package target
