// Package wikidump filters and splits MediaWiki XML dumps in a single
// streaming pass.
//
// Dumps look like the ones published by the wikimedia group:
//
//	http://dumps.wikimedia.org/
//
// A Parser yields one page at a time, carrying the page's original
// markup, so pages can be dropped by content model (see Filter) or
// dealt round-robin into several files (see Split) without holding
// the whole dump in memory.
//
// See the program in tools/wikidump for how these fit together.
package wikidump
