// Package structured accumulates Schema.org records and renders them as a
// JSON-LD <script> block.
//
// Every stored record carries @context (defaulting to https://schema.org)
// and a non-empty @type. AddSchema stores a clone of its argument, so the
// caller's record is never modified, including when @context is injected.
package structured
