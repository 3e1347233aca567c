package value

// Well-known symbols (spec.md §9/SPEC_FULL.md §10 "Supplemented
// Features"): protocol hook points identified by identity rather than by
// string name. No executor or object code consults them, and quill does
// not ship the built-ins (Array/String iterators, Symbol.toPrimitive
// coercion) that would normally populate these hooks; the identities
// exist so a host native class can use them when it wants to.
var (
	SymbolHasInstance  = NewSymbol("Symbol.hasInstance")
	SymbolToPrimitive  = NewSymbol("Symbol.toPrimitive")
	SymbolIterator     = NewSymbol("Symbol.iterator")
)

// SymbolHasInstanceValue etc. are the Value-wrapped forms, convenient for
// property-key lookups that expect a value.Value rather than a *Symbol.
var (
	SymbolHasInstanceValue = SymbolValue(SymbolHasInstance)
	SymbolToPrimitiveValue = SymbolValue(SymbolToPrimitive)
	SymbolIteratorValue    = SymbolValue(SymbolIterator)
)
