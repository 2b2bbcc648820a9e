package parser

// state is one node of the DEC-compatible VT parser state machine
// (spec.md §4.4, the public "Paul Williams" table).
type state uint8

const (
	stateGround state = iota
	stateEscape
	stateEscapeIntermediate
	stateCSIEntry
	stateCSIParam
	stateCSIIntermediate
	stateCSIIgnore
	stateDCSEntry
	stateDCSParam
	stateDCSIntermediate
	stateDCSPassthrough
	stateDCSIgnore
	stateOSCString
	stateSOSPMAPCString
)

const maxIntermediates = 2
const maxStringPayload = 4096
