package model

// Snapshot is one consistent view of every input record the engine consumes.
// The caller assembles it; the engine reads it and holds nothing between
// invocations.
type Snapshot struct {
	Cards      []Card
	Versions   []CardVersion
	Txs        []Tx
	Statements []Statement
}
