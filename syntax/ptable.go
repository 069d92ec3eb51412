package syntax

import "sync"

// ParsingTable represents the LALR(1) parser's Action-Goto table over the
// grammar's productions.
type ParsingTable struct {
	Rows        []*PTableRow
	Productions []*production
}

// PTableRow is a particular row in the parsing table.  Any terminal for which
// there is no key in the action table is a syntax error.
type PTableRow struct {
	Actions map[int]*Action
	Gotos   map[string]int
}

// Action contains two items: a kind and an operand.  The kind indicates what
// type of action to perform (Shift, Reduce, Accept) and the operand stores
// the data affiliated with the action: the state to shift to for shift
// actions, the production to reduce by for reduce actions, nothing for accept
// actions.
type Action struct {
	// Kind should be one of the action kinds enumerated below (prefix AK).
	Kind int

	Operand int
}

// Enumeration of action kinds.
const (
	AKReduce = iota
	AKShift
	AKAccept
)

var (
	ptableOnce sync.Once
	ptable     *ParsingTable
	ptableErr  error
)

// parsingTable returns the table for the language grammar, building it on
// first use.  A build failure indicates a broken grammar and is reported as a
// plain error rather than a compile error.
func parsingTable() (*ParsingTable, error) {
	ptableOnce.Do(func() {
		ptable, ptableErr = buildParsingTable(grammar)
	})

	return ptable, ptableErr
}
