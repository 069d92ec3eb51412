package syntax

import "fmt"

// buildParsingTable constructs the LALR(1) parsing table for the given rule
// set.  Shift/reduce conflicts are resolved in favor of SHIFT: this is what
// makes a match arm list extend greedily, so arms following a nested match
// attach to the innermost one.  Reduce/reduce conflicts are an error.
func buildParsingTable(prods []*production) (*ParsingTable, error) {
	ptb := &ptableBuilder{
		prods:       prods,
		prodsByName: make(map[string][]int),
		firstSets:   make(map[string]map[int]struct{}),
	}

	if err := ptb.build(); err != nil {
		return nil, err
	}

	return ptb.table, nil
}

// lrItem represents an LR(0) item: a production with a dot position.  The dot
// position is the index the dot is considered to be placed BEFORE, so a dot
// at the end of the item has a position equal to the body length.
type lrItem struct {
	prod int
	dot  int
}

// lrItemSet represents a parser state.  Each LR(0) item is matched with its
// lookahead set, rendering each entry an LR(1) item.
type lrItemSet struct {
	items map[lrItem]map[int]struct{}
	conns map[bnfElement]int
}

// ptableBuilder holds the state used to construct the parsing table.
type ptableBuilder struct {
	prods       []*production
	prodsByName map[string][]int

	itemSets []*lrItemSet
	augNdx   int

	firstSets map[string]map[int]struct{}

	table *ParsingTable
}

func (ptb *ptableBuilder) build() error {
	// Augment the rule set with a goal production.
	ptb.augNdx = len(ptb.prods)
	ptb.prods = append(ptb.prods, &production{
		name: "__goal",
		body: []bnfElement{bnfNonterminal(goalSymbol)},
	})

	for i, prod := range ptb.prods {
		ptb.prodsByName[prod.name] = append(ptb.prodsByName[prod.name], i)
	}

	ptb.computeFirstSets()

	// Create the starting kernel: the goal item with an EOF lookahead.
	startSet := &lrItemSet{items: map[lrItem]map[int]struct{}{
		{prod: ptb.augNdx, dot: 0}: {TOK_EOF: {}},
	}}
	ptb.closureOf(startSet)

	ptb.buildLR0Sets(startSet)
	ptb.computeLookaheads()

	return ptb.buildTableFromSets()
}

// computeFirstSets computes the first set of every nonterminal by iterating a
// fixed point over the rule set.  The grammar has no epsilon productions so
// the first set of a body is the first set of its leading symbol.
func (ptb *ptableBuilder) computeFirstSets() {
	for _, prod := range ptb.prods {
		if ptb.firstSets[prod.name] == nil {
			ptb.firstSets[prod.name] = make(map[int]struct{})
		}
	}

	for changed := true; changed; {
		changed = false

		for _, prod := range ptb.prods {
			dest := ptb.firstSets[prod.name]
			startLen := len(dest)

			switch lead := prod.body[0].(type) {
			case bnfTerminal:
				dest[int(lead)] = struct{}{}
			case bnfNonterminal:
				for first := range ptb.firstSets[string(lead)] {
					dest[first] = struct{}{}
				}
			}

			if len(dest) != startLen {
				changed = true
			}
		}
	}
}

// first returns the first set of the symbol sequence starting at elem.
func (ptb *ptableBuilder) first(elem bnfElement) map[int]struct{} {
	switch v := elem.(type) {
	case bnfTerminal:
		return map[int]struct{}{int(v): {}}
	default:
		return ptb.firstSets[string(v.(bnfNonterminal))]
	}
}

// closureOf calculates all of the items in an LR(0) item set based on its
// item kernel.  Added items start with empty lookahead sets.
func (ptb *ptableBuilder) closureOf(itemSet *lrItemSet) {
	for addedMore := true; addedMore; {
		addedMore = false

		for item := range itemSet.items {
			body := ptb.prods[item.prod].body
			if item.dot == len(body) {
				continue
			}

			if nt, ok := body[item.dot].(bnfNonterminal); ok {
				for _, prodRef := range ptb.prodsByName[string(nt)] {
					ruleItem := lrItem{prod: prodRef, dot: 0}

					if _, ok := itemSet.items[ruleItem]; !ok {
						itemSet.items[ruleItem] = make(map[int]struct{})
						addedMore = true
					}
				}
			}
		}
	}
}

// buildLR0Sets computes the canonical collection of LR(0) item sets starting
// from the given start set.  Sets with the same item core are shared, which
// is what makes the final table LALR rather than canonical LR(1).
func (ptb *ptableBuilder) buildLR0Sets(startSet *lrItemSet) {
	ptb.itemSets = []*lrItemSet{startSet}

	for i := 0; i < len(ptb.itemSets); i++ {
		itemSet := ptb.itemSets[i]
		itemSet.conns = make(map[bnfElement]int)

		// Calculate the goto kernels reachable from this item set.
		gotoKernels := make(map[bnfElement]*lrItemSet)
		for item := range itemSet.items {
			body := ptb.prods[item.prod].body
			if item.dot == len(body) {
				continue
			}

			gotoItem := lrItem{prod: item.prod, dot: item.dot + 1}
			dottedElem := body[item.dot]

			if gotoKernel, ok := gotoKernels[dottedElem]; ok {
				gotoKernel.items[gotoItem] = make(map[int]struct{})
			} else {
				gotoKernels[dottedElem] = &lrItemSet{items: map[lrItem]map[int]struct{}{gotoItem: make(map[int]struct{})}}
			}
		}

		// Connect each goto kernel to its representative item set, adding new
		// sets to the worklist as they are discovered.
	kernels:
		for elem, gotoKernel := range gotoKernels {
			ptb.closureOf(gotoKernel)

			for j, otherItemSet := range ptb.itemSets {
				if sameCore(gotoKernel, otherItemSet) {
					itemSet.conns[elem] = j
					continue kernels
				}
			}

			itemSet.conns[elem] = len(ptb.itemSets)
			ptb.itemSets = append(ptb.itemSets, gotoKernel)
		}
	}
}

// sameCore returns whether two item sets contain exactly the same LR(0)
// items, ignoring lookaheads.
func sameCore(a, b *lrItemSet) bool {
	if len(a.items) != len(b.items) {
		return false
	}

	for item := range a.items {
		if _, ok := b.items[item]; !ok {
			return false
		}
	}

	return true
}

// computeLookaheads converts the LR(0) item sets into LALR(1) item sets by
// iterating lookahead generation and propagation to a fixed point: closure
// items receive lookaheads from the items that produced them and kernel items
// of connected sets receive the lookaheads of their source items.
func (ptb *ptableBuilder) computeLookaheads() {
	for changed := true; changed; {
		changed = false

		for _, itemSet := range ptb.itemSets {
			if ptb.propagateLookaheads(itemSet) {
				changed = true
			}

			for item, lookaheads := range itemSet.items {
				body := ptb.prods[item.prod].body
				if item.dot == len(body) {
					continue
				}

				connSet := ptb.itemSets[itemSet.conns[body[item.dot]]]
				connLookaheads := connSet.items[lrItem{prod: item.prod, dot: item.dot + 1}]

				startLen := len(connLookaheads)
				for l := range lookaheads {
					connLookaheads[l] = struct{}{}
				}

				if len(connLookaheads) != startLen {
					changed = true
				}
			}
		}
	}
}

// propagateLookaheads propagates lookaheads from the items of a set to the
// closure items they generate until no meaningful propagations occur.  It
// returns whether any lookahead was added.
func (ptb *ptableBuilder) propagateLookaheads(itemSet *lrItemSet) bool {
	anyAdded := false

	for propagated := true; propagated; {
		propagated = false

		for item, itemLookaheads := range itemSet.items {
			body := ptb.prods[item.prod].body
			if item.dot == len(body) {
				continue
			}

			nt, ok := body[item.dot].(bnfNonterminal)
			if !ok {
				continue
			}

			// The lookaheads passed to the generated items are the firsts of
			// what follows the dotted nonterminal, or the item's own
			// lookaheads when nothing follows it.
			var lookaheads map[int]struct{}
			if item.dot == len(body)-1 {
				lookaheads = itemLookaheads
			} else {
				lookaheads = ptb.first(body[item.dot+1])
			}

			for _, prodRef := range ptb.prodsByName[string(nt)] {
				destLookaheads := itemSet.items[lrItem{prod: prodRef, dot: 0}]

				startLen := len(destLookaheads)
				for l := range lookaheads {
					destLookaheads[l] = struct{}{}
				}

				if len(destLookaheads) != startLen {
					propagated = true
					anyAdded = true
				}
			}
		}
	}

	return anyAdded
}

// buildTableFromSets converts the item set graph into a parsing table.  It
// returns a descriptive error if the grammar has a reduce/reduce conflict.
func (ptb *ptableBuilder) buildTableFromSets() error {
	ptb.table = &ParsingTable{
		Rows:        make([]*PTableRow, len(ptb.itemSets)),
		Productions: ptb.prods,
	}

	for i, itemSet := range ptb.itemSets {
		row := &PTableRow{Actions: make(map[int]*Action), Gotos: make(map[string]int)}
		ptb.table.Rows[i] = row

		// Shift and goto actions come from the connections.
		for conn, state := range itemSet.conns {
			switch v := conn.(type) {
			case bnfTerminal:
				row.Actions[int(v)] = &Action{Kind: AKShift, Operand: state}
			case bnfNonterminal:
				row.Gotos[string(v)] = state
			}
		}

		// Reduce and accept actions come from the items with the dot at the
		// end of their production.
		for item, lookaheads := range itemSet.items {
			if item.dot != len(ptb.prods[item.prod].body) {
				continue
			}

			if item.prod == ptb.augNdx {
				row.Actions[TOK_EOF] = &Action{Kind: AKAccept}
				continue
			}

			for lookahead := range lookaheads {
				if action, ok := row.Actions[lookahead]; ok {
					// An existing shift action wins over the reduction.
					if action.Kind == AKShift {
						continue
					}

					if action.Kind == AKReduce && action.Operand != item.prod {
						return fmt.Errorf(
							"reduce/reduce conflict between `%s` and `%s` on token %s",
							ptb.prods[action.Operand].name, ptb.prods[item.prod].name, KindName(lookahead),
						)
					}

					continue
				}

				row.Actions[lookahead] = &Action{Kind: AKReduce, Operand: item.prod}
			}
		}
	}

	return nil
}
