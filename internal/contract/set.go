package contract

import "fmt"

// Set holds the contracts of one asset in the order the registry returned them.
// Nothing here sorts it: AggregateSpan and ContinuityFromLive depend on that order.
type Set struct {
	contracts []Contract
}

// NewSet builds a Set from raw records, rejecting the set on the first bad record
func NewSet(records []Record) (Set, error) {
	contracts := make([]Contract, 0, len(records))
	for i, r := range records {
		c, err := NewContract(r)
		if err != nil {
			return Set{}, fmt.Errorf("record %d: %w", i, err)
		}
		contracts = append(contracts, c)
	}
	return Set{contracts: contracts}, nil
}

// SetOf builds a Set from already constructed contracts
func SetOf(contracts ...Contract) Set {
	cp := make([]Contract, len(contracts))
	copy(cp, contracts)
	return Set{contracts: cp}
}

func (s Set) Len() int { return len(s.contracts) }

// At returns the contract at index i
func (s Set) At(i int) Contract { return s.contracts[i] }

// All returns a copy of the contracts in input order
func (s Set) All() []Contract {
	cp := make([]Contract, len(s.contracts))
	copy(cp, s.contracts)
	return cp
}

// SelectLive returns the index of the governing contract: the highest positive
// quote ID, earliest in input order on a tie. ok is false when the set is empty
// or no contract carries a positive ID.
func SelectLive(s Set) (int, bool) {
	best := -1
	var bestID int64
	for i, c := range s.contracts {
		if c.id > 0 && c.id > bestID {
			best = i
			bestID = c.id
		}
	}
	return best, best >= 0
}
