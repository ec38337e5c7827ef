package models

import "sort"

// PositionSet maps an account number to the set of symbols it currently
// holds. It is built once at run start and treated as read-only afterwards
// unless the refresh-after-submit config knob is on.
type PositionSet map[string]map[string]struct{}

func NewPositionSet() PositionSet {
	return make(PositionSet)
}

func (p PositionSet) Add(account, symbol string) {
	symbols, found := p[account]
	if !found {
		symbols = make(map[string]struct{})
		p[account] = symbols
	}

	symbols[symbol] = struct{}{}
}

func (p PositionSet) Holds(account, symbol string) bool {
	symbols, found := p[account]
	if !found {
		return false
	}

	_, held := symbols[symbol]
	return held
}

// Symbols returns the held symbols for an account in sorted order.
func (p PositionSet) Symbols(account string) []string {
	symbols := make([]string, 0, len(p[account]))
	for symbol := range p[account] {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	return symbols
}
