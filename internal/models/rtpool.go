package models

import (
	json "github.com/goccy/go-json"
)

// RTPool indexes round-trip fares by their composite uid. Lookup is O(1) and
// iteration follows insertion order, which is the order fares appeared in the
// search response. Substitution scans rely on that order being stable.
type RTPool struct {
	uids    []string
	flights map[string]Flight
}

func NewRTPool() *RTPool {
	return &RTPool{flights: make(map[string]Flight)}
}

// Add registers a round-trip fare under its composite uid. Re-adding an
// existing uid replaces the fare but keeps its original position.
func (p *RTPool) Add(uid string, flight Flight) {
	if p.flights == nil {
		p.flights = make(map[string]Flight)
	}
	if _, exists := p.flights[uid]; !exists {
		p.uids = append(p.uids, uid)
	}
	p.flights[uid] = flight
}

// Get returns the fare stored under uid.
func (p *RTPool) Get(uid string) (Flight, bool) {
	if p == nil {
		return Flight{}, false
	}
	flight, ok := p.flights[uid]
	return flight, ok
}

// UIDs returns the pool's uids in insertion order. The returned slice is
// shared; callers must not modify it.
func (p *RTPool) UIDs() []string {
	if p == nil {
		return nil
	}
	return p.uids
}

func (p *RTPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.uids)
}

type rtPoolEntry struct {
	UID    string `json:"uid"`
	Flight Flight `json:"flight"`
}

// MarshalJSON encodes the pool as an ordered array so insertion order
// survives a cache round trip.
func (p *RTPool) MarshalJSON() ([]byte, error) {
	entries := make([]rtPoolEntry, 0, p.Len())
	for _, uid := range p.UIDs() {
		entries = append(entries, rtPoolEntry{UID: uid, Flight: p.flights[uid]})
	}
	return json.Marshal(entries)
}

func (p *RTPool) UnmarshalJSON(data []byte) error {
	var entries []rtPoolEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	p.uids = p.uids[:0]
	p.flights = make(map[string]Flight, len(entries))
	for _, entry := range entries {
		p.Add(entry.UID, entry.Flight)
	}

	return nil
}
