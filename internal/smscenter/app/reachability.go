package app

import (
	"sort"

	"github.com/aradsms/smscenter/internal/smscenter/domain"
)

// reachabilitySet holds the numbers currently subscribed.
type reachabilitySet struct {
	numbers map[domain.PhoneNumber]struct{}
}

func newReachabilitySet() *reachabilitySet {
	return &reachabilitySet{numbers: make(map[domain.PhoneNumber]struct{})}
}

// add reports whether the number was newly added.
func (r *reachabilitySet) add(phone domain.PhoneNumber) bool {
	if _, ok := r.numbers[phone]; ok {
		return false
	}
	r.numbers[phone] = struct{}{}
	return true
}

// remove reports whether the number was present.
func (r *reachabilitySet) remove(phone domain.PhoneNumber) bool {
	if _, ok := r.numbers[phone]; !ok {
		return false
	}
	delete(r.numbers, phone)
	return true
}

func (r *reachabilitySet) contains(phone domain.PhoneNumber) bool {
	_, ok := r.numbers[phone]
	return ok
}

// members returns the reachable numbers in ascending order so fan-out is reproducible.
func (r *reachabilitySet) members() []domain.PhoneNumber {
	out := make([]domain.PhoneNumber, 0, len(r.numbers))
	for phone := range r.numbers {
		out = append(out, phone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
