// Package engine computes the effective stat lines of a loadout and the
// damage it is expected to deal.
//
// Every function is pure: entities are never mutated and nothing is cached,
// so calls may run concurrently.
package engine
