// SPDX-License-Identifier: AGPL-3.0-or-later
// lumenhub - an E1.31/sACN node and SLP service directory
// Copyright (C) 2023-2026 Jacob McSwain
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// Package store implements the SLP service directory: a time-indexed,
// scope-aware map from service type to the URLs registered under it. Each
// service type bucket is pinned to a single scope set for its lifetime -
// scope monogamy - and entries age out lazily, read at lookup time or
// swept periodically.
package store

import (
	"strings"
	"time"

	"github.com/openlumen/lumenhub/internal/slp/scope"
)

// Result is the outcome of a mutating store operation.
type Result int

const (
	// OK means the operation completed as requested.
	OK Result = iota
	// ScopeMismatch means the operation targeted a service type bucket
	// already pinned to a different scope set.
	ScopeMismatch
)

// ServiceEntry is a service registration: a URL, the scope set it is
// registered under, and how long the registration should live.
type ServiceEntry struct {
	Scopes   scope.Set
	URL      string
	Lifetime time.Duration
}

// URLEntry is a single lookup result: a registered URL and its remaining
// lifetime as of the lookup time.
type URLEntry struct {
	URL      string
	Lifetime time.Duration
}

// record is a bucket's internal bookkeeping for one registered URL.
type record struct {
	expiresAt time.Time
	lifetime  time.Duration
}

// bucket holds every URL registered under one service type. scopes is
// fixed by the first successful Insert into this bucket.
type bucket struct {
	scopes  scope.Set
	order   []string
	entries map[string]record
}

// Store is an in-memory SLP service directory.
type Store struct {
	buckets map[string]*bucket
}

// New returns an empty Store.
func New() *Store {
	return &Store{buckets: make(map[string]*bucket)}
}

// serviceType returns the service-type prefix of a URL: everything before
// its first "://".
func serviceType(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		return url[:i]
	}
	return url
}

// Insert registers entry. The first Insert into a given service type's
// bucket fixes that bucket's scope set; later inserts with a different
// scope set are rejected with ScopeMismatch (scope monogamy). Inserting a
// URL already present in the bucket keeps whichever registration expires
// later (max-lifetime retention) rather than shortening an existing
// registration.
func (s *Store) Insert(now time.Time, entry ServiceEntry) Result {
	st := serviceType(entry.URL)
	b, ok := s.buckets[st]
	if !ok {
		b = &bucket{scopes: entry.Scopes, entries: make(map[string]record)}
		s.buckets[st] = b
	}
	if !b.scopes.Equal(entry.Scopes) {
		return ScopeMismatch
	}

	newExpiry := now.Add(entry.Lifetime)
	if existing, exists := b.entries[entry.URL]; exists {
		if existing.expiresAt.After(newExpiry) {
			return OK
		}
	} else {
		b.order = append(b.order, entry.URL)
	}
	b.entries[entry.URL] = record{expiresAt: newExpiry, lifetime: entry.Lifetime}
	return OK
}

// Remove deregisters entry's URL. It is a no-op, returning OK, if the URL
// was never registered; it returns ScopeMismatch if entry's scope set
// doesn't match the bucket's established scope set.
func (s *Store) Remove(entry ServiceEntry) Result {
	st := serviceType(entry.URL)
	b, ok := s.buckets[st]
	if !ok {
		return OK
	}
	if !b.scopes.Equal(entry.Scopes) {
		return ScopeMismatch
	}
	if _, exists := b.entries[entry.URL]; exists {
		delete(b.entries, entry.URL)
		b.order = removeString(b.order, entry.URL)
	}
	if len(b.entries) == 0 {
		delete(s.buckets, st)
	}
	return OK
}

// Lookup appends every unexpired URL registered under svcType whose
// bucket's scope set intersects scopes to *out, in registration order.
// Expired entries are skipped but not removed here; Sweep or a later
// Insert/Remove reclaims them.
func (s *Store) Lookup(now time.Time, scopes scope.Set, svcType string, out *[]URLEntry) {
	b, ok := s.buckets[svcType]
	if !ok || !b.scopes.Intersects(scopes) {
		return
	}
	for _, url := range b.order {
		rec, ok := b.entries[url]
		if !ok || !now.Before(rec.expiresAt) {
			continue
		}
		*out = append(*out, URLEntry{URL: url, Lifetime: rec.expiresAt.Sub(now)})
	}
}

// ServiceCount returns the number of service-type buckets holding at
// least one unexpired registration as of now. Unlike Lookup, which only
// skips expired entries, it evicts them from every bucket it visits
// (discarding a bucket left empty, same as Sweep) rather than relying on
// a prior Sweep to have already reclaimed them.
func (s *Store) ServiceCount(now time.Time) int {
	n := 0
	for st, b := range s.buckets {
		b.evictExpired(now)
		if len(b.entries) == 0 {
			delete(s.buckets, st)
			continue
		}
		n++
	}
	return n
}

// Reset discards every registration and every bucket's established scope
// set.
func (s *Store) Reset() {
	s.buckets = make(map[string]*bucket)
}

// Sweep removes every entry that has expired as of now and returns how
// many were removed. A bucket left empty is discarded along with its
// pinned scope set, so a future Insert under that service type may
// establish a new one.
func (s *Store) Sweep(now time.Time) int {
	removed := 0
	for st, b := range s.buckets {
		removed += b.evictExpired(now)
		if len(b.entries) == 0 {
			delete(s.buckets, st)
		}
	}
	return removed
}

// evictExpired removes every entry in b that has expired as of now,
// compacts b's insertion order to match, and reports how many entries
// were removed. It leaves an emptied bucket's scope set in place -
// callers that want to release the scope pin drop the bucket themselves
// once they observe it's empty.
func (b *bucket) evictExpired(now time.Time) int {
	removed := 0
	for _, url := range b.order {
		rec, ok := b.entries[url]
		if ok && !now.Before(rec.expiresAt) {
			delete(b.entries, url)
			removed++
		}
	}
	b.order = compactOrder(b.order, b.entries)
	return removed
}

func removeString(list []string, target string) []string {
	out := list[:0]
	for _, v := range list {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}

func compactOrder(order []string, entries map[string]record) []string {
	out := order[:0]
	for _, url := range order {
		if _, ok := entries[url]; ok {
			out = append(out, url)
		}
	}
	return out
}
