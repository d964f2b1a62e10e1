package storage

import (
	"log"
	"sort"
	"strings"
	"sync"
)

const contactsKey = "savedPhones"

// Contact is the last known delivery address for a phone number.
type Contact struct {
	Address string `json:"address"`
}

// ContactStore is the durable phone → address directory used to prefill
// delivery orders.
type ContactStore struct {
	mu       sync.Mutex
	kv       *KV
	contacts map[string]Contact
}

// NewContactStore loads the directory from kv, starting empty when the
// stored document is missing or unreadable.
func NewContactStore(kv *KV) (*ContactStore, error) {
	s := &ContactStore{kv: kv}
	contacts := make(map[string]Contact)
	_, err := kv.Get(contactsKey, &contacts)
	if err != nil {
		if !isMalformed(err) {
			return nil, err
		}
		log.Printf("WARN: stored contacts unreadable, starting empty: %v", err)
		contacts = make(map[string]Contact)
	}
	if contacts == nil {
		contacts = make(map[string]Contact)
	}
	s.contacts = contacts
	return s, nil
}

// Save creates or overwrites the address for a phone number and persists.
func (s *ContactStore) Save(phone, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[phone] = Contact{Address: address}
	return s.flushLocked()
}

// Delete removes a phone number. Unknown numbers are a silent no-op.
func (s *ContactStore) Delete(phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[phone]; !ok {
		return nil
	}
	delete(s.contacts, phone)
	return s.flushLocked()
}

// Get looks up a phone number exactly.
func (s *ContactStore) Get(phone string) (Contact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[phone]
	return c, ok
}

// FindBySuffix returns the first saved number ending with the given digits,
// scanning numbers in sorted order so repeated lookups agree.
func (s *ContactStore) FindBySuffix(suffix string) (string, Contact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	phones := make([]string, 0, len(s.contacts))
	for p := range s.contacts {
		phones = append(phones, p)
	}
	sort.Strings(phones)
	for _, p := range phones {
		if strings.HasSuffix(p, suffix) {
			return p, s.contacts[p], true
		}
	}
	return "", Contact{}, false
}

// All returns a copy of the directory.
func (s *ContactStore) All() map[string]Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Contact, len(s.contacts))
	for p, c := range s.contacts {
		out[p] = c
	}
	return out
}

func (s *ContactStore) flushLocked() error {
	return s.kv.Put(contactsKey, s.contacts)
}
