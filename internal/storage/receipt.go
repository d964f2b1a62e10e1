package storage

import (
	"log"
	"sync"
	"time"
)

const receiptKey = "receipt"

const receiptDateLayout = "2006-01-02"

type receiptState struct {
	Number int    `json:"number"`
	Date   string `json:"date"`
}

// ReceiptCounter hands out the cosmetic receipt number printed on order
// slips. It resets to 1 on the first order of each calendar day. It is not
// an order identifier.
type ReceiptCounter struct {
	mu    sync.Mutex
	kv    *KV
	state receiptState
}

// NewReceiptCounter loads the counter from kv, starting at 1 when missing
// or unreadable.
func NewReceiptCounter(kv *KV) (*ReceiptCounter, error) {
	c := &ReceiptCounter{kv: kv}
	var st receiptState
	found, err := kv.Get(receiptKey, &st)
	if err != nil {
		if !isMalformed(err) {
			return nil, err
		}
		log.Printf("WARN: stored receipt counter unreadable, resetting: %v", err)
		found = false
	}
	if !found || st.Number < 1 {
		st = receiptState{Number: 1}
	}
	c.state = st
	return c, nil
}

// Next returns the receipt number for an order completed at now and
// advances the counter. A date change since the last order resets the
// sequence to 1 before handing the number out.
func (c *ReceiptCounter) Next(now time.Time) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state
	today := now.Format(receiptDateLayout)
	if c.state.Date != today {
		c.state = receiptState{Number: 1, Date: today}
	}
	n := c.state.Number
	c.state.Number = n + 1
	if err := c.kv.Put(receiptKey, c.state); err != nil {
		c.state = prev
		return 0, err
	}
	return n, nil
}

// Peek returns the number the next order will get, without advancing.
func (c *ReceiptCounter) Peek(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Date != now.Format(receiptDateLayout) {
		return 1
	}
	return c.state.Number
}
