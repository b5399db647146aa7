package domain

import (
	"fmt"
	"strings"
)

// DefaultSlotTimes hourly slots from 10:00 to 17:00
var DefaultSlotTimes = []string{
	"10:00", "11:00", "12:00", "13:00",
	"14:00", "15:00", "16:00", "17:00",
}

// SlotCatalog is the ordered list of bookable time labels, identical for every date
type SlotCatalog struct {
	times []string
	index map[string]struct{}
}

// NewSlotCatalog builds a catalog from labels, preserving their order
func NewSlotCatalog(times []string) (*SlotCatalog, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("slot catalog is empty")
	}

	c := &SlotCatalog{
		times: make([]string, 0, len(times)),
		index: make(map[string]struct{}, len(times)),
	}

	for _, t := range times {
		label := strings.TrimSpace(t)
		if label == "" {
			return nil, fmt.Errorf("slot catalog contains an empty label")
		}
		if _, ok := c.index[label]; ok {
			return nil, fmt.Errorf("slot catalog contains duplicate label %q", label)
		}
		c.index[label] = struct{}{}
		c.times = append(c.times, label)
	}

	return c, nil
}

// DefaultSlotCatalog returns the catalog built from DefaultSlotTimes
func DefaultSlotCatalog() *SlotCatalog {
	c, _ := NewSlotCatalog(DefaultSlotTimes)
	return c
}

// Times returns a copy of the labels in catalog order
func (c *SlotCatalog) Times() []string {
	out := make([]string, len(c.times))
	copy(out, c.times)
	return out
}

// Contains returns true if label is a catalog slot
func (c *SlotCatalog) Contains(label string) bool {
	_, ok := c.index[label]
	return ok
}

// Without returns catalog labels not present in booked, in catalog order
func (c *SlotCatalog) Without(booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	out := make([]string, 0, len(c.times))
	for _, t := range c.times {
		if _, ok := taken[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}
