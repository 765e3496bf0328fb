package models

import "strings"

// List is a named, ordered collection of todo items.
type List struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Items []*Item `json:"items"`
}

// Item is a single todo entry. Tag holds zero or more comma separated tokens.
type Item struct {
	ID       int64  `json:"id"`
	ListID   int64  `json:"listId"`
	Title    string `json:"title"`
	Done     bool   `json:"done"`
	Priority int    `json:"priority"`
	Note     string `json:"note"`
	Color    string `json:"color"`
	Tag      string `json:"tag"`
}

// Persisted reports whether the backend has assigned the item an identifier.
func (i *Item) Persisted() bool {
	return i.ID != 0
}

// Blank reports whether the title is empty or whitespace only.
func (i *Item) Blank() bool {
	return strings.TrimSpace(i.Title) == ""
}

// ItemDetail is the payload of an item-detail update: everything except title and done.
type ItemDetail struct {
	ListID   int64  `json:"listId"`
	Priority int    `json:"priority"`
	Note     string `json:"note"`
	Color    string `json:"color"`
	Tag      string `json:"tag"`
}

// PriorityLevel is an enumerated priority with its display label.
type PriorityLevel struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
}

// PriorityLevels enumerates the levels the backend supplies, lowest first.
var PriorityLevels = []PriorityLevel{
	{Value: 0, Name: "None"},
	{Value: 1, Name: "Low"},
	{Value: 2, Name: "Medium"},
	{Value: 3, Name: "High"},
}

// ValidPriority reports whether value is one of PriorityLevels.
func ValidPriority(value int) bool {
	for _, level := range PriorityLevels {
		if level.Value == value {
			return true
		}
	}
	return false
}
