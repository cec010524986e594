package entities

import (
	"errors"
)

// Common errors
var (
	ErrUpstream   = errors.New("upstream identity service failure")
	ErrStoreRead  = errors.New("roommate store read failure")
	ErrStoreWrite = errors.New("roommate store write failure")
)

// Roommate represents one generated person persisted in the roommate collection
type Roommate struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Phone string `json:"phone"`
}
