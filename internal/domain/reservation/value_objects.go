package reservation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var ErrNoteTooLong = errors.New("note is too long (max 500 characters)")

const MaxNoteLength = 500

// Money is an amount in whole currency units.
type Money struct {
	amount int64
}

func NewMoney(amount int64) Money {
	return Money{amount: amount}
}

func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount - other.amount}
}

type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: value}, nil
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
