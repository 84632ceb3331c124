package comment

import (
	"errors"
	"strings"
)

const MaxTextLength = 1000

var (
	ErrEmptyText          = errors.New("comment text cannot be empty")
	ErrTextTooLong        = errors.New("comment text exceeds maximum length")
	ErrBookingNotFinished = errors.New("author has no finished booking for this item")
)

type Text struct {
	value string
}

func NewText(s string) (Text, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Text{}, ErrEmptyText
	}
	if len(t) > MaxTextLength {
		return Text{}, ErrTextTooLong
	}
	return Text{value: t}, nil
}

func (t Text) String() string { return t.value }
