package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LikeCount is a like counter that also accepts numeric strings ("684") on input.
type LikeCount int

// UnmarshalJSON implements json.Unmarshaler.
func (l *LikeCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("likes must be an integer, got %q", s)
		}
		*l = LikeCount(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("likes must be an integer: %w", err)
	}
	*l = LikeCount(n)
	return nil
}

// Likes returns a pointer to a LikeCount, handy for building drafts and patches.
func Likes(n int) *LikeCount {
	l := LikeCount(n)
	return &l
}
