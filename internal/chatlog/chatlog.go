// Package chatlog records question/answer turns, one JSON array file for
// all users. Turns are append-only; file order is insertion order.
package chatlog

import (
	"fmt"

	"chatrelay/internal/store"
)

// Turn is one recorded exchange. Timestamp is unix milliseconds and is not
// guaranteed monotonic across clock adjustments; retrieval order follows
// file order, not timestamps.
type Turn struct {
	UserID    string `json:"userId"`
	Role      string `json:"role"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Timestamp int64  `json:"timestamp"`
}

type Log struct {
	table *store.Table[Turn]
}

func NewLog(table *store.Table[Turn]) *Log {
	return &Log{table: table}
}

// Append persists one new turn. The whole collection is rewritten, which is
// O(total turns) per call.
func (l *Log) Append(turn Turn) error {
	return l.table.Update(func(turns []Turn) ([]Turn, error) {
		return append(turns, turn), nil
	})
}

// RecentTurns returns up to n most recent turns for userID, oldest-first
// within the returned slice.
func (l *Log) RecentTurns(userID string, n int) ([]Turn, error) {
	if n <= 0 {
		return []Turn{}, nil
	}
	all, err := l.table.Load()
	if err != nil {
		return nil, fmt.Errorf("load turns: %w", err)
	}
	var mine []Turn
	for _, t := range all {
		if t.UserID == userID {
			mine = append(mine, t)
		}
	}
	if len(mine) > n {
		mine = mine[len(mine)-n:]
	}
	return mine, nil
}
