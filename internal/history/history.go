// Package history assembles the bounded message context sent upstream with
// each question: a system preamble, up to N recent turns, then the new
// question. The window size is fixed by configuration, so upstream cost
// does not grow with conversation length.
package history

import (
	"fmt"

	"chatrelay/internal/chatlog"
	"chatrelay/internal/llm"
)

// DefaultPreamble is used when no system prompt is configured.
const DefaultPreamble = "You are a helpful assistant. Answer concisely and accurately."

type Assembler struct {
	log      *chatlog.Log
	pairs    int
	preamble string
}

// NewAssembler builds an assembler keeping up to pairs recent turns.
// An empty preamble falls back to DefaultPreamble.
func NewAssembler(log *chatlog.Log, pairs int, preamble string) *Assembler {
	if preamble == "" {
		preamble = DefaultPreamble
	}
	return &Assembler{log: log, pairs: pairs, preamble: preamble}
}

// Build returns the ordered message sequence for one question. Turns are
// emitted oldest-first; a turn missing either side contributes only the
// side it has.
func (a *Assembler) Build(userID, question string) ([]llm.Message, error) {
	recent, err := a.log.RecentTurns(userID, a.pairs)
	if err != nil {
		return nil, fmt.Errorf("recent turns: %w", err)
	}

	msgs := make([]llm.Message, 0, 2*len(recent)+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: a.preamble})
	for _, t := range recent {
		if t.Question != "" {
			msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: t.Question})
		}
		if t.Answer != "" {
			msgs = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: t.Answer})
		}
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: question})
	return msgs, nil
}
