package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v2"

	"github.com/wizenheimer/ring"
)

// Script is a list of ring operations, e.g.
//
//	ops:
//	  - {op: append, key: "1", where: back}
//	  - {op: append, key: "3", where: front}
//	  - {op: insert-after, key: x, target: "1", which: 1}
//	  - {op: erase, key: "1"}
//	  - {op: print}
type Script struct {
	Ops []Op `yaml:"ops"`
}

type Op struct {
	Op     string `yaml:"op"`
	Key    string `yaml:"key,omitempty"`
	Target string `yaml:"target,omitempty"`
	Which  *int   `yaml:"which,omitempty"` // first occurrence when absent
	Where  string `yaml:"where,omitempty"`
}

var ErrUnknownOp = errors.New("unknown op")

func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshaling script: %w", err)
	}
	return &s, nil
}

func parseWhere(s string) (ring.Where, error) {
	switch s {
	case "", "back":
		return ring.Back, nil
	case "front":
		return ring.Front, nil
	default:
		return 0, fmt.Errorf("where `%s`: must be `front` or `back`", s)
	}
}

// Run applies every op to r, writing results and diagnostics to w. Failed
// inserts are reported and the script continues; malformed ops stop it.
func (s *Script) Run(r *ring.Ring[string], w io.Writer, logger *slog.Logger) error {
	for i, op := range s.Ops {
		logger.Debug("running op", slog.Int("index", i), slog.String("op", op.Op))
		if err := op.apply(r, w); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op.Op, err)
		}
	}
	return nil
}

func (op Op) apply(r *ring.Ring[string], w io.Writer) error {
	which := 1
	if op.Which != nil {
		which = *op.Which
	}

	switch op.Op {
	case "append":
		where, err := parseWhere(op.Where)
		if err != nil {
			return err
		}
		r.Append(op.Key, where)
		return nil
	case "insert-after":
		return reportInsert(w, op, r.InsertAfter(op.Key, op.Target, which))
	case "insert-at":
		return reportInsert(w, op, r.InsertAt(op.Key, op.Target, which))
	case "erase":
		_, err := fmt.Fprintf(w, "erase %s: %t\n", op.Key, r.Erase(op.Key))
		return err
	case "find":
		_, err := fmt.Fprintf(w, "find %s: %t\n", op.Key, r.Contains(op.Key))
		return err
	case "clear":
		r.Clear()
		return nil
	case "print":
		return r.Print(w)
	case "reverse-print":
		return r.ReversePrint(w)
	default:
		return fmt.Errorf("%w `%s`", ErrUnknownOp, op.Op)
	}
}

func reportInsert(w io.Writer, op Op, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ring.ErrNotFound) || errors.Is(err, ring.ErrEmptyRing) ||
		errors.Is(err, ring.ErrInvalidOccurrence) {
		_, werr := fmt.Fprintf(w, "%s %s: %v\n", op.Op, op.Key, err)
		return werr
	}
	return err
}
