package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"travelagency/internal/repositories"
	"travelagency/internal/utils"
)

// IDScanner lists the ids currently held by the authoritative store.
type IDScanner interface {
	IDs(ctx context.Context) ([]string, repositories.Backend, error)
}

// SequenceStore persists the highest number ever allocated per prefix.
type SequenceStore interface {
	Last(ctx context.Context, name string) (int, error)
	Advance(ctx context.Context, name string, value int) error
}

// ReferenceAllocator hands out B001, B002, ... by scan-then-increment.
// It is only race-free under a single writer process: two processes
// allocating at once can pick the same number.
type ReferenceAllocator struct {
	Prefix    string
	Width     int
	Source    IDScanner
	Sequence  SequenceStore
	RequestID string
}

// NewBookingAllocator allocates B### booking references.
func NewBookingAllocator(src IDScanner, seq SequenceStore) ReferenceAllocator {
	return ReferenceAllocator{Prefix: "B", Width: 3, Source: src, Sequence: seq}
}

// Next allocates and records the next reference. It never fails: an
// unreadable store only narrows what it inspects.
func (a ReferenceAllocator) Next(ctx context.Context) string {
	ref, n := a.peek(ctx)
	if a.Sequence != nil {
		if err := a.Sequence.Advance(ctx, a.Prefix, n); err != nil {
			utils.LogEvent(a.RequestID, "reference", "sequence", "advance failed: "+err.Error())
		}
	}
	return ref
}

// Peek returns what Next would allocate without recording it.
func (a ReferenceAllocator) Peek(ctx context.Context) string {
	ref, _ := a.peek(ctx)
	return ref
}

func (a ReferenceAllocator) peek(ctx context.Context) (string, int) {
	var ids []string
	if a.Source != nil {
		scanned, _, err := a.Source.IDs(ctx)
		if err != nil {
			utils.LogEvent(a.RequestID, "reference", "scan", "id scan failed, using sequence only: "+err.Error())
		} else {
			ids = scanned
		}
	}

	floor := 0
	if a.Sequence != nil {
		last, err := a.Sequence.Last(ctx, a.Prefix)
		if err != nil {
			utils.LogEvent(a.RequestID, "reference", "sequence", "read failed: "+err.Error())
		} else {
			floor = last
		}
	}

	return NextReference(a.Prefix, a.Width, ids, floor)
}

// NextReference returns prefix+(max+1) over ids matching ^prefix\d+$ and
// floor, zero-padded to width. Numbers wider than width keep all digits.
func NextReference(prefix string, width int, ids []string, floor int) (string, int) {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `(\d+)$`)
	highest := floor
	for _, id := range ids {
		m := pattern.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	next := highest + 1
	return fmt.Sprintf("%s%0*d", prefix, width, next), next
}
