package appender

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

var ErrWidth = errors.New("record width does not match range")

// Store is the tabular store an Appender reads from and writes to. Rows are
// returned top to bottom and the store may omit trailing empty rows.
type Store interface {
	Read(ctx context.Context, spreadsheet string, area string) ([][]string, error)
	Write(ctx context.Context, spreadsheet string, area string, rows [][]string) error
}

// Append reads the range, picks the first available row and overwrites it
// with fields. The read and the write are separate requests, so concurrent
// writers to the same sheet can collide - use an Appender to serialise them.
func Append(ctx context.Context, store Store, spreadsheet string, r Range, fields []string) (Placement, error) {
	if err := r.Validate(); err != nil {
		return Placement{}, err
	}

	if len(fields) != r.Width() {
		return Placement{}, fmt.Errorf("%w (%v fields, %v columns in %v)", ErrWidth, len(fields), r.Width(), r)
	}

	rows, err := store.Read(ctx, spreadsheet, r.Observation())
	if err != nil {
		return Placement{}, fmt.Errorf("unable to read %v (%w)", r, err)
	}

	placement := Locate(rows, r.Top)
	target := r.Row(placement.Row)

	log.WithFields(log.Fields{
		"spreadsheet": spreadsheet,
		"fetched":     len(rows),
		"row":         placement.Row,
		"placement":   placement.Kind,
	}).Debugf("writing record to %v", target)

	record := make([]string, len(fields))
	copy(record, fields)

	if err := store.Write(ctx, spreadsheet, target, [][]string{record}); err != nil {
		return Placement{}, fmt.Errorf("unable to write %v (%w)", target, err)
	}

	return placement, nil
}

// Appender serialises appends per worksheet within this process. It does
// nothing for writers in other processes.
type Appender struct {
	store Store
	guard sync.Mutex
	locks map[string]*sync.Mutex
}

func NewAppender(store Store) *Appender {
	return &Appender{
		store: store,
		locks: map[string]*sync.Mutex{},
	}
}

func (a *Appender) Append(ctx context.Context, spreadsheet string, r Range, fields []string) (Placement, error) {
	lock := a.lock(spreadsheet, r.Sheet)

	lock.Lock()
	defer lock.Unlock()

	return Append(ctx, a.store, spreadsheet, r, fields)
}

func (a *Appender) lock(spreadsheet, sheet string) *sync.Mutex {
	key := spreadsheet + "\x00" + sheet

	a.guard.Lock()
	defer a.guard.Unlock()

	l, ok := a.locks[key]
	if !ok {
		l = &sync.Mutex{}
		a.locks[key] = l
	}

	return l
}
