package model

// UnscheduledRecord accumulates the component kinds of one course that
// exhausted their placement budget, with the reasons seen along the way.
type UnscheduledRecord struct {
	Department string
	Semester   int
	Code       string
	Name       string
	Faculty    string
	Section    string
	Kinds      []ComponentKind
	Reasons    []string
}

// Ledger deduplicates unscheduled components by course code. Repeated
// records for a code merge their kinds and reasons instead of appending a
// new row.
type Ledger struct {
	order  []*UnscheduledRecord
	byCode map[string]*UnscheduledRecord
}

func NewLedger() *Ledger {
	return &Ledger{byCode: make(map[string]*UnscheduledRecord)}
}

// Record notes a failed component. Idempotent per course code: a second
// call with the same kind or reason leaves the record unchanged.
func (l *Ledger) Record(department string, semester int, code, name, faculty string, kind ComponentKind, section, reason string) {
	rec, ok := l.byCode[code]
	if !ok {
		rec = &UnscheduledRecord{
			Department: department,
			Semester:   semester,
			Code:       code,
			Name:       name,
			Faculty:    faculty,
			Section:    section,
		}
		l.byCode[code] = rec
		l.order = append(l.order, rec)
	}
	if !containsKind(rec.Kinds, kind) {
		rec.Kinds = append(rec.Kinds, kind)
	}
	if reason != "" && !containsString(rec.Reasons, reason) {
		rec.Reasons = append(rec.Reasons, reason)
	}
}

// Records returns one record per unique course code in first-seen order.
func (l *Ledger) Records() []*UnscheduledRecord {
	return l.order
}

func (l *Ledger) Len() int { return len(l.order) }

func containsKind(s []ComponentKind, k ComponentKind) bool {
	for _, v := range s {
		if v == k {
			return true
		}
	}
	return false
}

func containsString(s []string, e string) bool {
	for _, v := range s {
		if v == e {
			return true
		}
	}
	return false
}
