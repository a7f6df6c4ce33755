package model

import "sort"

type slotSet map[int]struct{}

// Tracker is the single source of truth for room and faculty occupancy:
// per resource, per day, the set of consumed slot indices. It is checked
// during search and mutated only by successful placements.
type Tracker struct {
	days    int
	rooms   map[string][]slotSet
	faculty map[string][]slotSet
}

func NewTracker(days int) *Tracker {
	return &Tracker{
		days:    days,
		rooms:   make(map[string][]slotSet),
		faculty: make(map[string][]slotSet),
	}
}

func (t *Tracker) daySets(m map[string][]slotSet, key string) []slotSet {
	sets, ok := m[key]
	if !ok {
		sets = make([]slotSet, t.days)
		for d := range sets {
			sets[d] = make(slotSet)
		}
		m[key] = sets
	}
	return sets
}

// RoomFree reports whether the room is free on day for every given slot.
func (t *Tracker) RoomFree(room string, day int, slots []int) bool {
	sets := t.daySets(t.rooms, room)
	for _, s := range slots {
		if _, busy := sets[day][s]; busy {
			return false
		}
	}
	return true
}

func (t *Tracker) OccupyRoom(room string, day int, slots []int) {
	sets := t.daySets(t.rooms, room)
	for _, s := range slots {
		sets[day][s] = struct{}{}
	}
}

// FacultyFreeAt reports whether the faculty member is unbooked at one slot.
func (t *Tracker) FacultyFreeAt(fac string, day, slot int) bool {
	sets, ok := t.faculty[fac]
	if !ok {
		return true
	}
	_, busy := sets[day][slot]
	return !busy
}

func (t *Tracker) OccupyFaculty(fac string, day int, slots []int) {
	sets := t.daySets(t.faculty, fac)
	for _, s := range slots {
		sets[day][s] = struct{}{}
	}
}

// FacultySlots returns the sorted slot indices already booked for a faculty
// member on day.
func (t *Tracker) FacultySlots(fac string, day int) []int {
	sets, ok := t.faculty[fac]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(sets[day]))
	for s := range sets[day] {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// RoomSlots returns the sorted slot indices consumed for a room on day.
func (t *Tracker) RoomSlots(room string, day int) []int {
	sets, ok := t.rooms[room]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(sets[day]))
	for s := range sets[day] {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}

// Rooms lists every room the tracker has seen.
func (t *Tracker) Rooms() []string {
	out := make([]string, 0, len(t.rooms))
	for r := range t.rooms {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
