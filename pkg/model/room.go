package model

import "strings"

// RoomType matches the type column of the room inventory.
type RoomType string

const (
	RoomLecture     RoomType = "LECTURE_ROOM"
	RoomComputerLab RoomType = "COMPUTER_LAB"
	RoomSeater120   RoomType = "SEATER_120"
	RoomSeater240   RoomType = "SEATER_240"
)

// Room is one row of the room inventory. Immutable once loaded.
type Room struct {
	Number   string `csv:"roomNumber"`
	TypeSTR  string `csv:"type"`
	Capacity int    `csv:"capacity"`

	Type RoomType `csv:"-"`
}

// Normalize fixes up the raw CSV fields: trims the number, upper-cases the
// type, and defaults the capacity to 60 when missing or nonsense.
func (r *Room) Normalize() {
	r.Number = strings.TrimSpace(r.Number)
	r.Type = RoomType(strings.ToUpper(strings.TrimSpace(r.TypeSTR)))
	if r.Capacity <= 0 {
		r.Capacity = 60
	}
}

// RoomPool buckets the room inventory by type and, for lecture rooms, by
// capacity band. Small is <60 seats, Medium 60-120, Large above 120 (plus
// any SEATER_120 room), Auditorium is the SEATER_240 tier.
type RoomPool struct {
	Lecture     []string
	ComputerLab []string
	Large       []string
	Auditorium  []string
	Small       []string
	Medium      []string
}

// NewRoomPool categorizes rooms the way the allocator consumes them.
func NewRoomPool(rooms []*Room) *RoomPool {
	p := &RoomPool{}
	for _, r := range rooms {
		switch r.Type {
		case RoomLecture:
			p.Lecture = append(p.Lecture, r.Number)
			switch {
			case r.Capacity < 60:
				p.Small = append(p.Small, r.Number)
			case r.Capacity <= 120:
				p.Medium = append(p.Medium, r.Number)
			default:
				p.Large = append(p.Large, r.Number)
			}
		case RoomComputerLab:
			p.ComputerLab = append(p.ComputerLab, r.Number)
		case RoomSeater120:
			p.Large = append(p.Large, r.Number)
		case RoomSeater240:
			p.Auditorium = append(p.Auditorium, r.Number)
		}
	}
	return p
}

// ByType returns the pool matching a component's room requirement.
func (p *RoomPool) ByType(t RoomType) []string {
	switch t {
	case RoomComputerLab:
		return p.ComputerLab
	case RoomSeater240:
		return p.Auditorium
	default:
		return p.Lecture
	}
}

// TierFor returns candidate rooms for an expected enrollment, smallest
// sufficient tier first. The lecture pool is the final fallback so an odd
// inventory still yields candidates.
func (p *RoomPool) TierFor(count int) []string {
	var pool []string
	switch {
	case count > 120:
		pool = append(pool, p.Large...)
		pool = append(pool, p.Auditorium...)
	case count > 60:
		pool = append(pool, p.Medium...)
		pool = append(pool, p.Large...)
	default:
		pool = append(pool, p.Small...)
		pool = append(pool, p.Medium...)
		pool = append(pool, p.Large...)
	}
	if len(pool) == 0 {
		pool = append(pool, p.Lecture...)
	}
	return pool
}
