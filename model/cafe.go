package model

import (
	"encoding/json"
	"fmt"
	"gorm.io/gorm"
	"strconv"
	"strings"
)

// CafeRecord is the café as the form edits it and as it travels to /cafes.
type CafeRecord struct {
	ID        string            `json:"id"`
	OwnerID   string            `json:"ownerId"`
	Name      string            `json:"name"`
	Address   string            `json:"address"`
	Contact   string            `json:"contact"`
	Notice    string            `json:"notice"`
	CafeImg   Image             `json:"cafeImg"`
	Rating    string            `json:"rating"`
	OpenTime  string            `json:"openTime"`
	CloseTime string            `json:"closeTime"`
	Facility  []Facility        `json:"facility"`
	Post      []json.RawMessage `json:"post,omitempty"`
	Menu      []MenuItem        `json:"menu,omitempty"`
}

// NewCafeRecord returns the all-empty record a freshly mounted form starts from.
func NewCafeRecord() CafeRecord {
	return CafeRecord{
		Facility: []Facility{},
		Post:     []json.RawMessage{},
		Menu:     []MenuItem{},
	}
}

// MarshalJSON keeps empty post and menu lists as [] when they were
// initialized, and drops them when nil.
func (r CafeRecord) MarshalJSON() ([]byte, error) {
	type wire CafeRecord
	out := struct {
		wire
		Post *[]json.RawMessage `json:"post,omitempty"`
		Menu *[]MenuItem        `json:"menu,omitempty"`
	}{wire: wire(r)}
	if r.Post != nil {
		out.Post = &r.Post
	}
	if r.Menu != nil {
		out.Menu = &r.Menu
	}
	return json.Marshal(out)
}

type Facility struct {
	Name    string `json:"name"`
	Title   string `json:"title,omitempty"`
	Checked bool   `json:"checked"`
}

type MenuItem struct {
	ID      string    `json:"id,omitempty"`
	Type    string    `json:"type"`
	Name    string    `json:"name"`
	Price   string    `json:"price"`
	Comment []Comment `json:"comment,omitempty"`
}

type Comment struct {
	ID       string `json:"id"`
	MemberID string `json:"memberId"`
	Content  string `json:"content"`
}

// Cafe is the persisted form of a CafeRecord.
type Cafe struct {
	gorm.Model
	OwnerID    uint           `json:"owner_id" gorm:"index"`
	Name       string         `json:"name"`
	Address    string         `json:"address"`
	Contact    string         `json:"contact"`
	Notice     string         `json:"notice"`
	Image      string         `json:"image"`
	Rating     float64        `json:"rating"`
	OpenTime   string         `json:"open_time"`
	CloseTime  string         `json:"close_time"`
	Facilities []CafeFacility `json:"facilities" gorm:"foreignKey:CafeID"`
}

type CafeFacility struct {
	gorm.Model
	CafeID  uint   `json:"cafe_id" gorm:"index"`
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// CafeFromRecord maps a submitted record onto a new entity. ID and owner
// are left to the caller; the record's own values for them are not trusted.
func CafeFromRecord(r CafeRecord) Cafe {
	rating, _ := ParseRating(r.Rating)
	cafe := Cafe{
		Name:      r.Name,
		Address:   r.Address,
		Contact:   r.Contact,
		Notice:    r.Notice,
		Image:     r.CafeImg.String(),
		Rating:    rating,
		OpenTime:  r.OpenTime,
		CloseTime: r.CloseTime,
	}
	seen := make(map[string]bool, len(r.Facility))
	for _, f := range r.Facility {
		if f.Name == "" || seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		cafe.Facilities = append(cafe.Facilities, CafeFacility{Name: f.Name, Checked: f.Checked})
	}
	return cafe
}

// ParseRating reads the wire rating. An empty string is an unrated café.
func ParseRating(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid rating %q: %w", s, err)
	}
	return v, nil
}

// FormatRating is the inverse of ParseRating; zero is written as unrated.
func FormatRating(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Record converts the entity back to its wire shape.
func (c *Cafe) Record() CafeRecord {
	r := NewCafeRecord()
	r.ID = strconv.FormatUint(uint64(c.ID), 10)
	if c.OwnerID != 0 {
		r.OwnerID = strconv.FormatUint(uint64(c.OwnerID), 10)
	}
	r.Name = c.Name
	r.Address = c.Address
	r.Contact = c.Contact
	r.Notice = c.Notice
	r.CafeImg = ImageRef(c.Image)
	r.Rating = FormatRating(c.Rating)
	r.OpenTime = c.OpenTime
	r.CloseTime = c.CloseTime
	for _, f := range c.Facilities {
		r.Facility = append(r.Facility, Facility{Name: f.Name, Checked: f.Checked})
	}
	return r
}

// HasFacility reports whether the named facility is stored as checked.
func (c *Cafe) HasFacility(name string) bool {
	for _, f := range c.Facilities {
		if f.Name == name {
			return f.Checked
		}
	}
	return false
}
