package entities

import (
	"fmt"
	"time"
)

// InstanceStatus tracks where a physical copy currently is.
type InstanceStatus string

const (
	StatusAvailable   InstanceStatus = "available"
	StatusMaintenance InstanceStatus = "maintenance"
	StatusLoaned      InstanceStatus = "loaned"
	StatusReserved    InstanceStatus = "reserved"
)

// InstanceStatuses lists every valid status, in display order.
var InstanceStatuses = []InstanceStatus{
	StatusAvailable,
	StatusMaintenance,
	StatusLoaned,
	StatusReserved,
}

// Valid reports whether s is one of the known statuses.
func (s InstanceStatus) Valid() bool {
	for _, known := range InstanceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type Author struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"size:100" json:"first_name"`
	FamilyName  string     `gorm:"index;size:100" json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	Books       []Book     `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Name returns the display name, family name first.
func (a Author) Name() string {
	return a.FamilyName + " " + a.FirstName
}

// Lifespan returns the difference in years between death and birth.
// ok is false when either date is not recorded.
func (a Author) Lifespan() (years int, ok bool) {
	if a.DateOfBirth == nil || a.DateOfDeath == nil {
		return 0, false
	}
	return a.DateOfDeath.Year() - a.DateOfBirth.Year(), true
}

// LifespanDisplay renders the lifespan, or "unknown" when a date is missing.
func (a Author) LifespanDisplay() string {
	years, ok := a.Lifespan()
	if !ok {
		return UnknownDate
	}
	return fmt.Sprintf("%d", years)
}

// URL returns the canonical detail-page path.
func (a Author) URL() string {
	return fmt.Sprintf("/catalog/author/%d", a.ID)
}

// BirthDisplay formats the date of birth for display.
func (a Author) BirthDisplay() string {
	return FormatDate(a.DateOfBirth)
}

// DeathDisplay formats the date of death for display.
func (a Author) DeathDisplay() string {
	return FormatDate(a.DateOfDeath)
}

type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;size:100" json:"name"`
	Books     []Book    `gorm:"many2many:book_genres;" json:"books,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// URL returns the canonical detail-page path.
func (g Genre) URL() string {
	return fmt.Sprintf("/catalog/genre/%d", g.ID)
}

type Book struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"index;size:512" json:"title"`
	Summary   string         `gorm:"type:text" json:"summary"`
	ISBN      string         `gorm:"size:20" json:"isbn"`
	AuthorID  uint           `gorm:"index" json:"author_id"`
	Author    Author         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Genres    []Genre        `gorm:"many2many:book_genres;" json:"genres,omitempty"`
	Instances []BookInstance `gorm:"foreignKey:BookID" json:"instances,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// URL returns the canonical detail-page path.
func (b Book) URL() string {
	return fmt.Sprintf("/catalog/book/%d", b.ID)
}

type BookInstance struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	BookID    uint           `gorm:"index" json:"book_id"`
	Book      Book           `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Imprint   string         `gorm:"size:256" json:"imprint"`
	Status    InstanceStatus `gorm:"size:20;default:maintenance" json:"status"`
	DueBack   *time.Time     `json:"due_back,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// URL returns the canonical detail-page path.
func (bi BookInstance) URL() string {
	return fmt.Sprintf("/catalog/bookinstance/%d", bi.ID)
}

// DueBackDisplay formats the due-back date for display.
func (bi BookInstance) DueBackDisplay() string {
	return FormatDate(bi.DueBack)
}

// Overdue reports whether a loaned copy is past its due date.
func (bi BookInstance) Overdue(now time.Time) bool {
	return bi.Status == StatusLoaned && bi.DueBack != nil && bi.DueBack.Before(now)
}
