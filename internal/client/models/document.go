package models

import (
	"time"

	"github.com/google/uuid"
)

// Section groups vault documents.
type Section string

const (
	SectionHealthRecords Section = "health-records"
	SectionMedications   Section = "medications"
	SectionAppointments  Section = "appointments"
)

// Sections lists the vault sections in display order.
var Sections = []Section{SectionHealthRecords, SectionMedications, SectionAppointments}

// SectionInfo is the human description of a section.
type SectionInfo struct {
	Title       string
	Description string
}

var sectionInfo = map[Section]SectionInfo{
	SectionHealthRecords: {"Health Records", "Store and access your medical history, test results, and doctor's notes."},
	SectionMedications:   {"Medications", "Keep track of your current medications, dosages, and schedules."},
	SectionAppointments:  {"Appointments", "Manage your upcoming doctor appointments and reminders."},
}

// Info returns the title and description of s.
func (s Section) Info() (SectionInfo, bool) {
	i, ok := sectionInfo[s]
	return i, ok
}

// Document is a file held in the vault. Content lives only in memory.
type Document struct {
	ID        uuid.UUID
	Section   Section
	Name      string
	CreatedAt time.Time
	MIME      string
	Content   []byte
}

// Size is the content length in bytes.
func (d Document) Size() int { return len(d.Content) }
