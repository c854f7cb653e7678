package models

import (
	"fmt"
	"strings"
	"time"
)

// Date and time layouts of a note, matching HTML date/time inputs.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Note is one submitted shift-note form. Notes are never edited after they
// are appended; the JSON names are the persisted format.
type Note struct {
	Date               string `json:"date"`
	Time               string `json:"time"`
	NurseName          string `json:"nurseName"`
	NurseDetails       string `json:"nurseDetails"`
	PatientName        string `json:"patientName"`
	PatientDetails     string `json:"patientDetails"`
	Activity           string `json:"activity"`
	ActivityDetails    string `json:"activityDetails"`
	Observation        string `json:"observation"`
	ObservationDetails string `json:"observationDetails"`
	AdditionalNotes    string `json:"additionalNotes"`
}

// NewNote returns an empty note stamped with the local date and time of now.
func NewNote(now time.Time) Note {
	return Note{
		Date: now.Format(DateLayout),
		Time: now.Format(TimeLayout),
	}
}

// Line renders the note in the export format:
//
//	2024-01-15 08:30 - Nurse: A. Smith (), Patient: J. Doe (Room 4), ...
func (n Note) Line() string {
	return lineBreaks.Replace(fmt.Sprintf("%s %s - Nurse: %s (%s), Patient: %s (%s), Activity: %s (%s), Observation: %s (%s), Additional Notes: %s",
		n.Date, n.Time,
		n.NurseName, n.NurseDetails,
		n.PatientName, n.PatientDetails,
		n.Activity, n.ActivityDetails,
		n.Observation, n.ObservationDetails,
		n.AdditionalNotes))
}

// lineBreaks flattens multi-line field values so each note stays on one line.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Fields exposes the note under its JSON names, for filter expressions.
func (n Note) Fields() map[string]any {
	return map[string]any{
		"date":               n.Date,
		"time":               n.Time,
		"nurseName":          n.NurseName,
		"nurseDetails":       n.NurseDetails,
		"patientName":        n.PatientName,
		"patientDetails":     n.PatientDetails,
		"activity":           n.Activity,
		"activityDetails":    n.ActivityDetails,
		"observation":        n.Observation,
		"observationDetails": n.ObservationDetails,
		"additionalNotes":    n.AdditionalNotes,
	}
}

// Select sets the selected option value for c.
func (n *Note) Select(c Category, value string) {
	switch c {
	case CategoryNurseName:
		n.NurseName = value
	case CategoryPatientName:
		n.PatientName = value
	case CategoryActivity:
		n.Activity = value
	case CategoryObservation:
		n.Observation = value
	}
}

// SetDetails sets the free-text details that go with category c.
func (n *Note) SetDetails(c Category, value string) {
	switch c {
	case CategoryNurseName:
		n.NurseDetails = value
	case CategoryPatientName:
		n.PatientDetails = value
	case CategoryActivity:
		n.ActivityDetails = value
	case CategoryObservation:
		n.ObservationDetails = value
	}
}
