package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/nursenotes/internal/client/models"
	"github.com/dmitrijs2005/nursenotes/internal/client/repositories/storage"
	"github.com/dmitrijs2005/nursenotes/internal/common"
	"github.com/dmitrijs2005/nursenotes/internal/confirm"
	"github.com/dmitrijs2005/nursenotes/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shiftNote() models.Note {
	return models.Note{
		Date:               "2024-01-15",
		Time:               "08:30",
		NurseName:          "A. Smith",
		NurseDetails:       "",
		PatientName:        "J. Doe",
		PatientDetails:     "Room 4",
		Activity:           "Vitals",
		ActivityDetails:    "BP 120/80",
		Observation:        "Stable",
		ObservationDetails: "",
		AdditionalNotes:    "No issues",
	}
}

const shiftLine = "2024-01-15 08:30 - Nurse: A. Smith (), Patient: J. Doe (Room 4), Activity: Vitals (BP 120/80), Observation: Stable (), Additional Notes: No issues"

func newNotes() (NoteService, *storage.MemoryRepository) {
	repo := storage.NewMemoryRepository()
	return NewNoteService(repo, logging.Discard()), repo
}

func TestNoteService_SubmitScenario(t *testing.T) {
	ctx := context.Background()
	s, _ := newNotes()

	require.NoError(t, s.Append(ctx, shiftNote()))

	notes, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.Note{shiftNote()}, notes)

	text, err := s.ExportText(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(text), shiftLine)
	assert.Equal(t, shiftLine, Format(shiftNote()))
}

func TestNoteService_AppendGrowsByOne(t *testing.T) {
	ctx := context.Background()
	s, _ := newNotes()

	for i := range 5 {
		before, err := s.LoadAll(ctx)
		require.NoError(t, err)

		n := shiftNote()
		n.AdditionalNotes = fmt.Sprintf("note %d", i)
		require.NoError(t, s.Append(ctx, n))

		after, err := s.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, after, len(before)+1)
		require.Equal(t, before, after[:len(before)])
		require.Equal(t, n, after[len(after)-1])
	}
}

func TestNoteService_LoadAllEmpty(t *testing.T) {
	s, _ := newNotes()
	notes, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, notes)
	require.Empty(t, notes)
}

func TestNoteService_CorruptStoreIsMasked(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewMemoryRepository()
	log, buf := captureLogger()
	s := NewNoteService(repo, log)

	require.NoError(t, repo.Set(ctx, common.NotesStorageKey, []byte(`{not json`)))

	notes, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Empty(t, notes)
	assert.Contains(t, buf.String(), "corrupt=true")

	require.NoError(t, s.Append(ctx, shiftNote()))
	notes, err = s.LoadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.Note{shiftNote()}, notes)
}

func TestNoteService_WrongShapeIsCorrupt(t *testing.T) {
	ctx := context.Background()
	s, repo := newNotes()
	require.NoError(t, repo.Set(ctx, common.NotesStorageKey, []byte(`{"date":"2024-01-15"}`)))

	notes, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Empty(t, notes)
}

func TestNoteService_ClearAll(t *testing.T) {
	ctx := context.Background()
	s, _ := newNotes()
	require.NoError(t, s.Append(ctx, shiftNote()))
	require.NoError(t, s.Append(ctx, shiftNote()))

	require.NoError(t, s.ClearAll(ctx, granted(t)))

	notes, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Empty(t, notes)

	// clearing an empty store is fine too
	require.NoError(t, s.ClearAll(ctx, granted(t)))
}

func TestNoteService_ClearAllRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	s, _ := newNotes()
	require.NoError(t, s.Append(ctx, shiftNote()))

	err := s.ClearAll(ctx, confirm.Token{})
	require.ErrorIs(t, err, common.ErrNotConfirmed)

	refused, err := confirm.Ask(ctx, stubPrompter(false), "Clear all notes?")
	require.NoError(t, err)
	require.ErrorIs(t, s.ClearAll(ctx, refused), common.ErrNotConfirmed)

	notes, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
}

type stubPrompter bool

func (p stubPrompter) Confirm(context.Context, string) (bool, error) { return bool(p), nil }

func TestNoteService_ExportTextJoinsWithNewline(t *testing.T) {
	ctx := context.Background()
	s, _ := newNotes()

	text, err := s.ExportText(ctx)
	require.NoError(t, err)
	require.Empty(t, text)

	second := shiftNote()
	second.Time = "09:00"
	require.NoError(t, s.Append(ctx, shiftNote()))
	require.NoError(t, s.Append(ctx, second))

	text, err = s.ExportText(ctx)
	require.NoError(t, err)
	require.Equal(t, shiftLine+"\n"+Format(second), string(text))
}

func TestNoteService_ExportTextOneLinePerNote(t *testing.T) {
	ctx := context.Background()
	s, _ := newNotes()

	multi := shiftNote()
	multi.AdditionalNotes = "Refused breakfast.\nAte lunch."
	require.NoError(t, s.Append(ctx, multi))
	require.NoError(t, s.Append(ctx, shiftNote()))

	text, err := s.ExportText(ctx)
	require.NoError(t, err)
	lines := strings.Split(string(text), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Additional Notes: Refused breakfast. Ate lunch.")

	all, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Refused breakfast.\nAte lunch.", all[0].AdditionalNotes)
}

func TestNoteService_Export(t *testing.T) {
	ctx := context.Background()
	s, _ := newNotes()
	require.NoError(t, s.Append(ctx, shiftNote()))

	dir := t.TempDir()
	now := time.Date(2024, 1, 15, 17, 0, 0, 0, time.Local)

	path, err := s.Export(ctx, dir, now)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "nurse_notes_2024-01-15.txt"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, shiftLine, string(got))
}

func TestNoteService_Filter(t *testing.T) {
	ctx := context.Background()
	s, _ := newNotes()

	meds := shiftNote()
	meds.Activity = "Meds"
	other := shiftNote()
	other.PatientName = "R. Roe"

	for _, n := range []models.Note{shiftNote(), meds, other} {
		require.NoError(t, s.Append(ctx, n))
	}

	got, err := s.Filter(ctx, `patientName == "J. Doe" && activity == "Vitals"`)
	require.NoError(t, err)
	require.Equal(t, []models.Note{shiftNote()}, got)

	got, err = s.Filter(ctx, `patientName == "J. Doe"`)
	require.NoError(t, err)
	require.Equal(t, []models.Note{shiftNote(), meds}, got)

	got, err = s.Filter(ctx, `additionalNotes contains "issues"`)
	require.NoError(t, err)
	require.Len(t, got, 3)

	got, err = s.Filter(ctx, "  ")
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestNoteService_FilterInvalid(t *testing.T) {
	s, _ := newNotes()
	ctx := context.Background()

	for _, bad := range []string{`patientName ==`, `unknownField == "x"`, `patientName`} {
		_, err := s.Filter(ctx, bad)
		require.ErrorIs(t, err, common.ErrInvalidFilter, bad)
	}
}

func TestNoteService_StorageErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	s := NewNoteService(failingRepo{}, logging.Discard())

	_, err := s.LoadAll(ctx)
	require.ErrorIs(t, err, errDisk)
	require.ErrorIs(t, s.Append(ctx, shiftNote()), errDisk)
	require.ErrorIs(t, s.ClearAll(ctx, granted(t)), errDisk)
	_, err = s.ExportText(ctx)
	require.ErrorIs(t, err, errDisk)
}
