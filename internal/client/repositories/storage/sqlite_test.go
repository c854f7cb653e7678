package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestGet_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	v, err := r.Get(ctx, "k")
	require.Error(t, err)
	require.Nil(t, v)
	require.Contains(t, err.Error(), "failed to get storage[k]")
}

func TestSet_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	require.NoError(t, db.Close())

	err := r.Set(context.Background(), "k", []byte("v"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to set storage[k]")
}

func TestDelete_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	require.NoError(t, db.Close())

	err := r.Delete(context.Background(), "k")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to delete storage[k]")
}

func TestClear_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	require.NoError(t, db.Close())

	err := r.Clear(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to clear storage")
}

func TestList_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	require.NoError(t, db.Close())

	_, err := r.List(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to list storage")
}

func TestSetMany_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO storage`)).
		WithArgs("activityDropdown", []byte(`["Vitals"]`)).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	r := NewSQLiteRepository(db)
	err = r.SetMany(context.Background(), map[string][]byte{"activityDropdown": []byte(`["Vitals"]`)})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to set 1 storage keys")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetMany_Commits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO storage`)).
		WithArgs("nurseNameDropdown", []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := NewSQLiteRepository(db)
	require.NoError(t, r.SetMany(context.Background(), map[string][]byte{"nurseNameDropdown": []byte(`[]`)}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NoRowsIsNotAnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM storage WHERE key = ?`)).
		WithArgs("nurseNotes").
		WillReturnError(sql.ErrNoRows)

	v, err := NewSQLiteRepository(db).Get(context.Background(), "nurseNotes")
	require.NoError(t, err)
	require.Nil(t, v)
}
