package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studybuddy/backend/internal/model"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Class{},
		&model.Lesson{},
		&model.Question{},
		&model.ProgressRecord{},
	))
	return db
}

func TestProgressRepository_FindMissingIsNotFound(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))

	_, err := repo.Find("L1", "student-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProgressRepository_UpsertCreatesThenOverwrites(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(&model.ProgressRecord{
		LessonID:  "L1",
		StudentID: "student-1",
		Questions: datatypes.JSONSlice[model.QuestionScore]{{QuestionID: "q1", Score: 40}},
	}))

	require.NoError(t, repo.Upsert(&model.ProgressRecord{
		LessonID:         "L1",
		StudentID:        "student-1",
		Questions:        datatypes.JSONSlice[model.QuestionScore]{{QuestionID: "q1", Score: 90}},
		ConfidenceLevels: datatypes.NewJSONType(map[string]float64{"loops": 85}),
	}))

	record, err := repo.Find("L1", "student-1")
	require.NoError(t, err)
	require.Len(t, record.Questions, 1)
	assert.Equal(t, 90.0, record.Questions[0].Score)
	assert.Equal(t, map[string]float64{"loops": 85}, record.ConfidenceLevels.Data())
}

func TestProgressRepository_KeyIsPerStudentPerLesson(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(&model.ProgressRecord{LessonID: "L1", StudentID: "student-1"}))
	require.NoError(t, repo.Upsert(&model.ProgressRecord{LessonID: "L1", StudentID: "student-2"}))
	require.NoError(t, repo.Upsert(&model.ProgressRecord{LessonID: "L2", StudentID: "student-1"}))

	for _, key := range [][2]string{{"L1", "student-1"}, {"L1", "student-2"}, {"L2", "student-1"}} {
		record, err := repo.Find(key[0], key[1])
		require.NoError(t, err)
		assert.Equal(t, key[0], record.LessonID)
		assert.Equal(t, key[1], record.StudentID)
	}
}

func TestUserRepository_FindMissingIsNotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.FindByID("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
