package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studybuddy/backend/internal/dto"
	"github.com/studybuddy/backend/internal/model"
	"github.com/studybuddy/backend/internal/repository"
	"gorm.io/gorm"
)

func newClassService(db *gorm.DB) ClassService {
	return NewClassService(
		repository.NewClassRepository(db),
		repository.NewLessonRepository(db),
		repository.NewUserRepository(db),
		db,
	)
}

func seedUser(t *testing.T, db *gorm.DB, id, role string) {
	t.Helper()
	require.NoError(t, db.Create(&model.User{ID: id, Name: id, Role: role, Classes: []model.ClassRef{}}).Error)
}

func TestCreateClass_AppendsTeacherRef(t *testing.T) {
	db := newTestDB(t)
	svc := newClassService(db)
	seedUser(t, db, "teacher-1", model.RoleTeacher)

	resp, err := svc.CreateClass("teacher-1", dto.CreateClassRequest{Name: "Algorithms"})
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", resp.Name)
	assert.True(t, resp.Active)
	assert.NotEmpty(t, resp.ID)

	var class model.Class
	require.NoError(t, db.First(&class, "id = ?", resp.ID).Error)
	assert.Equal(t, []string{"teacher-1"}, []string(class.TeacherIDs))

	var teacher model.User
	require.NoError(t, db.First(&teacher, "id = ?", "teacher-1").Error)
	require.Len(t, teacher.Classes, 1)
	assert.Equal(t, resp.ID, teacher.Classes[0].ClassID)
	assert.Empty(t, teacher.Classes[0].LessonID)
}

func TestCreateClass_UnknownTeacherIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newClassService(db)

	_, err := svc.CreateClass("ghost", dto.CreateClassRequest{Name: "Algorithms"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestAssignStudent_SetsCursorToFirstLesson(t *testing.T) {
	db := newTestDB(t)
	svc := newClassService(db)
	seedClassWithLessons(t, db, "class-1", "L1", "L2")
	seedUser(t, db, "student-1", model.RoleStudent)

	require.NoError(t, svc.AssignStudent("class-1", "student-1"))

	var class model.Class
	require.NoError(t, db.First(&class, "id = ?", "class-1").Error)
	assert.Equal(t, []string{"student-1"}, []string(class.StudentIDs))

	var student model.User
	require.NoError(t, db.First(&student, "id = ?", "student-1").Error)
	require.Len(t, student.Classes, 1)
	assert.Equal(t, "class-1", student.Classes[0].ClassID)
	assert.Equal(t, "L1", student.Classes[0].LessonID)
}

func TestAssignStudent_BlankCursorWhenClassHasNoLessons(t *testing.T) {
	db := newTestDB(t)
	svc := newClassService(db)
	seedClassWithLessons(t, db, "class-1")
	seedUser(t, db, "student-1", model.RoleStudent)

	require.NoError(t, svc.AssignStudent("class-1", "student-1"))

	var student model.User
	require.NoError(t, db.First(&student, "id = ?", "student-1").Error)
	require.Len(t, student.Classes, 1)
	assert.Empty(t, student.Classes[0].LessonID)
}

func TestAssignStudent_RejectsDuplicateEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := newClassService(db)
	seedClassWithLessons(t, db, "class-1", "L1")
	seedUser(t, db, "student-1", model.RoleStudent)

	require.NoError(t, svc.AssignStudent("class-1", "student-1"))
	err := svc.AssignStudent("class-1", "student-1")
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	var student model.User
	require.NoError(t, db.First(&student, "id = ?", "student-1").Error)
	assert.Len(t, student.Classes, 1)
}

func TestAssignStudent_MissingClassOrStudentIsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newClassService(db)
	seedClassWithLessons(t, db, "class-1", "L1")
	seedUser(t, db, "student-1", model.RoleStudent)

	assert.True(t, errors.Is(svc.AssignStudent("ghost-class", "student-1"), repository.ErrNotFound))
	assert.True(t, errors.Is(svc.AssignStudent("class-1", "ghost-student"), repository.ErrNotFound))
}

func TestCreateLesson_AppendsToClassLessonList(t *testing.T) {
	db := newTestDB(t)
	svc := newClassService(db)
	seedClassWithLessons(t, db, "class-1", "L1")

	resp, err := svc.CreateLesson("class-1", dto.CreateLessonRequest{Name: "Recursion"})
	require.NoError(t, err)
	assert.Equal(t, "Recursion", resp.Name)
	assert.Empty(t, resp.Questions)

	var class model.Class
	require.NoError(t, db.First(&class, "id = ?", "class-1").Error)
	assert.Equal(t, []string{"L1", resp.ID}, []string(class.Lessons))
}
