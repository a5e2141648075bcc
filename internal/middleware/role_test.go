package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/studybuddy/backend/internal/model"
	"github.com/studybuddy/backend/internal/repository"
)

type staticUserRepo struct {
	users map[string]*model.User
}

func (r *staticUserRepo) Create(user *model.User) error { return nil }
func (r *staticUserRepo) Save(user *model.User) error   { return nil }

func (r *staticUserRepo) FindByID(id string) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *staticUserRepo) FindAllByRole(role string) ([]model.User, error) {
	return nil, nil
}

func newRoleRouter(repo repository.UserRepository, uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(CtxUserID, uid) })
	r.Use(RequireRole(repo, model.RoleTeacher))
	r.GET("/teacher-only", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRequireRole(t *testing.T) {
	repo := &staticUserRepo{users: map[string]*model.User{
		"t1": {ID: "t1", Role: model.RoleTeacher},
		"s1": {ID: "s1", Role: model.RoleStudent},
	}}

	tests := []struct {
		name     string
		uid      string
		wantCode int
	}{
		{name: "matching role passes", uid: "t1", wantCode: http.StatusOK},
		{name: "wrong role is forbidden", uid: "s1", wantCode: http.StatusForbidden},
		{name: "unknown subject is forbidden", uid: "ghost", wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newRoleRouter(repo, tt.uid).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teacher-only", nil))
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestRequireRole_ForbiddenMessageNamesRole(t *testing.T) {
	repo := &staticUserRepo{users: map[string]*model.User{
		"s1": {ID: "s1", Role: model.RoleStudent},
	}}

	w := httptest.NewRecorder()
	newRoleRouter(repo, "s1").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/teacher-only", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Only teachers can access this resource")
}
