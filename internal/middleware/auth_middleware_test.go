package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kaganyildiz/academix/internal/app/models"
	"github.com/kaganyildiz/academix/internal/pkg/apperrors"
	"github.com/kaganyildiz/academix/internal/pkg/auth"
)

type fakeUserRepo struct {
	users map[int64]*models.User
}

func (f *fakeUserRepo) CreateStudentUser(ctx context.Context, user *models.User, student *models.Student) error {
	return nil
}
func (f *fakeUserRepo) CreateTeacherUser(ctx context.Context, user *models.User, teacher *models.Teacher) error {
	return nil
}
func (f *fakeUserRepo) CreateAdminUser(ctx context.Context, user *models.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, userID int64) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, user *models.User) error     { return nil }

type fakeStudentRepo struct {
	taughtBy map[int64]int64 // studentID -> teacherID
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error { return nil }
func (f *fakeStudentRepo) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return nil, apperrors.ErrStudentNotFound
}
func (f *fakeStudentRepo) GetAll(ctx context.Context) ([]*models.Student, error) { return nil, nil }
func (f *fakeStudentRepo) GetByClassID(ctx context.Context, classID int64) ([]*models.Student, error) {
	return nil, nil
}
func (f *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error { return nil }
func (f *fakeStudentRepo) Delete(ctx context.Context, id int64) error                { return nil }

func (f *fakeStudentRepo) TaughtBy(ctx context.Context, studentID, teacherID int64) (bool, error) {
	return f.taughtBy[studentID] == teacherID, nil
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "middleware-test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "academix-test",
	})
}

func studentUser(id, studentID int64) *models.User {
	return &models.User{ID: id, Username: "student", Role: models.RoleStudent, StudentID: &studentID}
}

func teacherUser(id, teacherID int64) *models.User {
	return &models.User{ID: id, Username: "teacher", Role: models.RoleTeacher, TeacherID: &teacherID}
}

func adminUser(id int64) *models.User {
	return &models.User{ID: id, Username: "root", Role: models.RoleAdmin}
}

type testHarness struct {
	router *gin.Engine
	jwt    *auth.JWTService
}

func newHarness(t *testing.T, users []*models.User, taughtBy map[int64]int64) *testHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := &fakeUserRepo{users: map[int64]*models.User{}}
	for _, user := range users {
		userRepo.users[user.ID] = user
	}

	jwtService := newTestJWTService()
	mw := NewAuthMiddleware(jwtService, userRepo, &fakeStudentRepo{taughtBy: taughtBy}, nil, zerolog.Nop())

	router := gin.New()
	protected := router.Group("", mw.JWTAuth())
	protected.GET("/whoami", func(c *gin.Context) {
		identity, _ := IdentityFromContext(c)
		c.JSON(http.StatusOK, gin.H{"username": identity.Username})
	})
	protected.GET("/admin-only", mw.RequireRole(models.RoleAdmin), okHandler)
	protected.GET("/staff", mw.RequireRole(models.RoleTeacher, models.RoleAdmin), okHandler)
	protected.GET("/students/:id", mw.RequireStudentAccess("id"), okHandler)
	protected.GET("/teachers/:id", mw.RequireOwnershipOrAdmin("id"), okHandler)

	return &testHarness{router: router, jwt: jwtService}
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *testHarness) request(t *testing.T, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func (h *testHarness) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := h.jwt.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func assertMessage(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d (body %s)", status, rec.Code, rec.Body.String())
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success {
		t.Fatal("expected success=false")
	}
	if body.Message != message {
		t.Fatalf("expected message %q, got %q", message, body.Message)
	}
}

func TestJWTAuthMissingHeader(t *testing.T) {
	h := newHarness(t, nil, nil)
	rec := h.request(t, "/whoami", "")
	assertMessage(t, rec, http.StatusUnauthorized, "Access token required")
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	h := newHarness(t, []*models.User{adminUser(1)}, nil)
	token := h.tokenFor(t, adminUser(1))

	cases := []string{
		"Token " + token,
		"Bearer",
		"Bearer " + token + " extra",
		"bearer " + token,
	}
	for _, header := range cases {
		rec := h.request(t, "/whoami", header)
		assertMessage(t, rec, http.StatusUnauthorized, "Invalid authorization header format")
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	h := newHarness(t, []*models.User{adminUser(1)}, nil)

	expiredSvc := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "middleware-test-secret",
		TokenExp:    -time.Minute,
		TokenIssuer: "academix-test",
	})
	token, _, err := expiredSvc.GenerateToken(adminUser(1))
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	rec := h.request(t, "/whoami", "Bearer "+token)
	assertMessage(t, rec, http.StatusUnauthorized, "Token expired")
}

func TestJWTAuthForgedToken(t *testing.T) {
	h := newHarness(t, []*models.User{adminUser(1)}, nil)

	forger := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "a-different-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "academix-test",
	})
	token, _, err := forger.GenerateToken(adminUser(1))
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	rec := h.request(t, "/whoami", "Bearer "+token)
	assertMessage(t, rec, http.StatusUnauthorized, "Invalid token")
}

func TestJWTAuthDeletedUser(t *testing.T) {
	h := newHarness(t, nil, nil)
	token := h.tokenFor(t, adminUser(99))

	rec := h.request(t, "/whoami", "Bearer "+token)
	assertMessage(t, rec, http.StatusUnauthorized, "Invalid token - user not found")
}

func TestJWTAuthAttachesIdentity(t *testing.T) {
	user := studentUser(5, 42)
	h := newHarness(t, []*models.User{user}, nil)

	rec := h.request(t, "/whoami", "Bearer "+h.tokenFor(t, user))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", rec.Code, rec.Body.String())
	}
	var body struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Username != "student" {
		t.Fatalf("unexpected identity: %q", body.Username)
	}
}

func TestRequireRole(t *testing.T) {
	student := studentUser(1, 10)
	teacher := teacherUser(2, 20)
	admin := adminUser(3)
	h := newHarness(t, []*models.User{student, teacher, admin}, nil)

	rec := h.request(t, "/admin-only", "Bearer "+h.tokenFor(t, student))
	assertMessage(t, rec, http.StatusForbidden, "Insufficient permissions")

	rec = h.request(t, "/admin-only", "Bearer "+h.tokenFor(t, admin))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected admin to pass, got %d", rec.Code)
	}

	rec = h.request(t, "/staff", "Bearer "+h.tokenFor(t, teacher))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected teacher to pass the staff guard, got %d", rec.Code)
	}

	rec = h.request(t, "/staff", "Bearer "+h.tokenFor(t, student))
	assertMessage(t, rec, http.StatusForbidden, "Insufficient permissions")
}

func TestStudentAccessOwnRecord(t *testing.T) {
	student := studentUser(1, 42)
	h := newHarness(t, []*models.User{student}, nil)

	rec := h.request(t, "/students/42", "Bearer "+h.tokenFor(t, student))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected owner to pass, got %d (body %s)", rec.Code, rec.Body.String())
	}

	rec = h.request(t, "/students/43", "Bearer "+h.tokenFor(t, student))
	assertMessage(t, rec, http.StatusForbidden, "Access denied")
}

func TestTeacherAccessRequiresOwnStudent(t *testing.T) {
	teacher := teacherUser(2, 20)
	h := newHarness(t, []*models.User{teacher}, map[int64]int64{42: 20})

	rec := h.request(t, "/students/42", "Bearer "+h.tokenFor(t, teacher))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected teacher of the class to pass, got %d (body %s)", rec.Code, rec.Body.String())
	}

	// Student 43 is not in any of this teacher's classes
	rec = h.request(t, "/students/43", "Bearer "+h.tokenFor(t, teacher))
	assertMessage(t, rec, http.StatusForbidden, "Access denied")
}

func TestAdminBypassesOwnership(t *testing.T) {
	admin := adminUser(3)
	h := newHarness(t, []*models.User{admin}, nil)

	rec := h.request(t, "/students/42", "Bearer "+h.tokenFor(t, admin))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected admin to bypass ownership, got %d", rec.Code)
	}
}

func TestTeacherOwnershipOnTeacherResource(t *testing.T) {
	teacher := teacherUser(2, 20)
	h := newHarness(t, []*models.User{teacher}, map[int64]int64{20: 20})

	rec := h.request(t, "/teachers/20", "Bearer "+h.tokenFor(t, teacher))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected teacher to read own record, got %d", rec.Code)
	}

	// The class-assignment shortcut must not apply to teacher records
	rec = h.request(t, "/teachers/21", "Bearer "+h.tokenFor(t, teacher))
	assertMessage(t, rec, http.StatusForbidden, "Access denied")
}
