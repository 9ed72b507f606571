package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mindora/wellness/internal/cache"
	"github.com/mindora/wellness/internal/catalog"
	"github.com/mindora/wellness/internal/config"
	"github.com/mindora/wellness/internal/dto"
	"github.com/mindora/wellness/internal/models"
	"github.com/mindora/wellness/internal/repository"
	"github.com/mindora/wellness/internal/validation"
)

var fixedNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
}

func newAuth(store *repository.Store) *AuthService {
	s := NewAuthService(store.Users, cache.NewMemoryDenylist(), testConfig())
	s.now = clock
	return s
}

func signup(t *testing.T, auth *AuthService, email string) *models.User {
	t.Helper()
	user, _, err := auth.Signup(context.Background(), &dto.SignupRequest{Email: email, Password: "Secret123", Name: "Test User"})
	if err != nil {
		t.Fatalf("Signup(%s): %v", email, err)
	}
	return user
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	auth := newAuth(store)

	user, token, err := auth.Signup(ctx, &dto.SignupRequest{Email: "  Jane@Example.COM ", Password: "Secret123", Name: " Jane "})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.Email != "jane@example.com" || user.Name != "Jane" {
		t.Errorf("user = %q / %q", user.Email, user.Name)
	}
	if user.Password == "Secret123" {
		t.Error("password stored in plain text")
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte("test-secret"), nil },
		jwt.WithTimeFunc(clock))
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != user.ID || claims["email"] != "jane@example.com" || claims["jti"] == "" {
		t.Errorf("claims = %v", claims)
	}

	_, _, err = auth.Signup(ctx, &dto.SignupRequest{Email: "jane@example.com", Password: "Secret123", Name: "Jane"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate signup err = %v, want ErrEmailTaken", err)
	}

	_, _, err = auth.Signup(ctx, &dto.SignupRequest{Email: "weak@example.com", Password: "weak", Name: "Weak"})
	var verr *validation.Error
	if !errors.As(err, &verr) || verr.Message != "Password must be at least 8 characters" {
		t.Errorf("weak password err = %v", err)
	}

	if _, _, err := auth.Login(ctx, &dto.LoginRequest{Email: "JANE@example.com", Password: "Secret123"}); err != nil {
		t.Errorf("Login: %v", err)
	}
	if _, _, err := auth.Login(ctx, &dto.LoginRequest{Email: "jane@example.com", Password: "Wrong123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, _, err := auth.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "Secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	auth := newAuth(repository.NewMemoryStore())

	if err := auth.Logout(ctx, "jti-1", fixedNow.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if ok, _ := auth.IsRevoked(ctx, "jti-1"); !ok {
		t.Error("token should be revoked after logout")
	}
	if ok, _ := auth.IsRevoked(ctx, "jti-2"); ok {
		t.Error("other tokens must stay valid")
	}
}

func TestSetupSuperAdminOnlyOnce(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	auth := newAuth(store)

	admin, err := auth.SetupSuperAdmin(ctx, &dto.SetupSuperAdminRequest{Email: "root@example.com", Password: "Secret123"})
	if err != nil {
		t.Fatalf("SetupSuperAdmin: %v", err)
	}
	if !admin.IsSuperAdmin || admin.Name != "Super Admin" {
		t.Errorf("admin = %+v", admin)
	}
	if ok, _ := auth.HasSuperAdmin(ctx); !ok {
		t.Error("HasSuperAdmin = false after setup")
	}
	_, err = auth.SetupSuperAdmin(ctx, &dto.SetupSuperAdminRequest{Email: "other@example.com", Password: "Secret123"})
	if !errors.Is(err, ErrSuperAdminExists) {
		t.Errorf("second setup err = %v, want ErrSuperAdminExists", err)
	}
}

func TestJournalOwnership(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewJournalService(store.Journals)
	svc.now = clock

	entry, err := svc.Create(ctx, "owner", &dto.CreateJournalRequest{Content: "  a good day  "})
	if err != nil {
		t.Fatal(err)
	}
	if entry.Content != "a good day" || !entry.Date.Equal(fixedNow) {
		t.Errorf("entry = %+v", entry)
	}

	if _, err := svc.Create(ctx, "owner", &dto.CreateJournalRequest{Content: "   "}); err == nil {
		t.Error("blank content accepted")
	}

	_, err = svc.Update(ctx, "intruder", entry.ID, &dto.UpdateJournalRequest{Content: "hacked"})
	if !errors.Is(err, ErrJournalNotFound) {
		t.Errorf("foreign update err = %v, want ErrJournalNotFound", err)
	}
	if err := svc.Delete(ctx, "intruder", entry.ID); !errors.Is(err, ErrJournalNotFound) {
		t.Errorf("foreign delete err = %v, want ErrJournalNotFound", err)
	}
	if got, _ := svc.List(ctx, "owner"); len(got) != 1 || got[0].Content != "a good day" {
		t.Errorf("owner entries after foreign writes = %+v", got)
	}

	newDate := fixedNow.AddDate(0, 0, -2)
	updated, err := svc.Update(ctx, "owner", entry.ID, &dto.UpdateJournalRequest{Content: "edited", Date: &newDate})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Content != "edited" || !updated.Date.Equal(newDate) {
		t.Errorf("updated = %+v", updated)
	}

	if err := svc.Delete(ctx, "owner", entry.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, "owner", entry.ID); !errors.Is(err, ErrJournalNotFound) {
		t.Errorf("second delete err = %v, want ErrJournalNotFound", err)
	}
}

func TestMoodCreateCleansTriggers(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewMoodService(store.Moods)
	svc.now = clock

	entry, err := svc.Create(ctx, "u1", &dto.CreateMoodRequest{Mood: 4, Triggers: []string{" Work ", "work", "", "sleep"}})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(entry.Triggers, ",") != "Work,sleep" {
		t.Errorf("triggers = %v", entry.Triggers)
	}
	if _, err := svc.Create(ctx, "u1", &dto.CreateMoodRequest{Mood: 6}); err == nil {
		t.Error("mood 6 accepted")
	}
}

func TestExerciseSessions(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	svc := NewExerciseService(cat, store.Exercises, store.Moods)
	svc.now = clock

	session, err := svc.RecordSession(ctx, "u1", &dto.ExerciseSessionRequest{ExerciseID: "box-breathing"})
	if err != nil {
		t.Fatal(err)
	}
	if session.Duration != 240 || session.ExerciseName != "Box Breathing" {
		t.Errorf("session = %+v", session)
	}
	if _, err := svc.RecordSession(ctx, "u1", &dto.ExerciseSessionRequest{ExerciseID: "juggling"}); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("unknown exercise err = %v", err)
	}

	rec, err := svc.RecommendedExercises(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.MoodAverage != nil || len(rec.Items) != len(cat.Exercises("")) {
		t.Errorf("without moods expected the full catalog, got %+v", rec)
	}

	for i, m := range []int{1, 2, 2} {
		e := models.MoodEntry{ID: string(rune('a' + i)), UserID: "u1", Mood: m, Date: fixedNow.Add(-time.Duration(i) * time.Hour)}
		if err := store.Moods.Create(ctx, &e); err != nil {
			t.Fatal(err)
		}
	}
	rec, err = svc.RecommendedExercises(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.MoodAverage == nil || *rec.MoodAverage != 1.67 || rec.Band != catalog.BandLow {
		t.Errorf("recommendation = %+v", rec)
	}
}

func TestAdminActions(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	auth := newAuth(store)
	admin := NewAdminService(store, auth)
	admin.now = clock

	root, err := auth.SetupSuperAdmin(ctx, &dto.SetupSuperAdminRequest{Email: "root@example.com", Password: "Secret123"})
	if err != nil {
		t.Fatal(err)
	}
	user := signup(t, auth, "user@example.com")

	old := &models.User{ID: "old", Email: "old@example.com", CreatedAt: fixedNow.AddDate(0, -3, 0)}
	if err := store.Users.Create(ctx, old); err != nil {
		t.Fatal(err)
	}
	for i, m := range []int{5, 4} {
		e := models.MoodEntry{ID: string(rune('m' + i)), UserID: user.ID, Mood: m, Date: fixedNow}
		if err := store.Moods.Create(ctx, &e); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := admin.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalUsers != 3 || stats.ActiveUsers != 2 || stats.TotalMoods != 2 || stats.AverageMood != "4.5" {
		t.Errorf("stats = %+v", stats)
	}

	users, err := admin.ListUsers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, u := range users {
		if u.ID == user.ID && u.MoodCount != 2 {
			t.Errorf("mood count = %d, want 2", u.MoodCount)
		}
	}

	err = admin.ChangePassword(ctx, &dto.ChangePasswordRequest{UserID: root.ID, NewPassword: "Another123"})
	if !errors.Is(err, ErrProtectedAccount) {
		t.Errorf("super admin password change err = %v", err)
	}
	if err := admin.ChangePassword(ctx, &dto.ChangePasswordRequest{UserID: user.ID, NewPassword: "Another123"}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := auth.Login(ctx, &dto.LoginRequest{Email: "user@example.com", Password: "Another123"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}

	if err := admin.DeleteUser(ctx, &dto.DeleteUserRequest{UserID: user.ID}); err != nil {
		t.Fatal(err)
	}
	if moods, _ := store.Moods.ListAll(ctx); len(moods) != 0 {
		t.Errorf("moods survived user deletion: %d", len(moods))
	}
	if err := admin.DeleteUser(ctx, &dto.DeleteUserRequest{UserID: user.ID}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("delete missing err = %v", err)
	}

	id, err := admin.CreateAdmin(ctx, &dto.CreateAdminRequest{Name: "Ops", Email: "ops@example.com", Password: "Secret123"})
	if err != nil {
		t.Fatal(err)
	}
	created, _ := store.Users.FindByID(ctx, id)
	if !created.IsAdmin || created.IsSuperAdmin {
		t.Errorf("created admin flags = %+v", created)
	}

	doc, err := admin.Export(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Filename != "wellness-data-2026-10-14.xlsx" || len(doc.Body) == 0 {
		t.Errorf("export = %q (%d bytes)", doc.Filename, len(doc.Body))
	}
}

func TestReportRender(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	auth := newAuth(store)
	user := signup(t, auth, "jane@example.com")

	for i, m := range []int{5, 3} {
		e := models.MoodEntry{ID: string(rune('a' + i)), UserID: user.ID, Mood: m, Date: fixedNow.AddDate(0, 0, -i)}
		if err := store.Moods.Create(ctx, &e); err != nil {
			t.Fatal(err)
		}
	}

	svc := NewReportService(store, time.UTC)
	svc.now = clock

	summary, err := svc.Analytics(ctx, user.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Range != "week" || summary.AvgMood != "4.0" || summary.TotalEntries != 2 {
		t.Errorf("summary = %+v", summary)
	}

	csv, err := svc.Render(ctx, user.ID, FormatCSV, ReportRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(csv.Filename, "_Monthly_Summary.csv") {
		t.Errorf("csv filename = %q", csv.Filename)
	}
	if bytes.Contains(csv.Body, []byte("jane@example.com")) {
		t.Error("csv leaked email without includePersonal")
	}

	html, err := svc.Render(ctx, user.ID, FormatHTML, ReportRequest{Range: "day", IncludePersonal: true})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(html.Body, []byte("jane@example.com")) {
		t.Error("html should include email when requested")
	}

	xlsx, err := svc.Render(ctx, user.ID, FormatWorkbook, ReportRequest{IncludePersonal: true})
	if err != nil {
		t.Fatal(err)
	}
	if xlsx.Filename != "Wellness_Report_Test_User_week_2026-10-14.xlsx" {
		t.Errorf("workbook filename = %q", xlsx.Filename)
	}

	if _, err := svc.Render(ctx, "missing", FormatCSV, ReportRequest{}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing user err = %v", err)
	}
}
