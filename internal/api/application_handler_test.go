package api

import (
	"context"
	"net/http"
	"testing"

	"gamecraft/internal/database"
	"gamecraft/internal/notify"
)

func TestCreateApplication_StartsSubmitted(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "1001")
	job := database.JobPosition{
		Slug:            "kakao-backend",
		Title:           "백엔드 개발자",
		Company:         "카카오게임즈",
		Location:        "판교",
		ExperienceLevel: database.ExperienceMiddle,
		JobType:         database.JobTypeFullTime,
		Status:          database.JobStatusActive,
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}

	h := NewApplicationHandler(db, notify.NewService(db), nil)

	body := `{
		"company": "카카오게임즈",
		"position": "백엔드 개발자",
		"experienceLevel": "MIDDLE",
		"jobType": "FULL_TIME",
		"coverLetter": "게임 플랫폼 백엔드 경험이 있습니다",
		"skills": ["Go", "PostgreSQL"],
		"expectedSalary": "6000만원"
	}`
	c, w := newTestContext(t, http.MethodPost, "/application/create", body)
	c.Set("userID", user.ID)
	h.Create(c)
	expectStatus(t, w, http.StatusOK)

	var app database.Application
	if err := db.Where("user_id = ?", user.ID).First(&app).Error; err != nil {
		t.Fatalf("load application: %v", err)
	}
	if app.Status != database.StatusSubmitted {
		t.Fatalf("expected SUBMITTED, got %s", app.Status)
	}
	if got := app.SkillList(); len(got) != 2 || got[0] != "Go" {
		t.Fatalf("unexpected skills %v", got)
	}

	notifications, total, err := notify.NewService(db).List(context.Background(), user.ID, 0, 10)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if total != 1 || notifications[0].Type != database.NotifyApplicationStatus {
		t.Fatalf("expected one submission notification, got total=%d", total)
	}

	var got database.JobPosition
	if err := db.First(&got, job.ID).Error; err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if got.ApplicationCount != 1 {
		t.Fatalf("expected application count 1, got %d", got.ApplicationCount)
	}
}

func TestCreateApplication_RejectsUnknownJobType(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "1002")
	h := NewApplicationHandler(db, notify.NewService(db), nil)

	body := `{
		"company": "넥슨",
		"position": "게임 서버 개발자",
		"experienceLevel": "SENIOR",
		"jobType": "PART_TIME",
		"coverLetter": "서버 개발 경험이 있습니다"
	}`
	c, w := newTestContext(t, http.MethodPost, "/application/create", body)
	c.Set("userID", user.ID)
	h.Create(c)
	expectStatus(t, w, http.StatusBadRequest)

	var count int64
	db.Model(&database.Application{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no rows, got %d", count)
	}
}

func TestCreateApplication_RequiresCompany(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "1003")
	h := NewApplicationHandler(db, notify.NewService(db), nil)

	body := `{"position": "백엔드 개발자", "experienceLevel": "JUNIOR", "jobType": "INTERN", "coverLetter": "지원합니다"}`
	c, w := newTestContext(t, http.MethodPost, "/application/create", body)
	c.Set("userID", user.ID)
	h.Create(c)
	expectStatus(t, w, http.StatusBadRequest)
}

func TestCreateApplication_RequiresCoverLetter(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "1007")
	h := NewApplicationHandler(db, notify.NewService(db), nil)

	body := `{
		"company": "넥슨",
		"position": "게임 서버 개발자",
		"experienceLevel": "SENIOR",
		"jobType": "FULL_TIME"
	}`
	c, w := newTestContext(t, http.MethodPost, "/application/create", body)
	c.Set("userID", user.ID)
	h.Create(c)
	expectStatus(t, w, http.StatusBadRequest)

	var count int64
	db.Model(&database.Application{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no rows, got %d", count)
	}
}

func TestMyApplications_RendersStatusDescription(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "1004")
	app := database.Application{
		UserID:          user.ID,
		Company:         "크래프톤",
		Position:        "백엔드 개발자",
		ExperienceLevel: database.ExperienceJunior,
		JobType:         database.JobTypeFullTime,
		Status:          database.StatusReviewing,
	}
	if err := db.Create(&app).Error; err != nil {
		t.Fatalf("seed application: %v", err)
	}
	h := NewApplicationHandler(db, notify.NewService(db), nil)

	c, w := newTestContext(t, http.MethodGet, "/application/my-list", "")
	c.Set("userID", user.ID)
	h.MyList(c)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	list, _ := body["applications"].([]any)
	if len(list) != 1 {
		t.Fatalf("expected one application, got %v", body)
	}
	entry := list[0].(map[string]any)
	if entry["status"] != "검토중" {
		t.Fatalf("expected Korean status label, got %v", entry["status"])
	}
}

func TestMyApplications_HidesOtherUsers(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "1005")
	other := seedUser(t, db, "1006")
	app := database.Application{
		UserID:          owner.ID,
		Company:         "넥슨",
		Position:        "게임 서버 개발자",
		ExperienceLevel: database.ExperienceSenior,
		JobType:         database.JobTypeFullTime,
		Status:          database.StatusSubmitted,
	}
	if err := db.Create(&app).Error; err != nil {
		t.Fatalf("seed application: %v", err)
	}
	h := NewApplicationHandler(db, notify.NewService(db), nil)

	c, w := newTestContext(t, http.MethodGet, "/application/my-list", "")
	c.Set("userID", other.ID)
	h.MyList(c)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	if count := body["totalCount"].(float64); count != 0 {
		t.Fatalf("expected empty list for other user, got %v", count)
	}
}
