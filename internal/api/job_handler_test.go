package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"gamecraft/internal/database"
)

func TestGetPosition_IncrementsViewCount(t *testing.T) {
	db := newTestDB(t)
	job := database.JobPosition{
		Slug:            "pearl-abyss-server",
		Title:           "게임 서버 개발자",
		Company:         "펄어비스",
		Location:        "경기 안양",
		ExperienceLevel: database.ExperienceSenior,
		JobType:         database.JobTypeFullTime,
		Status:          database.JobStatusActive,
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}
	h := NewJobHandler(db)

	for i := 0; i < 2; i++ {
		c, w := newTestContext(t, http.MethodGet, "/positions/1", "")
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		h.Get(c)
		expectStatus(t, w, http.StatusOK)
	}

	var got database.JobPosition
	if err := db.First(&got, job.ID).Error; err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if got.ViewCount != 2 {
		t.Fatalf("expected view count 2, got %d", got.ViewCount)
	}
}

func TestGetPosition_ExpiredDeadlineReadsInactive(t *testing.T) {
	db := newTestDB(t)
	yesterday := time.Now().AddDate(0, 0, -1)
	job := database.JobPosition{
		Slug:                "krafton-backend",
		Title:               "백엔드 개발자",
		Company:             "크래프톤",
		Location:            "서울 강남",
		ExperienceLevel:     database.ExperienceMiddle,
		JobType:             database.JobTypeFullTime,
		Status:              database.JobStatusActive,
		ApplicationDeadline: &yesterday,
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}
	h := NewJobHandler(db)

	c, w := newTestContext(t, http.MethodGet, "/positions/1", "")
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	h.Get(c)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	detail, ok := body["job"].(map[string]any)
	if !ok {
		t.Fatalf("missing job in body %v", body)
	}
	if active, _ := detail["isActive"].(bool); active {
		t.Fatalf("expected isActive=false past the deadline")
	}
}

func TestPopularPositions_OrdersByViewCount(t *testing.T) {
	db := newTestDB(t)
	jobs := []database.JobPosition{
		{Slug: "a", Title: "a", Company: "A", Location: "서울", ExperienceLevel: database.ExperienceJunior, JobType: database.JobTypeFullTime, Status: database.JobStatusActive, ViewCount: 5},
		{Slug: "b", Title: "b", Company: "B", Location: "서울", ExperienceLevel: database.ExperienceJunior, JobType: database.JobTypeFullTime, Status: database.JobStatusActive, ViewCount: 50},
		{Slug: "c", Title: "c", Company: "C", Location: "서울", ExperienceLevel: database.ExperienceJunior, JobType: database.JobTypeFullTime, Status: database.JobStatusActive, ViewCount: 20},
	}
	for i := range jobs {
		if err := db.Create(&jobs[i]).Error; err != nil {
			t.Fatalf("seed job: %v", err)
		}
	}
	h := NewJobHandler(db)

	c, w := newTestContext(t, http.MethodGet, "/positions/popular", "")
	h.Popular(c)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	list, ok := body["jobs"].([]any)
	if !ok || len(list) != 3 {
		t.Fatalf("expected 3 jobs, got %v", body["jobs"])
	}
	var order []string
	for _, item := range list {
		order = append(order, item.(map[string]any)["company"].(string))
	}
	if order[0] != "B" || order[1] != "C" || order[2] != "A" {
		t.Fatalf("unexpected popularity order %v", order)
	}
}

func TestListPositions_SearchMatchesTitle(t *testing.T) {
	db := newTestDB(t)
	jobs := []database.JobPosition{
		{Slug: "s1", Title: "게임 서버 개발자", Company: "넥슨", Location: "판교", ExperienceLevel: database.ExperienceSenior, JobType: database.JobTypeFullTime, Status: database.JobStatusActive},
		{Slug: "s2", Title: "프론트엔드 개발자", Company: "카카오게임즈", Location: "판교", ExperienceLevel: database.ExperienceJunior, JobType: database.JobTypeFullTime, Status: database.JobStatusActive},
		{Slug: "s3", Title: "게임 기획자", Company: "넥슨", Location: "판교", ExperienceLevel: database.ExperienceJunior, JobType: database.JobTypeFullTime, Status: database.JobStatusClosed},
	}
	for i := range jobs {
		if err := db.Create(&jobs[i]).Error; err != nil {
			t.Fatalf("seed job: %v", err)
		}
	}
	h := NewJobHandler(db)

	c, w := newTestContext(t, http.MethodGet, "/positions?search=게임", "")
	h.List(c)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	list, _ := body["jobs"].([]any)
	if len(list) != 1 {
		t.Fatalf("expected only the active match, got %d", len(list))
	}
	pagination, ok := body["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("missing pagination in %v", body)
	}
	if total := pagination["totalElements"].(float64); total != 1 {
		t.Fatalf("expected totalElements 1, got %v", total)
	}
}

func TestGetBySlug_IgnoresClosedPostings(t *testing.T) {
	db := newTestDB(t)
	job := database.JobPosition{
		Slug:            "closed-posting",
		Title:           "마감된 공고",
		Company:         "스마일게이트",
		Location:        "판교",
		ExperienceLevel: database.ExperienceJunior,
		JobType:         database.JobTypeFullTime,
		Status:          database.JobStatusClosed,
	}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}
	h := NewJobHandler(db)

	c, w := newTestContext(t, http.MethodGet, "/positions/slug/closed-posting", "")
	c.Params = gin.Params{{Key: "slug", Value: "closed-posting"}}
	h.GetBySlug(c)
	expectStatus(t, w, http.StatusNotFound)
}

func TestFilterOptions_ListsFacets(t *testing.T) {
	db := newTestDB(t)
	jobs := []database.JobPosition{
		{Slug: "f1", Title: "a", Company: "넥슨", Location: "판교", ExperienceLevel: database.ExperienceJunior, JobType: database.JobTypeFullTime, Status: database.JobStatusActive},
		{Slug: "f2", Title: "b", Company: "넥슨", Location: "서울", ExperienceLevel: database.ExperienceJunior, JobType: database.JobTypeFullTime, Status: database.JobStatusActive},
		{Slug: "f3", Title: "c", Company: "크래프톤", Location: "서울", ExperienceLevel: database.ExperienceJunior, JobType: database.JobTypeFullTime, Status: database.JobStatusActive},
	}
	for i := range jobs {
		if err := db.Create(&jobs[i]).Error; err != nil {
			t.Fatalf("seed job: %v", err)
		}
	}
	h := NewJobHandler(db)

	c, w := newTestContext(t, http.MethodGet, "/positions/filter-options", "")
	h.FilterOptions(c)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	companies, _ := body["companies"].([]any)
	if len(companies) != 2 {
		t.Fatalf("expected 2 companies, got %v", body["companies"])
	}
	first := companies[0].(map[string]any)
	if first["name"] != "넥슨" || first["count"].(float64) != 2 {
		t.Fatalf("expected 넥슨 first with count 2, got %v", first)
	}
	levels, _ := body["experienceLevels"].(map[string]any)
	if levels["JUNIOR"] != "신입" {
		t.Fatalf("expected JUNIOR description, got %v", levels)
	}
}
