package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"gamecraft/internal/database"
)

func TestPopularSkills_RanksByPositionCount(t *testing.T) {
	db := newTestDB(t)
	skills := []database.Skill{
		{Name: "React", Category: database.SkillFrontend},
		{Name: "Java", Category: database.SkillProgrammingLanguage},
	}
	for i := range skills {
		if err := db.Create(&skills[i]).Error; err != nil {
			t.Fatalf("seed skill: %v", err)
		}
	}
	jobs := []database.JobPosition{
		{Slug: "p1", Title: "프론트엔드 개발자", Company: "카카오게임즈", Location: "판교", ExperienceLevel: database.ExperienceJunior, JobType: database.JobTypeFullTime, RequiredSkills: "React", Status: database.JobStatusActive},
		{Slug: "p2", Title: "풀스택 개발자", Company: "넥슨", Location: "판교", ExperienceLevel: database.ExperienceMiddle, JobType: database.JobTypeFullTime, RequiredSkills: "React,Java", Status: database.JobStatusActive},
	}
	for i := range jobs {
		if err := db.Create(&jobs[i]).Error; err != nil {
			t.Fatalf("seed posting: %v", err)
		}
		if err := database.LinkPositionSkills(db, &jobs[i]); err != nil {
			t.Fatalf("link skills: %v", err)
		}
	}
	h := NewSkillHandler(db)

	c, w := newTestContext(t, http.MethodGet, "/api/skills/popular", "")
	h.Popular(c)
	expectStatus(t, w, http.StatusOK)

	body := decodeBody(t, w)
	list, ok := body["skills"].([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("expected 2 ranked skills, got %v", body["skills"])
	}
	first := list[0].(map[string]any)
	if first["name"] != "React" || first["positionCount"].(float64) != 2 {
		t.Fatalf("expected React first with 2 postings, got %v", first)
	}
	second := list[1].(map[string]any)
	if second["name"] != "Java" || second["positionCount"].(float64) != 1 {
		t.Fatalf("expected Java second with 1 posting, got %v", second)
	}
}

func TestSkillsByCategory_RejectsUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	h := NewSkillHandler(db)

	c, w := newTestContext(t, http.MethodGet, "/api/skills/category/NOPE", "")
	c.Params = gin.Params{{Key: "category", Value: "NOPE"}}
	h.ByCategory(c)
	expectStatus(t, w, http.StatusBadRequest)
}
