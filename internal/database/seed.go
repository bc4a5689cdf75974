package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Seed loads the default skill and company reference data. It runs once
// at startup before the server accepts traffic and is idempotent: each
// table is skipped when it already has rows.
func Seed(db *gorm.DB) error {
	if err := seedSkills(db); err != nil {
		return fmt.Errorf("seed skills: %w", err)
	}
	if err := seedCompanies(db); err != nil {
		return fmt.Errorf("seed companies: %w", err)
	}
	if err := seedJobPositions(db); err != nil {
		return fmt.Errorf("seed job positions: %w", err)
	}
	return nil
}

func seedSkills(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Skill{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []Skill{
		{Name: "Java", Category: SkillProgrammingLanguage},
		{Name: "JavaScript", Category: SkillProgrammingLanguage},
		{Name: "TypeScript", Category: SkillProgrammingLanguage},
		{Name: "Python", Category: SkillProgrammingLanguage},
		{Name: "Kotlin", Category: SkillProgrammingLanguage},
		{Name: "Swift", Category: SkillProgrammingLanguage},
		{Name: "React", Category: SkillFrontend},
		{Name: "Vue.js", Category: SkillFrontend},
		{Name: "Angular", Category: SkillFrontend},
		{Name: "Next.js", Category: SkillFrontend},
		{Name: "Spring Boot", Category: SkillBackend},
		{Name: "Node.js", Category: SkillBackend},
		{Name: "Express.js", Category: SkillBackend},
		{Name: "Django", Category: SkillBackend},
		{Name: "PostgreSQL", Category: SkillDatabase},
		{Name: "MySQL", Category: SkillDatabase},
		{Name: "MongoDB", Category: SkillDatabase},
		{Name: "Redis", Category: SkillDatabase},
		{Name: "Docker", Category: SkillDevOps},
		{Name: "Kubernetes", Category: SkillDevOps},
		{Name: "Jenkins", Category: SkillDevOps},
		{Name: "Git", Category: SkillDevOps},
		{Name: "AWS", Category: SkillCloud},
		{Name: "Google Cloud", Category: SkillCloud},
		{Name: "Azure", Category: SkillCloud},
	}
	return db.Create(&defaults).Error
}

func seedCompanies(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Company{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []Company{
		{Name: "카카오게임즈", LogoURL: "/images/companies/kakao-games.png", Description: "글로벌 게임 퍼블리싱 전문 기업"},
		{Name: "넥슨", LogoURL: "/images/companies/nexon.png", Description: "온라인 게임 개발 및 서비스 전문 기업"},
		{Name: "엔씨소프트", LogoURL: "/images/companies/ncsoft.png", Description: "MMORPG 전문 게임 개발사"},
		{Name: "네이버", LogoURL: "/images/companies/naver.png", Description: "국내 최대 포털 및 IT 서비스 기업"},
		{Name: "카카오", LogoURL: "/images/companies/kakao.png", Description: "모바일 플랫폼 및 콘텐츠 서비스 기업"},
		{Name: "라인", LogoURL: "/images/companies/line.png", Description: "글로벌 메신저 및 플랫폼 서비스 기업"},
	}
	return db.Create(&defaults).Error
}

func seedJobPositions(db *gorm.DB) error {
	var count int64
	if err := db.Model(&JobPosition{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	deadline := time.Now().AddDate(0, 1, 0)
	defaults := []JobPosition{
		{
			Title:               "백엔드 개발자",
			Company:             "카카오게임즈",
			CompanyLogo:         "/images/companies/kakao-games.png",
			Location:            "판교",
			ExperienceLevel:     ExperienceMiddle,
			JobType:             JobTypeFullTime,
			Description:         "게임 플랫폼 백엔드 서버 개발",
			Requirements:        "Java 또는 Kotlin 서버 개발 경험",
			RequiredSkills:      "Java,Spring Boot,MySQL",
			PreferredSkills:     "Kotlin,Redis,Kubernetes",
			SalaryRange:         "6000만원 ~ 9000만원",
			RemoteWorkAvailable: true,
			Status:              JobStatusActive,
			ApplicationDeadline: &deadline,
		},
		{
			Title:               "프론트엔드 개발자",
			Company:             "카카오게임즈",
			CompanyLogo:         "/images/companies/kakao-games.png",
			Location:            "판교",
			ExperienceLevel:     ExperienceJunior,
			JobType:             JobTypeFullTime,
			Description:         "게임 포털 프론트엔드 개발",
			Requirements:        "React 기반 서비스 개발 경험",
			RequiredSkills:      "JavaScript,TypeScript,React",
			PreferredSkills:     "Next.js",
			SalaryRange:         "4500만원 ~ 7000만원",
			Status:              JobStatusActive,
			ApplicationDeadline: &deadline,
		},
		{
			Title:           "게임 서버 개발자",
			Company:         "넥슨",
			CompanyLogo:     "/images/companies/nexon.png",
			Location:        "판교",
			ExperienceLevel: ExperienceSenior,
			JobType:         JobTypeFullTime,
			Description:     "대규모 온라인 게임 서버 개발",
			Requirements:    "실시간 서버 개발 경험 5년 이상",
			RequiredSkills:  "C++,Java",
			PreferredSkills: "Redis,MongoDB",
			SalaryRange:     "8000만원 이상",
			Status:          JobStatusActive,
		},
	}
	for i := range defaults {
		if err := db.Create(&defaults[i]).Error; err != nil {
			return err
		}
		job := &defaults[i]
		if err := db.Model(job).Update("slug", UniqueJobSlug(job.Company, job.Title, job.ID)).Error; err != nil {
			return err
		}
		if err := LinkPositionSkills(db, job); err != nil {
			return err
		}
	}
	return nil
}

// LinkPositionSkills materializes a posting's comma-joined skill
// columns into JobPositionSkill rows, matching names against the skill
// directory. Names without a directory entry are skipped.
func LinkPositionSkills(db *gorm.DB, job *JobPosition) error {
	link := func(names []string, required bool) error {
		for _, name := range names {
			var skill Skill
			err := db.Where("name = ?", name).First(&skill).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			row := JobPositionSkill{
				JobPositionID: job.ID,
				SkillID:       skill.ID,
				IsRequired:    required,
			}
			if err := db.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	}

	if err := link(job.RequiredSkillList(), true); err != nil {
		return err
	}
	return link(job.PreferredSkillList(), false)
}
