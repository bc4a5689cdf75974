package database

import (
	"strings"
	"time"
)

// User represents an account resolved from a Kakao login.
// The kakao_id is immutable after creation; name/email/avatar are
// refreshed on every login.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	KakaoID      string `gorm:"uniqueIndex;size:64;not null" json:"kakaoId"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	ProfileImage string `gorm:"size:512" json:"profileImage"`
	Phone        string `gorm:"size:32" json:"phone"`
	Github       string `gorm:"size:512" json:"github"`
	Portfolio    string `gorm:"size:512" json:"portfolio"`

	Role   UserRole   `gorm:"size:16;not null;default:USER" json:"role"`
	Status UserStatus `gorm:"size:16;not null;default:ACTIVE" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Applications  []Application  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Notifications []Notification `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// JobPosition is a postable vacancy.
type JobPosition struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	Slug               string `gorm:"uniqueIndex;size:255" json:"slug"`
	Title              string `gorm:"size:255;not null" json:"title"`
	Company            string `gorm:"size:255;not null;index:idx_job_company" json:"company"`
	CompanyLogo        string `gorm:"size:512" json:"companyLogo"`
	CompanyDescription string `gorm:"type:text" json:"companyDescription"`
	Location           string `gorm:"size:255;not null;index:idx_job_location" json:"location"`

	ExperienceLevel ExperienceLevel `gorm:"size:16;not null" json:"experienceLevel"`
	JobType         JobType         `gorm:"size:16;not null" json:"jobType"`

	Description             string `gorm:"type:text" json:"description"`
	Requirements            string `gorm:"type:text" json:"requirements"`
	PreferredQualifications string `gorm:"type:text" json:"preferredQualifications"`
	Benefits                string `gorm:"type:text" json:"benefits"`

	// Comma-joined legacy views; the normalized relation lives in Skills.
	RequiredSkills  string `gorm:"type:text" json:"-"`
	PreferredSkills string `gorm:"type:text" json:"-"`

	SalaryRange         string `gorm:"size:255" json:"salaryRange"`
	RemoteWorkAvailable bool   `gorm:"not null;default:false" json:"remoteWorkAvailable"`
	ContactEmail        string `gorm:"size:255" json:"contactEmail"`
	ContactPerson       string `gorm:"size:255" json:"contactPerson"`

	Status              JobStatus  `gorm:"size:16;not null;default:ACTIVE;index:idx_job_status" json:"status"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`

	ViewCount        int64 `gorm:"not null;default:0" json:"viewCount"`
	ApplicationCount int64 `gorm:"not null;default:0" json:"applicationCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Skills []JobPositionSkill `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// IsActive reports whether the posting should be treated as open for
// display: ACTIVE status and a deadline that has not passed. Derived on
// every read, never cached.
func (j *JobPosition) IsActive(now time.Time) bool {
	if j.Status != JobStatusActive {
		return false
	}
	if j.ApplicationDeadline != nil && j.ApplicationDeadline.Before(now) {
		return false
	}
	return true
}

// RequiredSkillList splits the comma-joined legacy column.
func (j *JobPosition) RequiredSkillList() []string {
	return SplitSkills(j.RequiredSkills)
}

// PreferredSkillList splits the comma-joined legacy column.
func (j *JobPosition) PreferredSkillList() []string {
	return SplitSkills(j.PreferredSkills)
}

// Application is a candidate's submission for a company/position pair.
// The pair is recorded by name, not by a foreign key to JobPosition.
type Application struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"userId"`
	User   User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Company  string `gorm:"size:255;not null;index" json:"company"`
	Position string `gorm:"size:255;not null" json:"position"`

	ExperienceLevel ExperienceLevel `gorm:"size:16;not null" json:"experienceLevel"`
	JobType         JobType         `gorm:"size:16;not null" json:"jobType"`

	Skills      string `gorm:"type:text" json:"-"`
	CoverLetter string `gorm:"type:text" json:"coverLetter"`

	ExpectedSalary     string `gorm:"size:255" json:"expectedSalary"`
	AvailableStartDate string `gorm:"size:64" json:"availableStartDate"`
	WorkLocation       string `gorm:"size:255" json:"workLocation"`
	ReferenceLink      string `gorm:"size:512" json:"referenceLink"`

	ResumeFileName     string `gorm:"size:255" json:"resumeFileName"`
	ResumeObjectKey    string `gorm:"size:512" json:"-"`
	PortfolioFileName  string `gorm:"size:255" json:"portfolioFileName"`
	PortfolioObjectKey string `gorm:"size:512" json:"-"`

	Status     ApplicationStatus `gorm:"size:32;not null;default:SUBMITTED;index" json:"status"`
	AdminNotes string            `gorm:"type:text" json:"adminNotes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SkillList splits the comma-joined skills column.
func (a *Application) SkillList() []string {
	return SplitSkills(a.Skills)
}

// Notification is an append-only per-user record. ReadAt is set if and
// only if IsRead is true.
type Notification struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"userId"`
	User   User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	Title   string           `gorm:"size:255;not null" json:"title"`
	Message string           `gorm:"type:text" json:"message"`
	Type    NotificationType `gorm:"size:32;not null" json:"type"`

	IsRead          bool       `gorm:"not null;default:false;index" json:"isRead"`
	ActionURL       string     `gorm:"size:500" json:"actionUrl,omitempty"`
	RelatedEntityID *uint      `json:"relatedEntityId,omitempty"`
	ReadAt          *time.Time `json:"readAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Company is reference data for the application form and directory.
type Company struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;size:255;not null" json:"name"`
	LogoURL     string `gorm:"size:500" json:"logoUrl"`
	Description string `gorm:"type:text" json:"description"`
	Website     string `gorm:"size:500" json:"website"`
	Industry    string `gorm:"size:255" json:"industry"`
	CompanySize string `gorm:"size:255" json:"companySize"`
	Location    string `gorm:"size:255" json:"location"`
	FoundedYear string `gorm:"size:16" json:"foundedYear"`

	Status CompanyStatus `gorm:"size:16;not null;default:ACTIVE" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Skill is normalized skill metadata.
type Skill struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Category    SkillCategory `gorm:"size:32;not null" json:"category"`
	IconURL     string        `gorm:"size:500" json:"iconUrl"`
	Description string        `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"createdAt"`
}

// JobPositionSkill joins positions and skills, recording whether the
// skill is required and an optional 1-5 proficiency level.
type JobPositionSkill struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	JobPositionID uint        `gorm:"not null;index" json:"jobPositionId"`
	JobPosition   JobPosition `json:"-"`
	SkillID       uint        `gorm:"not null;index" json:"skillId"`
	Skill         Skill       `json:"-"`

	IsRequired       bool `gorm:"not null;default:true" json:"isRequired"`
	ProficiencyLevel *int `json:"proficiencyLevel,omitempty"`
}

// SplitSkills turns a comma-joined skills column into a list, dropping
// empty segments.
func SplitSkills(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinSkills renders the comma-joined legacy view of a skill list.
func JoinSkills(skills []string) string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, ",")
}
