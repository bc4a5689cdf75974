package database

import "fmt"

// Enums are stored as their string names. Descriptions are the
// human-readable labels the frontend renders.

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusInactive  UserStatus = "INACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

type JobStatus string

const (
	JobStatusActive    JobStatus = "ACTIVE"
	JobStatusClosed    JobStatus = "CLOSED"
	JobStatusSuspended JobStatus = "SUSPENDED"
	JobStatusDraft     JobStatus = "DRAFT"
)

type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "ACTIVE"
	CompanyStatusInactive CompanyStatus = "INACTIVE"
)

type ExperienceLevel string

const (
	ExperienceJunior ExperienceLevel = "JUNIOR"
	ExperienceMiddle ExperienceLevel = "MIDDLE"
	ExperienceSenior ExperienceLevel = "SENIOR"
	ExperienceLead   ExperienceLevel = "LEAD"
)

var experienceLevelDescriptions = map[ExperienceLevel]string{
	ExperienceJunior: "신입",
	ExperienceMiddle: "경력 3-5년",
	ExperienceSenior: "경력 5년 이상",
	ExperienceLead:   "팀 리드",
}

// ExperienceLevels lists every valid level in declaration order.
func ExperienceLevels() []ExperienceLevel {
	return []ExperienceLevel{ExperienceJunior, ExperienceMiddle, ExperienceSenior, ExperienceLead}
}

func (e ExperienceLevel) Description() string {
	return experienceLevelDescriptions[e]
}

// ParseExperienceLevel validates an enum string from the API.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	level := ExperienceLevel(s)
	if _, ok := experienceLevelDescriptions[level]; !ok {
		return "", fmt.Errorf("invalid experience level: %q", s)
	}
	return level, nil
}

type JobType string

const (
	JobTypeFullTime  JobType = "FULL_TIME"
	JobTypeContract  JobType = "CONTRACT"
	JobTypeFreelance JobType = "FREELANCE"
	JobTypeIntern    JobType = "INTERN"
)

var jobTypeDescriptions = map[JobType]string{
	JobTypeFullTime:  "정규직",
	JobTypeContract:  "계약직",
	JobTypeFreelance: "프리랜서",
	JobTypeIntern:    "인턴",
}

// JobTypes lists every valid job type in declaration order.
func JobTypes() []JobType {
	return []JobType{JobTypeFullTime, JobTypeContract, JobTypeFreelance, JobTypeIntern}
}

func (t JobType) Description() string {
	return jobTypeDescriptions[t]
}

// ParseJobType validates an enum string from the API.
func ParseJobType(s string) (JobType, error) {
	t := JobType(s)
	if _, ok := jobTypeDescriptions[t]; !ok {
		return "", fmt.Errorf("invalid job type: %q", s)
	}
	return t, nil
}

// ApplicationStatus is the workflow lifecycle field. Transition rules
// live in the workflow package; the store accepts any declared value.
type ApplicationStatus string

const (
	StatusSubmitted          ApplicationStatus = "SUBMITTED"
	StatusReviewing          ApplicationStatus = "REVIEWING"
	StatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	StatusInterviewCompleted ApplicationStatus = "INTERVIEW_COMPLETED"
	StatusAccepted           ApplicationStatus = "ACCEPTED"
	StatusRejected           ApplicationStatus = "REJECTED"
	StatusWithdrawn          ApplicationStatus = "WITHDRAWN"
)

var applicationStatusDescriptions = map[ApplicationStatus]string{
	StatusSubmitted:          "지원 완료",
	StatusReviewing:          "검토중",
	StatusInterviewScheduled: "면접 예정",
	StatusInterviewCompleted: "면접 완료",
	StatusAccepted:           "합격",
	StatusRejected:           "불합격",
	StatusWithdrawn:          "지원 취소",
}

// ApplicationStatuses lists every valid status in lifecycle order.
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		StatusSubmitted,
		StatusReviewing,
		StatusInterviewScheduled,
		StatusInterviewCompleted,
		StatusAccepted,
		StatusRejected,
		StatusWithdrawn,
	}
}

func (s ApplicationStatus) Description() string {
	return applicationStatusDescriptions[s]
}

// ParseApplicationStatus validates a status string from the API.
func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	s := ApplicationStatus(raw)
	if _, ok := applicationStatusDescriptions[s]; !ok {
		return "", fmt.Errorf("invalid application status: %q", raw)
	}
	return s, nil
}

type NotificationType string

const (
	NotifyApplicationStatus  NotificationType = "APPLICATION_STATUS"
	NotifyNewJob             NotificationType = "NEW_JOB"
	NotifyInterviewScheduled NotificationType = "INTERVIEW_SCHEDULED"
	NotifySystem             NotificationType = "SYSTEM"
	NotifyPromotion          NotificationType = "PROMOTION"
)

var notificationTypeDescriptions = map[NotificationType]string{
	NotifyApplicationStatus:  "지원서 상태 변경",
	NotifyNewJob:             "새로운 채용공고",
	NotifyInterviewScheduled: "면접 일정",
	NotifySystem:             "시스템 알림",
	NotifyPromotion:          "프로모션",
}

func (t NotificationType) Description() string {
	return notificationTypeDescriptions[t]
}

type SkillCategory string

const (
	SkillProgrammingLanguage SkillCategory = "PROGRAMMING_LANGUAGE"
	SkillFrontend            SkillCategory = "FRONTEND"
	SkillBackend             SkillCategory = "BACKEND"
	SkillDatabase            SkillCategory = "DATABASE"
	SkillDevOps              SkillCategory = "DEVOPS"
	SkillCloud               SkillCategory = "CLOUD"
	SkillMobile              SkillCategory = "MOBILE"
	SkillGame                SkillCategory = "GAME"
	SkillAIML                SkillCategory = "AI_ML"
	SkillTool                SkillCategory = "TOOL"
)

var skillCategoryDescriptions = map[SkillCategory]string{
	SkillProgrammingLanguage: "프로그래밍 언어",
	SkillFrontend:            "프론트엔드",
	SkillBackend:             "백엔드",
	SkillDatabase:            "데이터베이스",
	SkillDevOps:              "데브옵스",
	SkillCloud:               "클라우드",
	SkillMobile:              "모바일",
	SkillGame:                "게임",
	SkillAIML:                "AI/ML",
	SkillTool:                "도구",
}

func (c SkillCategory) Description() string {
	return skillCategoryDescriptions[c]
}

// ParseSkillCategory validates an enum string from the API.
func ParseSkillCategory(s string) (SkillCategory, error) {
	c := SkillCategory(s)
	if _, ok := skillCategoryDescriptions[c]; !ok {
		return "", fmt.Errorf("invalid skill category: %q", s)
	}
	return c, nil
}
