package entity

import "time"

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

func ValidSkillLevel(s SkillLevel) bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}

type Course struct {
	ID                   string     `bson:"_id" json:"id"`
	BootcampID           string     `bson:"bootcamp_id" json:"bootcamp_id"`
	OwnerID              string     `bson:"owner_id" json:"owner_id"`
	Title                string     `bson:"title" json:"title"`
	Description          string     `bson:"description" json:"description"`
	Weeks                int        `bson:"weeks" json:"weeks"`
	Tuition              int        `bson:"tuition" json:"tuition"`
	MinimumSkill         SkillLevel `bson:"minimum_skill" json:"minimum_skill"`
	ScholarshipAvailable bool       `bson:"scholarship_available" json:"scholarship_available"`
	CreatedAt            time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `bson:"updated_at" json:"updated_at"`
}
