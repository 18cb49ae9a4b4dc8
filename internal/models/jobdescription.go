package models

import (
	"time"

	"gorm.io/datatypes"
)

type JobDescription struct {
	ID      string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Title   string `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Company string `gorm:"column:company;type:varchar(255);not null" json:"company"`
	Content string `gorm:"column:content;type:text;not null" json:"content"`

	FileName         string `gorm:"column:file_name;type:varchar(255)" json:"file_name"`
	OriginalFilePath string `gorm:"column:original_file_path;type:varchar(512)" json:"original_file_path"`
	FileType         string `gorm:"column:file_type;type:varchar(50)" json:"file_type"`

	Requirements       datatypes.JSON `gorm:"column:requirements" json:"requirements,omitempty"`
	SkillsRequired     datatypes.JSON `gorm:"column:skills_required" json:"skills_required,omitempty"`
	ExperienceRequired string         `gorm:"column:experience_required;type:varchar(100)" json:"experience_required"`

	UploadedAt time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (JobDescription) TableName() string { return "job_descriptions" }
