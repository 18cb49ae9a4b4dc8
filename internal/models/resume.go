package models

import (
	"time"

	"gorm.io/datatypes"
)

type CandidateResume struct {
	ID            string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	CandidateName string `gorm:"column:candidate_name;type:varchar(255);not null" json:"candidate_name"`
	Email         string `gorm:"column:email;type:varchar(255)" json:"email"`
	Phone         string `gorm:"column:phone;type:varchar(50)" json:"phone"`
	Content       string `gorm:"column:content;type:text;not null" json:"content"`

	FileName         string `gorm:"column:file_name;type:varchar(255)" json:"file_name"`
	OriginalFilePath string `gorm:"column:original_file_path;type:varchar(512)" json:"original_file_path"`
	FileType         string `gorm:"column:file_type;type:varchar(50)" json:"file_type"`

	Skills     datatypes.JSON `gorm:"column:skills" json:"skills,omitempty"`
	Experience datatypes.JSON `gorm:"column:experience" json:"experience,omitempty"`
	Education  datatypes.JSON `gorm:"column:education" json:"education,omitempty"`

	UploadedBy string `gorm:"column:uploaded_by;type:varchar(36);index" json:"uploaded_by"`

	UploadedAt time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (CandidateResume) TableName() string { return "candidate_resumes" }
