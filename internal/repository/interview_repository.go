package repository

import (
	"gorm.io/gorm"

	"github.com/mulakatpro/interview-analyzer/internal/model"
)

type InterviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{db}
}

func (r *InterviewRepository) Create(session *model.InterviewSession) error {
	return r.db.Create(session).Error
}

func (r *InterviewRepository) Update(session *model.InterviewSession) error {
	return r.db.Save(session).Error
}

func (r *InterviewRepository) FindByID(id string) (*model.InterviewSession, error) {
	var session model.InterviewSession
	err := r.db.First(&session, "id = ?", id).Error
	return &session, err
}

func (r *InterviewRepository) List(page, pageSize int) ([]model.InterviewSession, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := r.db.Model(&model.InterviewSession{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []model.InterviewSession
	err := r.db.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&sessions).Error
	return sessions, total, err
}
