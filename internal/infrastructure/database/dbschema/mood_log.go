package dbschema

import (
	"time"

	"aramesh-server/services/therapy-api/internal/domain/mood"
)

type MoodLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PublicID  string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID    uint      `gorm:"not null;index"`
	Score     int       `gorm:"not null"`
	Note      *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (MoodLog) TableName() string {
	return "mood_logs"
}

func NewSchemaMoodLog(d *mood.MoodLog) *MoodLog {
	if d == nil {
		return nil
	}

	return &MoodLog{
		ID:        d.ID,
		PublicID:  d.PublicID,
		UserID:    d.UserID,
		Score:     d.Score,
		Note:      d.Note,
		CreatedAt: d.CreatedAt,
	}
}

func (s *MoodLog) EtoD() *mood.MoodLog {
	if s == nil {
		return nil
	}

	return &mood.MoodLog{
		ID:        s.ID,
		PublicID:  s.PublicID,
		UserID:    s.UserID,
		Score:     s.Score,
		Note:      s.Note,
		CreatedAt: s.CreatedAt,
	}
}
