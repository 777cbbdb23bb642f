package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"blogfront/internal/models"
)

// Session is the persisted record, one row per browser session. The
// token pair and the cached profile blob live in the same row so a set
// can never leave them disagreeing.
type Session struct {
	SID          string `gorm:"column:sid;primaryKey"`
	AccessToken  string `gorm:"not null"`
	RefreshToken string
	UserJSON     string `gorm:"column:user_json"`
	UpdatedAt    time.Time
}

// State is the in-memory view handed to controllers.
type State struct {
	AccessToken  string
	RefreshToken string
	User         models.UserProfile
}

// Store is the single injected session surface; controllers never read
// the persistence layer directly.
type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if err := db.AutoMigrate(&Session{}); err != nil {
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	return &Store{db: db}, nil
}

// Current returns the session for sid, or nil when none exists. A
// missing session is not an error; guards treat it as logged out.
func (s *Store) Current(sid string) (*State, error) {
	if sid == "" {
		return nil, nil
	}
	var row Session
	if err := s.db.Where("sid = ?", sid).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	state := &State{
		AccessToken:  row.AccessToken,
		RefreshToken: row.RefreshToken,
	}
	if row.UserJSON != "" {
		if err := json.Unmarshal([]byte(row.UserJSON), &state.User); err != nil {
			return nil, fmt.Errorf("decode cached profile: %w", err)
		}
	}
	return state, nil
}

func (s *Store) Set(sid string, state State) error {
	blob, err := json.Marshal(state.User)
	if err != nil {
		return fmt.Errorf("encode cached profile: %w", err)
	}
	row := Session{
		SID:          sid,
		AccessToken:  state.AccessToken,
		RefreshToken: state.RefreshToken,
		UserJSON:     string(blob),
		UpdatedAt:    time.Now(),
	}
	if err := s.db.Save(&row).Error; err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// SetUser refreshes only the cached profile blob, keeping the token pair
// of the same row. Used after profile mutations such as a picture upload.
func (s *Store) SetUser(sid string, user models.UserProfile) error {
	blob, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode cached profile: %w", err)
	}
	res := s.db.Model(&Session{}).Where("sid = ?", sid).Updates(map[string]any{
		"user_json":  string(blob),
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return fmt.Errorf("write session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.New("no session to update")
	}
	return nil
}

func (s *Store) Clear(sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.db.Where("sid = ?", sid).Delete(&Session{}).Error; err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
