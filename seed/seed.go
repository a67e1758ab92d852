// Package seed loads course content from a YAML file into the database and
// bootstraps the admin account.
package seed

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"webmatematica/activity"
	"webmatematica/models"
	courseModels "webmatematica/models/course"
	"webmatematica/resolver"
)

type File struct {
	Courses []Course `yaml:"courses"`
}

type Course struct {
	Title        string    `yaml:"title"`
	Description  string    `yaml:"description"`
	Level        string    `yaml:"level"`
	Duration     string    `yaml:"duration"`
	Category     string    `yaml:"category"`
	ImageURL     string    `yaml:"image_url"`
	Requirements string    `yaml:"requirements"`
	Published    bool      `yaml:"published"`
	Sections     []Section `yaml:"sections"`
}

type Section struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Content     string     `yaml:"content"`
	VideoURL    string     `yaml:"video_url"`
	Resources   []Resource `yaml:"resources"`
	Activities  []Activity `yaml:"activities"`
}

type Resource struct {
	Title       string `yaml:"title"`
	Type        string `yaml:"type"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

type Activity struct {
	Title       string                  `yaml:"title"`
	Type        string                  `yaml:"type"`
	Description string                  `yaml:"description"`
	Questions   []courseModels.Question `yaml:"questions"`
	Content     string                  `yaml:"content"`
	Solution    string                  `yaml:"solution"`
	Explanation string                  `yaml:"explanation"`
}

// Stats counts what Apply inserted
type Stats struct {
	Courses    int
	Skipped    int
	Sections   int
	Resources  int
	Activities int
}

// Load reads and parses a seed file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "invalid seed file")
	}
	return &file, nil
}

// Apply inserts every course whose title is not in the database yet. A course is
// inserted with all its sections, resources and activities or not at all.
func Apply(db *gorm.DB, file *File, authorID uint) (Stats, error) {
	var stats Stats

	for _, course := range file.Courses {
		var existing int64
		db.Model(&courseModels.Course{}).Where("title = ? AND is_deleted = ?", course.Title, false).Count(&existing)
		if existing > 0 {
			log.Printf("[SEED] Skipping existing course %q", course.Title)
			stats.Skipped++
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			return insertCourse(tx, course, authorID, &stats)
		})
		if err != nil {
			return stats, errors.Wrapf(err, "course %q", course.Title)
		}
		stats.Courses++
	}
	return stats, nil
}

func insertCourse(tx *gorm.DB, c Course, authorID uint, stats *Stats) error {
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("course title is required")
	}

	course := courseModels.Course{
		Title:        c.Title,
		Description:  c.Description,
		Level:        c.Level,
		Duration:     c.Duration,
		Category:     c.Category,
		ImageURL:     c.ImageURL,
		Requirements: c.Requirements,
		AuthorID:     authorID,
		IsPublished:  c.Published,
	}
	if err := tx.Create(&course).Error; err != nil {
		return err
	}

	for i, s := range c.Sections {
		section := courseModels.Section{
			CourseID:    course.ID,
			Title:       s.Title,
			Description: s.Description,
			Content:     s.Content,
			VideoURL:    s.VideoURL,
			Order:       i + 1,
		}
		if err := tx.Create(&section).Error; err != nil {
			return err
		}
		stats.Sections++

		for _, r := range s.Resources {
			if _, err := resolver.Resolve(r.URL, r.Type); err != nil {
				return errors.Wrapf(err, "section %q resource %q", s.Title, r.Title)
			}
			resource := courseModels.Resource{
				CourseID:    course.ID,
				SectionID:   section.ID,
				Title:       r.Title,
				Type:        r.Type,
				URL:         r.URL,
				Description: r.Description,
			}
			if err := tx.Create(&resource).Error; err != nil {
				return err
			}
			stats.Resources++
		}

		for j, a := range s.Activities {
			record := courseModels.Activity{
				CourseID:    course.ID,
				SectionID:   section.ID,
				Title:       a.Title,
				Type:        strings.ToLower(a.Type),
				Description: a.Description,
				Questions:   datatypes.JSONSlice[courseModels.Question](withQuestionIDs(a.Questions, j)),
				Content:     a.Content,
				Solution:    a.Solution,
				Explanation: a.Explanation,
				Order:       j + 1,
			}
			if _, err := activity.FromActivity(record); err != nil {
				return errors.Wrapf(err, "section %q activity %q", s.Title, a.Title)
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			stats.Activities++
		}
	}
	return nil
}

// withQuestionIDs numbers questions that have no id: "a1-q1", "a1-q2"...
func withQuestionIDs(questions []courseModels.Question, activityIndex int) []courseModels.Question {
	out := make([]courseModels.Question, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			q.ID = fmt.Sprintf("a%d-q%d", activityIndex+1, i+1)
		}
		out[i] = q
	}
	return out
}

// EnsureAdmin creates the admin account, or promotes an existing user with that email
func EnsureAdmin(db *gorm.DB, name, email, password string, cost int) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("admin email is required")
	}

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		if user.Role != models.RoleAdmin || user.IsDeleted {
			user.Role = models.RoleAdmin
			user.IsDeleted = false
			if err := db.Save(&user).Error; err != nil {
				return nil, errors.Wrap(err, "failed to promote admin")
			}
			log.Printf("[SEED] Promoted %s to admin", email)
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to look up admin")
	}

	if len(password) < 8 {
		return nil, errors.New("admin password must be at least 8 characters long")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash admin password")
	}

	user = models.User{
		Name:     name,
		Email:    email,
		Role:     models.RoleAdmin,
		Password: string(hashed),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, errors.Wrap(err, "failed to create admin")
	}
	log.Printf("[SEED] Created admin %s", email)
	return &user, nil
}
