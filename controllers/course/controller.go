package controllers

import (
	"errors"

	"gorm.io/gorm"

	courseModels "webmatematica/models/course"
	"webmatematica/storage"
	"webmatematica/utils"
)

// CourseController serves the course authoring and course viewing endpoints
type CourseController struct {
	Db      *gorm.DB
	Storage storage.FileStorage
	Errors  *utils.ErrorLogger
	OEmbed  *utils.OEmbedClient // optional
}

func NewCourseController(db *gorm.DB, fileStorage storage.FileStorage, errorLogger *utils.ErrorLogger, oembed *utils.OEmbedClient) *CourseController {
	return &CourseController{
		Db:      db,
		Storage: fileStorage,
		Errors:  errorLogger,
		OEmbed:  oembed,
	}
}

func (ctl *CourseController) findCourse(courseID uint, publishedOnly bool) (*courseModels.Course, error) {
	query := ctl.Db.Where("id = ? AND is_deleted = ?", courseID, false)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var course courseModels.Course
	if err := query.First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (ctl *CourseController) findSection(courseID, sectionID uint) (*courseModels.Section, error) {
	var section courseModels.Section
	err := ctl.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", sectionID, courseID, false).First(&section).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
