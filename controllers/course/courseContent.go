package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"webmatematica/activity"
	"webmatematica/markdown"
	"webmatematica/middleware"
	courseModels "webmatematica/models/course"
	"webmatematica/resolver"
)

// BlockView is a rendered Markdown line
type BlockView struct {
	Kind  string          `json:"kind"`
	Level int             `json:"level,omitempty"`
	Text  string          `json:"text,omitempty"`
	Spans []markdown.Span `json:"spans,omitempty"`
}

// ResourceView is a resource ready to embed. When the URL could not be resolved
// Embed is empty and FallbackURL links to the raw URL instead.
type ResourceView struct {
	ID          uint           `json:"id,omitempty"`
	Title       string         `json:"title"`
	Type        string         `json:"type"`
	Description string         `json:"description,omitempty"`
	EmbedURL    string         `json:"embed_url,omitempty"`
	Embed       resolver.Embed `json:"embed,omitempty"`
	FallbackURL string         `json:"fallback_url,omitempty"`
	Error       string         `json:"error,omitempty"`
}

type QuestionView struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// ActivityView never carries correct answers or solutions
type ActivityView struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Type        string         `json:"type"`
	Description string         `json:"description,omitempty"`
	Locked      bool           `json:"locked"`
	Questions   []QuestionView `json:"questions,omitempty"`
	Content     string         `json:"content,omitempty"`
	HasSolution bool           `json:"has_solution,omitempty"`
	BestScore   *int           `json:"best_score,omitempty"`
	Attempts    int            `json:"attempts,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// GetSectionContent returns a section of a published course with its Markdown
// rendered to blocks, its resources resolved to embeds and its activities.
// Anonymous visitors only see activity titles.
func (ctl *CourseController) GetSectionContent(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	sectionID := c.Locals("sectionID").(uint)
	userID, loggedIn := middleware.CurrentUserID(c)

	course, err := ctl.findCourse(courseID, true)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	section, err := ctl.findSection(courseID, sectionID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	var resources []courseModels.Resource
	ctl.Db.Where("section_id = ? AND is_deleted = ?", sectionID, false).Order("created_at asc").Find(&resources)

	var activities []courseModels.Activity
	ctl.Db.Where("section_id = ? AND is_deleted = ?", sectionID, false).Order("order_index asc").Find(&activities)

	resourceViews := make([]ResourceView, 0, len(resources))
	for _, r := range resources {
		resourceViews = append(resourceViews, ctl.resourceView(c, r))
	}

	var video *ResourceView
	if section.VideoURL != "" {
		v := ctl.resourceView(c, courseModels.Resource{
			Title: section.Title,
			Type:  courseModels.ResourceTypeVideo,
			URL:   section.VideoURL,
		})
		video = &v
	}

	var attempts []courseModels.ActivityProgress
	if loggedIn {
		ctl.Db.Where("user_id = ? AND section_id = ? AND is_deleted = ?", userID, sectionID, false).Find(&attempts)
	}

	activityViews := make([]ActivityView, 0, len(activities))
	for _, a := range activities {
		view, err := activityView(a, loggedIn)
		if err != nil {
			ctl.logError(c, fmt.Sprintf("Activity %d has unsupported type %q", a.ID, a.Type), map[string]interface{}{
				"context":     "ActivityCard",
				"activity_id": a.ID,
			})
			activityViews = append(activityViews, ActivityView{
				ID:     a.ID,
				Title:  a.Title,
				Type:   a.Type,
				Locked: true,
				Error:  "Unsupported activity type",
			})
			continue
		}
		view.BestScore, view.Attempts = bestScore(attempts, a.ID)
		activityViews = append(activityViews, view)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section content fetched successfully!", fiber.Map{
		"course": fiber.Map{
			"id":    course.ID,
			"title": course.Title,
		},
		"section": fiber.Map{
			"id":          section.ID,
			"title":       section.Title,
			"description": section.Description,
			"order":       section.Order,
		},
		"blocks":     renderBlocks(section.Content),
		"video":      video,
		"resources":  resourceViews,
		"activities": activityViews,
	})
}

func renderBlocks(content string) []BlockView {
	blocks := markdown.Render(content)
	views := make([]BlockView, 0, len(blocks))
	for _, b := range blocks {
		view := BlockView{Kind: b.Kind()}
		switch block := b.(type) {
		case markdown.Heading:
			view.Level = block.Level
			view.Text = block.Text
		case markdown.ListItem:
			view.Text = block.Text
		case markdown.Paragraph:
			view.Text = block.Text
			view.Spans = block.Spans
		}
		views = append(views, view)
	}
	return views
}

// resourceView resolves the resource URL. A failure is logged and turned into a fallback link.
func (ctl *CourseController) resourceView(c *fiber.Ctx, r courseModels.Resource) ResourceView {
	view := ResourceView{
		ID:          r.ID,
		Title:       r.Title,
		Type:        r.Type,
		Description: r.Description,
	}

	embed, err := resolver.Resolve(r.URL, r.Type)
	if err != nil {
		ctl.logError(c, err.Error(), map[string]interface{}{
			"context":     "ResourceEmbed",
			"resource_id": r.ID,
			"type":        r.Type,
			"url":         r.URL,
		})
		view.FallbackURL = r.URL
		view.Error = fmt.Sprintf("Could not load this %s resource.", r.Type)
		return view
	}

	view.Embed = embed
	view.EmbedURL = embed.EmbedURL()
	return view
}

func activityView(a courseModels.Activity, loggedIn bool) (ActivityView, error) {
	variant, err := activity.FromActivity(a)
	if err != nil {
		return ActivityView{}, err
	}

	view := ActivityView{
		ID:          a.ID,
		Title:       a.Title,
		Type:        a.Type,
		Description: a.Description,
		Locked:      !loggedIn,
	}
	if !loggedIn {
		return view, nil
	}

	switch v := variant.(type) {
	case activity.Quiz:
		view.Type = courseModels.ActivityTypeQuiz
		view.Questions = make([]QuestionView, 0, len(v.Questions))
		for _, q := range v.Questions {
			view.Questions = append(view.Questions, QuestionView{ID: q.ID, Text: q.Text, Options: q.Options})
		}
	case activity.Exercise:
		view.Content = v.Content
		view.HasSolution = v.Solution != ""
	}
	return view, nil
}

func bestScore(attempts []courseModels.ActivityProgress, activityID uint) (*int, int) {
	var best *int
	count := 0
	for _, p := range attempts {
		if p.ActivityID != activityID {
			continue
		}
		count++
		if p.Total > 0 && (best == nil || p.Score > *best) {
			score := p.Score
			best = &score
		}
	}
	return best, count
}
