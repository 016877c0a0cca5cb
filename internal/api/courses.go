package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/VitoPython/EduLand-sub000/internal/model"
)

type CourseInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

func (c *Client) ListCourses(ctx context.Context) ([]model.Course, error) {
	var out []model.Course
	if err := c.get(ctx, "/courses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCourse(ctx context.Context, id string) (*model.Course, error) {
	var out model.Course
	if err := c.get(ctx, "/courses/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCourse(ctx context.Context, in CourseInput) (*model.Course, error) {
	var out model.Course
	if err := c.post(ctx, "/courses", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id string, in CourseInput) (*model.Course, error) {
	var out model.Course
	if err := c.put(ctx, "/courses/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.delete(ctx, "/courses/"+url.PathEscape(id))
}

type LessonInput struct {
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	Content  string `json:"content,omitempty"`
	Position int    `json:"position"`
}

// ListLessons returns the lessons of one course in server order.
func (c *Client) ListLessons(ctx context.Context, courseID string) ([]model.Lesson, error) {
	q := url.Values{}
	if courseID != "" {
		q.Set("course_id", courseID)
	}
	var out []model.Lesson
	if err := c.get(ctx, "/lessons", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetLesson(ctx context.Context, id string) (*model.Lesson, error) {
	var out model.Lesson
	if err := c.get(ctx, "/lessons/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateLesson(ctx context.Context, in LessonInput) (*model.Lesson, error) {
	if in.CourseID == "" {
		return nil, fmt.Errorf("lesson course_id is required")
	}
	var out model.Lesson
	if err := c.post(ctx, "/lessons", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateLesson(ctx context.Context, id string, in LessonInput) (*model.Lesson, error) {
	var out model.Lesson
	if err := c.put(ctx, "/lessons/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteLesson(ctx context.Context, id string) error {
	return c.delete(ctx, "/lessons/"+url.PathEscape(id))
}
