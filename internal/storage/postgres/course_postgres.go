package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	courseSeqNoConstraint = "courses_seq_no_key"
	courseURLConstraint   = "courses_url_key"

	maxSeqNoAttempts = 3
)

const courseColumns = `id, seq_no, title, icon_url, icon_object_key, long_description, category, url, created_at, last_updated_at`

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

// NewCourse assigns the next global seq_no and inserts the course as one
// REPEATABLE READ transaction. Two concurrent creations can still observe the
// same maximum; the unique constraint on seq_no catches that and the insert
// is retried with a fresh read.
func (r *CoursePostgres) NewCourse(ctx context.Context, course *models.Course) error {
	var err error
	for attempt := 0; attempt < maxSeqNoAttempts; attempt++ {
		err = r.insertCourse(ctx, course)
		if err == nil {
			return nil
		}
		if !retryableSeqNoErr(err, courseSeqNoConstraint) {
			break
		}
	}
	if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == codeUniqueViolation {
		if pgErr.ConstraintName == courseURLConstraint {
			return app_errors.ErrCourseURLTaken
		}
		return app_errors.ErrSeqNoConflict
	}
	return err
}

func (r *CoursePostgres) insertCourse(ctx context.Context, course *models.Course) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var maxSeqNo int64
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(seq_no), 0) FROM courses`).Scan(&maxSeqNo); err != nil {
		return fmt.Errorf("failed to get max course seq_no: %w", err)
	}
	course.SeqNo = maxSeqNo + 1

	now := time.Now().UTC()
	course.CreatedAt = now
	course.LastUpdatedAt = now

	insertQuery := `
        INSERT INTO courses (
            seq_no, title, icon_url, icon_object_key, long_description,
            category, url, created_at, last_updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
	err = tx.QueryRow(ctx, insertQuery,
		course.SeqNo, course.Title, course.IconURL, course.IconObjectKey,
		course.LongDescription, course.Category, course.URL,
		course.CreatedAt, course.LastUpdatedAt,
	).Scan(&course.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *CoursePostgres) CourseByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return r.scanOneCourse(r.db.QueryRow(ctx, query, id))
}

func (r *CoursePostgres) CourseByURL(ctx context.Context, url string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE url = $1`
	return r.scanOneCourse(r.db.QueryRow(ctx, query, url))
}

func (r *CoursePostgres) scanOneCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID, &course.SeqNo, &course.Title, &course.IconURL,
		&course.IconObjectKey, &course.LongDescription, &course.Category,
		&course.URL, &course.CreatedAt, &course.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (r *CoursePostgres) ListCourses(ctx context.Context) ([]models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY seq_no DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(
			&c.ID, &c.SeqNo, &c.Title, &c.IconURL, &c.IconObjectKey,
			&c.LongDescription, &c.Category, &c.URL, &c.CreatedAt, &c.LastUpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// ListCoursesWithLessons loads every course with its lessons attached,
// lessons ordered by seq_no within their course.
func (r *CoursePostgres) ListCoursesWithLessons(ctx context.Context) ([]models.Course, error) {
	courses, err := r.ListCourses(ctx)
	if err != nil {
		return nil, err
	}

	lessonsQuery := `
        SELECT id, title, duration, seq_no, course_id, created_at, last_updated_at
          FROM lessons
         ORDER BY course_id, seq_no
    `
	rows, err := r.db.Query(ctx, lessonsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	lessonsByCourse := make(map[int64][]models.Lesson)
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.Title, &l.Duration, &l.SeqNo, &l.CourseID, &l.CreatedAt, &l.LastUpdatedAt); err != nil {
			return nil, err
		}
		lessonsByCourse[l.CourseID] = append(lessonsByCourse[l.CourseID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range courses {
		courses[i].Lessons = lessonsByCourse[courses[i].ID]
	}
	return courses, nil
}

func (r *CoursePostgres) CountCourses(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return total, nil
}

func (r *CoursePostgres) UpdateCourse(ctx context.Context, id int64, changes models.CourseChanges) error {
	setClauses := []string{"last_updated_at = $1"}
	args := []any{time.Now().UTC()}

	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("title", changes.Title)
	add("icon_url", changes.IconURL)
	add("long_description", changes.LongDescription)
	add("category", changes.Category)
	add("url", changes.URL)

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE courses SET %s WHERE id = $%d`,
		strings.Join(setClauses, ", "), len(args))

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == codeUniqueViolation {
			return app_errors.ErrCourseURLTaken
		}
		return err
	}
	return nil
}

func (r *CoursePostgres) SetCourseIcon(ctx context.Context, id int64, objectKey string) error {
	query := `
        UPDATE courses
           SET icon_object_key = $2,
               last_updated_at = $3
         WHERE id = $1
    `
	cmdTag, err := r.db.Exec(ctx, query, id, objectKey, time.Now().UTC())
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

// DeleteCourseCascade removes the course's lessons and then the course itself
// in a single transaction. Deleting a course that does not exist is not an
// error; the returned count is zero.
func (r *CoursePostgres) DeleteCourseCascade(ctx context.Context, id int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `DELETE FROM lessons WHERE course_id = $1`, id); err != nil {
		return 0, err
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return cmdTag.RowsAffected(), nil
}
