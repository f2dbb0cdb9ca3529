package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"CourseHub/internal/app_errors"
	"CourseHub/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const lessonSeqNoConstraint = "lessons_course_id_seq_no_key"

type LessonPostgres struct {
	db *pgxpool.Pool
}

func NewLessonPostgres(db *pgxpool.Pool) *LessonPostgres {
	return &LessonPostgres{db: db}
}

// CreateLesson assigns the next seq_no within the owning course and inserts
// the lesson as one REPEATABLE READ transaction. The course existence check
// runs inside the same transaction, before the max is computed. Races on the
// per-course seq_no are caught by the (course_id, seq_no) unique constraint
// and retried.
func (r *LessonPostgres) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	var err error
	for attempt := 0; attempt < maxSeqNoAttempts; attempt++ {
		err = r.insertLesson(ctx, lesson)
		if err == nil {
			return nil
		}
		if !retryableSeqNoErr(err, lessonSeqNoConstraint) {
			break
		}
	}
	if pgErr := UnwrapPgError(err); pgErr != nil && pgErr.Code == codeUniqueViolation {
		return app_errors.ErrSeqNoConflict
	}
	return err
}

func (r *LessonPostgres) insertLesson(ctx context.Context, lesson *models.Lesson) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var courseID int64
	err = tx.QueryRow(ctx, `SELECT id FROM courses WHERE id = $1`, lesson.CourseID).Scan(&courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return app_errors.ErrCourseNotFound
		}
		return err
	}

	var maxSeqNo int64
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(seq_no), 0) FROM lessons WHERE course_id = $1`,
		lesson.CourseID,
	).Scan(&maxSeqNo)
	if err != nil {
		return fmt.Errorf("failed to get max lesson seq_no: %w", err)
	}
	lesson.SeqNo = maxSeqNo + 1

	now := time.Now().UTC()
	lesson.CreatedAt = now
	lesson.LastUpdatedAt = now

	insertQuery := `
        INSERT INTO lessons (
            title, duration, seq_no, course_id, created_at, last_updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	err = tx.QueryRow(ctx, insertQuery,
		lesson.Title, lesson.Duration, lesson.SeqNo, lesson.CourseID,
		lesson.CreatedAt, lesson.LastUpdatedAt,
	).Scan(&lesson.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *LessonPostgres) LessonsPage(ctx context.Context, courseID int64, pageNumber, pageSize int) ([]models.Lesson, error) {
	query := `
        SELECT id, title, duration, seq_no, course_id, created_at, last_updated_at
          FROM lessons
         WHERE course_id = $1
         ORDER BY seq_no
         OFFSET $2 LIMIT $3
    `
	rows, err := r.db.Query(ctx, query, courseID, pageNumber*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons page: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.Title, &l.Duration, &l.SeqNo, &l.CourseID, &l.CreatedAt, &l.LastUpdatedAt); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (r *LessonPostgres) CountLessons(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM lessons`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}
	return total, nil
}

func (r *LessonPostgres) CountLessonsByCourse(ctx context.Context, courseID int64) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM lessons WHERE course_id = $1`, courseID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count lessons for course: %w", err)
	}
	return total, nil
}
