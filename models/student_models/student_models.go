package student_models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Student is one workshop registration.
type Student struct {
	ID                   uuid.UUID `json:"id"`
	StudentName          string    `json:"studentName"`
	WhatsappNumber       string    `json:"whatsappNumber,omitempty"`
	HighestQualification string    `json:"highestQualification"`
	WorkingInIT          bool      `json:"workingInIT,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
}

// CreateStudent inserts a new registration.
func CreateStudent(ctx context.Context, db *pgxpool.Pool, s *Student) (*Student, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for student: %w", err)
	}
	s.ID = id
	s.CreatedAt = time.Now()

	_, err = db.Exec(ctx, `
		INSERT INTO students (id, student_name, whatsapp_number, highest_qualification, working_in_it, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.StudentName, s.WhatsappNumber, s.HighestQualification, s.WorkingInIT, s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to register student: %w", err)
	}
	return s, nil
}

// GetAllStudents returns every registration, newest first.
func GetAllStudents(ctx context.Context, db *pgxpool.Pool) ([]*Student, error) {
	rows, err := db.Query(ctx, `
		SELECT id, student_name, whatsapp_number, highest_qualification, working_in_it, created_at
		FROM students ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []*Student
	for rows.Next() {
		s := &Student{}
		if err := rows.Scan(&s.ID, &s.StudentName, &s.WhatsappNumber,
			&s.HighestQualification, &s.WorkingInIT, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// GetPublicStudents returns only name, qualification and registration time,
// for the public listing.
func GetPublicStudents(ctx context.Context, db *pgxpool.Pool) ([]*Student, error) {
	rows, err := db.Query(ctx, `
		SELECT id, student_name, highest_qualification, created_at
		FROM students ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []*Student
	for rows.Next() {
		s := &Student{}
		if err := rows.Scan(&s.ID, &s.StudentName, &s.HighestQualification, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}
