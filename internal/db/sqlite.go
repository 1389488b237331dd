package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonahtballard/CatBase/internal/models"
	"github.com/jonahtballard/CatBase/internal/ratings"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite export snapshot
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schemas := []struct {
		name string
		ddl  string
	}{
		{"sections", createSectionsTable},
		{"meetings", createMeetingsTable},
		{"section instructors", createSectionInstructorsTable},
		{"ratings", createRatingsTable},
		{"exports", createExportsTable},
	}
	for _, s := range schemas {
		if _, err := conn.Exec(s.ddl); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create %s schema: %w", s.name, err)
		}
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Export describes one export run
type Export struct {
	ID            int64
	BaseURL       string
	Filters       models.FilterState
	ReportedTotal *float64
	Pages         int
	Sections      int
}

// BeginExport records the start of an export run and returns its id
func (db *DB) BeginExport(baseURL string, filters models.FilterState) (int64, error) {
	raw, err := json.Marshal(filters)
	if err != nil {
		return 0, fmt.Errorf("failed to encode filters: %w", err)
	}
	res, err := db.conn.Exec(insertExport, baseURL, string(raw))
	if err != nil {
		return 0, fmt.Errorf("failed to insert export: %w", err)
	}
	return res.LastInsertId()
}

// FinishExport stores the final counters of an export run
func (db *DB) FinishExport(id int64, reportedTotal *float64, pages, sections int) error {
	if _, err := db.conn.Exec(finishExport, nullable(reportedTotal), pages, sections, id); err != nil {
		return fmt.Errorf("failed to finish export %d: %w", id, err)
	}
	return nil
}

// GetExport loads an export run
func (db *DB) GetExport(id int64) (*Export, error) {
	var (
		e     Export
		raw   string
		total sql.NullFloat64
	)
	err := db.conn.QueryRow(selectExport, id).Scan(&e.ID, &e.BaseURL, &raw, &total, &e.Pages, &e.Sections)
	if err != nil {
		return nil, fmt.Errorf("failed to get export %d: %w", id, err)
	}
	if err := json.Unmarshal([]byte(raw), &e.Filters); err != nil {
		return nil, fmt.Errorf("failed to decode filters of export %d: %w", id, err)
	}
	if total.Valid {
		e.ReportedTotal = &total.Float64
	}
	return &e, nil
}

// InsertSections stores one page of sections with their meetings and
// instructors. A section seen again replaces its earlier rows.
func (db *DB) InsertSections(exportID int64, records []models.SectionRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	prepared := make(map[string]*sql.Stmt)
	for _, q := range []string{insertSection, deleteMeetings, insertMeeting, deleteSectionInstructors, insertSectionInstructor} {
		stmt, err := tx.Prepare(q)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()
		prepared[q] = stmt
	}

	for _, r := range records {
		_, err := prepared[insertSection].Exec(
			r.SectionID,
			r.CRN,
			r.LecLab,
			r.CourseID,
			r.Subject,
			r.CourseNumber,
			r.Title,
			r.Semester,
			r.Year,
			nullable(r.CreditsMin),
			nullable(r.CreditsMax),
			nullableInt(r.CurrentEnrollment),
			nullableInt(r.MaxEnrollment),
			exportID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert section %d: %w", r.SectionID, err)
		}

		if _, err := prepared[deleteMeetings].Exec(r.SectionID); err != nil {
			return fmt.Errorf("failed to clear meetings of %d: %w", r.SectionID, err)
		}
		for i, m := range r.Meetings {
			if _, err := prepared[insertMeeting].Exec(r.SectionID, i, m.Days, m.StartTime, m.EndTime, m.Bldg, m.Room, m.Location); err != nil {
				return fmt.Errorf("failed to insert meeting of %d: %w", r.SectionID, err)
			}
		}

		if _, err := prepared[deleteSectionInstructors].Exec(r.SectionID); err != nil {
			return fmt.Errorf("failed to clear instructors of %d: %w", r.SectionID, err)
		}
		for i, in := range r.Instructors {
			_, err := prepared[insertSectionInstructor].Exec(r.SectionID, i, nullable(in.InstructorID), in.Name, in.NetID, in.Email, ratings.IdentityKey(in))
			if err != nil {
				return fmt.Errorf("failed to insert instructor of %d: %w", r.SectionID, err)
			}
		}
	}

	return tx.Commit()
}

// SaveRating stores a settled rating lookup under its identity key
func (db *DB) SaveRating(key string, e ratings.Entry) error {
	p := e.Profile
	if p == nil {
		p = &models.RatingProfile{}
	}

	var tags, errText *string
	if len(p.TopTags) > 0 {
		raw, err := json.Marshal(p.TopTags)
		if err != nil {
			return fmt.Errorf("failed to encode tags: %w", err)
		}
		s := string(raw)
		tags = &s
	}
	if e.Err != nil {
		s := e.Err.Error()
		errText = &s
	}

	_, err := db.conn.Exec(insertRating,
		key, nullable(p.RMPID), nullable(p.ProfileURL), nullable(p.AvgRating), nullableInt(p.NumRatings),
		nullable(p.Difficulty), nullable(p.WouldTakeAgain), nullable(tags), nullable(p.LastRefreshed), nullable(errText),
	)
	if err != nil {
		return fmt.Errorf("failed to save rating %s: %w", key, err)
	}
	return nil
}

// StoredRating is a rating row read back from the snapshot
type StoredRating struct {
	Profile *models.RatingProfile
	Error   string // non-empty if the lookup failed
}

// GetRating loads the rating stored under key; found is false if none
func (db *DB) GetRating(key string) (rating StoredRating, found bool, err error) {
	var (
		rmpID, rmpURL, refreshed sql.NullString
		avg, difficulty, again   sql.NullFloat64
		count                    sql.NullInt64
		tags                     string
	)
	err = db.conn.QueryRow(selectRating, key).Scan(&rmpID, &rmpURL, &avg, &count, &difficulty, &again, &tags, &refreshed, &rating.Error)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredRating{}, false, nil
	}
	if err != nil {
		return StoredRating{}, false, fmt.Errorf("failed to get rating %s: %w", key, err)
	}

	p := &models.RatingProfile{
		RMPID:          nullString(rmpID),
		ProfileURL:     nullString(rmpURL),
		AvgRating:      nullFloat(avg),
		Difficulty:     nullFloat(difficulty),
		WouldTakeAgain: nullFloat(again),
		LastRefreshed:  nullString(refreshed),
	}
	if count.Valid {
		n := int(count.Int64)
		p.NumRatings = &n
	}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &p.TopTags); err != nil {
			return StoredRating{}, false, fmt.Errorf("failed to decode tags of %s: %w", key, err)
		}
	}
	rating.Profile = p
	return rating, true, nil
}

// CountSections returns the number of stored sections
func (db *DB) CountSections() (int, error) {
	var n int
	if err := db.conn.QueryRow(selectSectionCount).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sections: %w", err)
	}
	return n, nil
}

// InstructorKeys returns the distinct identity keys of stored instructors
func (db *DB) InstructorKeys() ([]string, error) {
	rows, err := db.conn.Query(selectInstructorKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to query instructors: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan instructor: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// CourseCount is the number of stored sections of one course
type CourseCount struct {
	Key      models.CourseKey
	Sections int
}

// CourseCounts summarizes the snapshot per course, ordered by key
func (db *DB) CourseCounts() ([]CourseCount, error) {
	rows, err := db.conn.Query(selectCourseCounts)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var out []CourseCount
	for rows.Next() {
		var c CourseCount
		if err := rows.Scan(&c.Key.Subject, &c.Key.CourseNumber, &c.Key.Title, &c.Sections); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// nullable turns an optional field into a driver value (nil for SQL NULL)
func nullable[T int64 | float64 | string](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	return &f.Float64
}
