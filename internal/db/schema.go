package db

// Schema for exported sections (one row per section_id; re-export replaces)
const createSectionsTable = `
CREATE TABLE IF NOT EXISTS sections (
    section_id INTEGER PRIMARY KEY,
    crn TEXT,
    lec_lab TEXT,
    course_id INTEGER,
    subject TEXT NOT NULL,
    course_number TEXT NOT NULL,
    title TEXT NOT NULL,
    semester TEXT,
    year INTEGER,
    credits_min REAL,
    credits_max REAL,
    current_enrollment INTEGER,
    max_enrollment INTEGER,
    export_id INTEGER
);

CREATE INDEX IF NOT EXISTS idx_sections_course ON sections(subject, course_number, title);
CREATE INDEX IF NOT EXISTS idx_sections_term ON sections(year, semester);
`

const createMeetingsTable = `
CREATE TABLE IF NOT EXISTS meetings (
    section_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    days TEXT,
    start_time TEXT,
    end_time TEXT,
    bldg TEXT,
    room TEXT,
    location TEXT,
    PRIMARY KEY (section_id, position)
);
`

const createSectionInstructorsTable = `
CREATE TABLE IF NOT EXISTS section_instructors (
    section_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    instructor_id INTEGER,
    name TEXT NOT NULL,
    netid TEXT,
    email TEXT,
    identity_key TEXT NOT NULL,
    PRIMARY KEY (section_id, position)
);

CREATE INDEX IF NOT EXISTS idx_section_instructors_key ON section_instructors(identity_key);
`

// Schema for resolved ratings, keyed like the session rating cache
const createRatingsTable = `
CREATE TABLE IF NOT EXISTS instructor_ratings (
    identity_key TEXT PRIMARY KEY,
    rmp_id TEXT,
    rmp_url TEXT,
    avg_rating REAL,
    num_ratings INTEGER,
    difficulty REAL,
    would_take_again REAL,
    top_tags TEXT,
    last_refreshed TEXT,
    error TEXT,
    resolved_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const createExportsTable = `
CREATE TABLE IF NOT EXISTS exports (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    base_url TEXT NOT NULL,
    filters TEXT NOT NULL,
    reported_total REAL,
    pages INTEGER NOT NULL DEFAULT 0,
    sections INTEGER NOT NULL DEFAULT 0,
    started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    finished_at DATETIME
);
`

const insertSection = `
INSERT OR REPLACE INTO sections (
    section_id, crn, lec_lab, course_id, subject, course_number, title,
    semester, year, credits_min, credits_max, current_enrollment, max_enrollment, export_id
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const deleteMeetings = `DELETE FROM meetings WHERE section_id = ?`

const insertMeeting = `
INSERT INTO meetings (section_id, position, days, start_time, end_time, bldg, room, location)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

const deleteSectionInstructors = `DELETE FROM section_instructors WHERE section_id = ?`

const insertSectionInstructor = `
INSERT INTO section_instructors (section_id, position, instructor_id, name, netid, email, identity_key)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

const insertRating = `
INSERT OR REPLACE INTO instructor_ratings (
    identity_key, rmp_id, rmp_url, avg_rating, num_ratings, difficulty,
    would_take_again, top_tags, last_refreshed, error
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const selectRating = `
SELECT rmp_id, rmp_url, avg_rating, num_ratings, difficulty, would_take_again,
    COALESCE(top_tags, ''), last_refreshed, COALESCE(error, '')
FROM instructor_ratings WHERE identity_key = ?
`

const insertExport = `
INSERT INTO exports (base_url, filters) VALUES (?, ?)
`

const finishExport = `
UPDATE exports SET reported_total = ?, pages = ?, sections = ?, finished_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const selectExport = `
SELECT id, base_url, filters, reported_total, pages, sections FROM exports WHERE id = ?
`

const selectSectionCount = `SELECT COUNT(*) FROM sections`

const selectInstructorKeys = `
SELECT DISTINCT identity_key FROM section_instructors ORDER BY identity_key
`

const selectCourseCounts = `
SELECT subject, course_number, title, COUNT(*) AS section_count
FROM sections
GROUP BY subject, course_number, title
ORDER BY subject, course_number, title
`
