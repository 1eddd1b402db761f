package db

const createSearchesTable = `
CREATE TABLE IF NOT EXISTS searches (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    rover TEXT NOT NULL,
    camera TEXT NOT NULL DEFAULT '',
    earth_date TEXT NOT NULL,
    search_count INTEGER NOT NULL DEFAULT 1,
    searched_at TEXT NOT NULL,
    UNIQUE(rover, camera, earth_date)
);

CREATE INDEX IF NOT EXISTS idx_searches_searched_at ON searches(searched_at);
`

const upsertSearch = `
INSERT INTO searches (rover, camera, earth_date, searched_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(rover, camera, earth_date) DO UPDATE SET
    search_count = search_count + 1,
    searched_at = excluded.searched_at
`

const selectRecentSearches = `
SELECT id, rover, camera, earth_date, searched_at
FROM searches
ORDER BY searched_at DESC, id DESC
LIMIT ?
`

const pruneSearches = `
DELETE FROM searches
WHERE id NOT IN (
    SELECT id FROM searches
    ORDER BY searched_at DESC, id DESC
    LIMIT ?
)
`
