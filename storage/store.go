package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/probeseed/featureflag"
	"github.com/aukilabs/probeseed/geometry"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS probe_sets (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL UNIQUE,
		fingerprint  TEXT NOT NULL DEFAULT '',
		probe_count  INTEGER NOT NULL,
		created_at   TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS probes (
		set_id       TEXT NOT NULL,
		idx          INTEGER NOT NULL,
		x            REAL NOT NULL,
		y            REAL NOT NULL,
		z            REAL NOT NULL,
		PRIMARY KEY (set_id, idx),
		FOREIGN KEY (set_id) REFERENCES probe_sets(id)
	);
`

// ProbeSetInfo describes a probe set persisted in a Store.
type ProbeSetInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Fingerprint string    `json:"fingerprint"`
	ProbeCount  int       `json:"probeCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Store persists named probe sets in a sqlite database. Each name holds a
// single set which is replaced as a whole on every write.
type Store struct {
	// The probe set written by SetProbePositions.
	Name string

	FeatureFlags featureflag.FeatureFlag

	db *sql.DB
}

// OpenStore opens or creates the sqlite database at path.
func OpenStore(path string, name string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.New("opening probe database failed").
			WithType(ErrTypeStorage).
			WithTag("path", path).
			Wrap(err)
	}

	// A single connection keeps ":memory:" databases consistent across
	// queries.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.New("creating probe database schema failed").
			WithType(ErrTypeStorage).
			WithTag("path", path).
			Wrap(err)
	}

	return &Store{
		Name: name,
		db:   db,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SetProbePositions(positions []geometry.Vector3f) error {
	_, err := s.Save(context.Background(), s.Name, positions)
	return err
}

// Save replaces the probe set stored under name within a single transaction.
func (s *Store) Save(ctx context.Context, name string, positions []geometry.Vector3f) (info ProbeSetInfo, err error) {
	defer func() {
		instrumentWrite(sinkSQLite, len(positions), err)
	}()

	info = ProbeSetInfo{
		ID:         uuid.NewString(),
		Name:       name,
		ProbeCount: len(positions),
		CreatedAt:  time.Now().UTC(),
	}
	s.FeatureFlags.IfNotSet(featureflag.FlagDisableFingerprint, func() {
		info.Fingerprint = Fingerprint(positions)
	})

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProbeSetInfo{}, s.wrapError("starting probe set transaction failed", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM probes WHERE set_id IN (SELECT id FROM probe_sets WHERE name = ?)`,
		name,
	); err != nil {
		return ProbeSetInfo{}, s.wrapError("deleting previous probes failed", name, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM probe_sets WHERE name = ?`, name); err != nil {
		return ProbeSetInfo{}, s.wrapError("deleting previous probe set failed", name, err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO probe_sets (id, name, fingerprint, probe_count, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		info.ID,
		info.Name,
		info.Fingerprint,
		info.ProbeCount,
		info.CreatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return ProbeSetInfo{}, s.wrapError("inserting probe set failed", name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO probes (set_id, idx, x, y, z) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return ProbeSetInfo{}, s.wrapError("preparing probe insert failed", name, err)
	}
	defer stmt.Close()

	for i, p := range positions {
		if _, err := stmt.ExecContext(ctx, info.ID, i, p.X, p.Y, p.Z); err != nil {
			return ProbeSetInfo{}, s.wrapError("inserting probe failed", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ProbeSetInfo{}, s.wrapError("committing probe set failed", name, err)
	}
	return info, nil
}

// Load returns the probe set stored under name, in placement order.
func (s *Store) Load(ctx context.Context, name string) (ProbeSetInfo, []geometry.Vector3f, error) {
	var info ProbeSetInfo
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, fingerprint, probe_count, created_at
		FROM probe_sets WHERE name = ?`,
		name,
	).Scan(&info.ID, &info.Name, &info.Fingerprint, &info.ProbeCount, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ProbeSetInfo{}, nil, errors.New("probe set not found").
			WithType(ErrTypeNotFound).
			WithTag("name", name)
	}
	if err != nil {
		return ProbeSetInfo{}, nil, s.wrapError("reading probe set failed", name, err)
	}
	if info.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return ProbeSetInfo{}, nil, s.wrapError("parsing probe set creation time failed", name, err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT x, y, z FROM probes WHERE set_id = ? ORDER BY idx`, info.ID)
	if err != nil {
		return ProbeSetInfo{}, nil, s.wrapError("reading probes failed", name, err)
	}
	defer rows.Close()

	positions := make([]geometry.Vector3f, 0, info.ProbeCount)
	for rows.Next() {
		var p geometry.Vector3f
		if err := rows.Scan(&p.X, &p.Y, &p.Z); err != nil {
			return ProbeSetInfo{}, nil, s.wrapError("scanning probe failed", name, err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return ProbeSetInfo{}, nil, s.wrapError("reading probes failed", name, err)
	}
	return info, positions, nil
}

// Names returns the names of the stored probe sets, sorted.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM probe_sets ORDER BY name`)
	if err != nil {
		return nil, s.wrapError("listing probe sets failed", "", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, s.wrapError("scanning probe set name failed", "", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) wrapError(msg string, name string, err error) error {
	return errors.New(msg).
		WithType(ErrTypeStorage).
		WithTag("name", name).
		Wrap(err)
}
