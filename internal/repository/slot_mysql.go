package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/iliyamo/galaxy-cinema-booking/internal/model"
)

// SQLSlotRepo implements SlotStore on the movie_slots table.
type SQLSlotRepo struct {
	db *sql.DB
}

func NewSQLSlotRepo(db *sql.DB) *SQLSlotRepo {
	return &SQLSlotRepo{db: db}
}

const slotColumns = `id, title, image, price, show_time, COALESCE(description, '')`

func (r *SQLSlotRepo) List(ctx context.Context) ([]model.MovieSlot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+slotColumns+` FROM movie_slots`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.MovieSlot{}
	for rows.Next() {
		var s model.MovieSlot
		if err := rows.Scan(&s.ID, &s.Title, &s.Image, &s.Price, &s.ShowTime, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLSlotRepo) Get(ctx context.Context, id string) (*model.MovieSlot, error) {
	var s model.MovieSlot
	err := r.db.QueryRowContext(ctx, `SELECT `+slotColumns+` FROM movie_slots WHERE id = ?`, id).
		Scan(&s.ID, &s.Title, &s.Image, &s.Price, &s.ShowTime, &s.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLSlotRepo) Create(ctx context.Context, s *model.MovieSlot) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return r.insert(ctx, []model.MovieSlot{*s})
}

// CreateMany inserts all slots in one statement.  Ids are assigned in place
// for slots that have none.
func (r *SQLSlotRepo) CreateMany(ctx context.Context, slots []model.MovieSlot) error {
	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.NewString()
		}
	}
	return r.insert(ctx, slots)
}

func (r *SQLSlotRepo) insert(ctx context.Context, slots []model.MovieSlot) error {
	if len(slots) == 0 {
		return nil
	}
	var (
		ph   []string
		args []interface{}
	)
	for _, s := range slots {
		ph = append(ph, "(?, ?, ?, ?, ?, ?)")
		args = append(args, s.ID, s.Title, s.Image, s.Price, s.ShowTime, s.Description)
	}
	q := `INSERT INTO movie_slots (id, title, image, price, show_time, description) VALUES ` + strings.Join(ph, ", ")
	_, err := r.db.ExecContext(ctx, q, args...)
	return mapMySQLError(err)
}

func (r *SQLSlotRepo) Update(ctx context.Context, s model.MovieSlot) error {
	const q = `UPDATE movie_slots SET title = ?, image = ?, price = ?, show_time = ?, description = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.Title, s.Image, s.Price, s.ShowTime, s.Description, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	// MySQL reports 0 affected rows when nothing changed; tell that apart
	// from a missing row.
	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM movie_slots WHERE id = ?`, s.ID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSlotNotFound
	}
	return err
}

// mapMySQLError turns a duplicate key violation (1062) into ErrConflict.
func mapMySQLError(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return ErrConflict
	}
	return err
}
