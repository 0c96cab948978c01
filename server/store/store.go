// Package store persists finished analyses and leak reports for later
// review. It is optional: the service runs fully without a database.
package store

import (
	"context"
	"embed"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"poker-genius/server/deck"
	"poker-genius/server/gemini"
	"poker-genius/server/table"
)

//go:embed schema.sql
var schema embed.FS

type DB struct{ *pgxpool.Pool }

func Open(dsn string) (*DB, error) {
	p, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close(ctx context.Context)      { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

func cardIDs(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID()
	}
	return out
}

// InsertAnalysis records one completed hand analysis. guessPct and
// guessError are nil outside training mode.
func (db *DB) InsertAnalysis(
	ctx context.Context,
	mode string,
	hand, board []deck.Card,
	tbl table.Context,
	res *gemini.AnalysisResult,
	guessPct, guessError *int,
) (int64, error) {
	var gp, ge any
	if guessPct != nil {
		gp = *guessPct
	}
	if guessError != nil {
		ge = *guessError
	}
	var id int64
	err := db.QueryRow(ctx, `
        INSERT INTO analyses(
            mode, hand, board,
            position, player_count, stack_size, profile,
            probability, advice, suggested_action, bet_size, expected_hand,
            guess_pct, guess_error
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id
    `, mode, cardIDs(hand), cardIDs(board),
		string(tbl.Position), tbl.PlayerCount, tbl.StackSize, string(tbl.OpponentProfile),
		res.Probability, string(res.Advice), res.SuggestedAction, res.BetSize, res.ExpectedHand,
		gp, ge).Scan(&id)
	return id, err
}

// InsertHistoryReport records the headline numbers of a leak report.
// The pasted history itself is never stored, only its length.
func (db *DB) InsertHistoryReport(ctx context.Context, inputChars int, rep *gemini.HandHistoryReport) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
        INSERT INTO history_reports(
            input_chars, player_style, vpip_rating, aggression_factor,
            main_leaks, strengths
        ) VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id
    `, inputChars, rep.PlayerStyle, rep.VPIPRating, rep.AggressionFactor,
		rep.MainLeaks, rep.Strengths).Scan(&id)
	return id, err
}

type AnalysisRecord struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Mode        string    `json:"mode"`
	Hand        []string  `json:"hand"`
	Board       []string  `json:"board"`
	Position    string    `json:"position"`
	PlayerCount int       `json:"player_count"`
	StackSize   int       `json:"stack_size"`
	Profile     string    `json:"profile"`
	Probability float64   `json:"probability"`
	Advice      string    `json:"advice"`
	GuessPct    *int      `json:"guess_pct"`
	GuessError  *int      `json:"guess_error"`
}

// RecentAnalyses lists the newest records first.
func (db *DB) RecentAnalyses(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(ctx, `
        SELECT id, created_at, mode, hand, board,
               position, player_count, stack_size, profile,
               probability, advice, guess_pct, guess_error
          FROM analyses
         ORDER BY id DESC
         LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []AnalysisRecord{}
	for rows.Next() {
		var r AnalysisRecord
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Mode, &r.Hand, &r.Board,
			&r.Position, &r.PlayerCount, &r.StackSize, &r.Profile,
			&r.Probability, &r.Advice, &r.GuessPct, &r.GuessError); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type ReportRecord struct {
	ID               int64     `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	InputChars       int       `json:"input_chars"`
	PlayerStyle      string    `json:"player_style"`
	VPIPRating       string    `json:"vpip_rating"`
	AggressionFactor float64   `json:"aggression_factor"`
	MainLeaks        []string  `json:"main_leaks"`
	Strengths        []string  `json:"strengths"`
}

func (db *DB) RecentReports(ctx context.Context, limit int) ([]ReportRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(ctx, `
        SELECT id, created_at, input_chars, player_style, vpip_rating,
               aggression_factor, main_leaks, strengths
          FROM history_reports
         ORDER BY id DESC
         LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ReportRecord{}
	for rows.Next() {
		var r ReportRecord
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.InputChars, &r.PlayerStyle,
			&r.VPIPRating, &r.AggressionFactor, &r.MainLeaks, &r.Strengths); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
