package store

import (
	"database/sql"
	"strings"
	"time"

	"github.com/ammcap/Ammlytics/types"
)

// DateLayout is the display format baselines record their capture time in.
const DateLayout = "Mon 2006-01-02 15:04:05"

// CurrentSuffix marks a baseline captured from live state because the mint
// block fell outside the scan window. Such a baseline approximates entry
// economics with today's, and the report shows it as approximate.
const CurrentSuffix = " (Current)"

// BaselineSnapshot is a position's state at entry. Amounts are raw integer
// units and the price is decimal text, both stored verbatim.
type BaselineSnapshot struct {
	PositionId   types.PositionId
	CreationDate string
	BlockNumber  string
	Amount0      string
	Amount1      string
	Price        string
}

// Fresh reports whether the snapshot was captured from live state rather
// than the mint block.
func (b BaselineSnapshot) Fresh() bool {
	return strings.HasSuffix(b.CreationDate, CurrentSuffix)
}

// CaptureTime parses the recorded capture time, ignoring the freshness
// suffix. Returns the zero time when the record is unparseable.
func (b BaselineSnapshot) CaptureTime() time.Time {
	raw := strings.TrimSuffix(b.CreationDate, CurrentSuffix)
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// LoadAll reads every stored baseline, keyed by position id.
func (s *BaselineStore) LoadAll() (map[types.PositionId]BaselineSnapshot, error) {
	rows, err := s.db.Query(`
		SELECT token_id, creation_date, block_number,
		       initial_amount0, initial_amount1, initial_price
		FROM initial_positions`)
	if err != nil {
		return nil, types.Fail(types.DataUnavailable, err)
	}
	defer rows.Close()

	baselines := make(map[types.PositionId]BaselineSnapshot)
	for rows.Next() {
		var b BaselineSnapshot
		err := rows.Scan(&b.PositionId, &b.CreationDate, &b.BlockNumber,
			&b.Amount0, &b.Amount1, &b.Price)
		if err != nil {
			return nil, types.Fail(types.DataUnavailable, err)
		}
		baselines[b.PositionId] = b
	}
	if err := rows.Err(); err != nil {
		return nil, types.Fail(types.DataUnavailable, err)
	}
	return baselines, nil
}

// Lookup reads one baseline. The second return is false when the position
// has no stored baseline yet.
func (s *BaselineStore) Lookup(id types.PositionId) (BaselineSnapshot, bool, error) {
	var b BaselineSnapshot
	err := s.db.QueryRow(`
		SELECT token_id, creation_date, block_number,
		       initial_amount0, initial_amount1, initial_price
		FROM initial_positions WHERE token_id = $1`, string(id)).
		Scan(&b.PositionId, &b.CreationDate, &b.BlockNumber,
			&b.Amount0, &b.Amount1, &b.Price)
	if err == sql.ErrNoRows {
		return BaselineSnapshot{}, false, nil
	}
	if err != nil {
		return BaselineSnapshot{}, false, types.Fail(types.DataUnavailable, err)
	}
	return b, true, nil
}

// Save writes a newly captured baseline. Writing the same position again
// leaves the stored row untouched; baselines are immutable once captured.
func (s *BaselineStore) Save(b BaselineSnapshot) error {
	_, err := s.db.Exec(`
		INSERT INTO initial_positions
			(token_id, creation_date, block_number,
			 initial_amount0, initial_amount1, initial_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (token_id) DO NOTHING`,
		string(b.PositionId), b.CreationDate, b.BlockNumber,
		b.Amount0, b.Amount1, b.Price)
	if err != nil {
		return types.Fail(types.DataUnavailable, err)
	}
	return nil
}
