package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentauction/internal/auctionerrors"
	"rentauction/internal/models"
)

//go:embed schema.sql
var schema string

// PostgresStore implements AuctionStore and UserDirectory over database/sql
// (pgx stdlib driver). Each method runs as its own transaction.
type PostgresStore struct {
	db *sql.DB
}

var (
	_ AuctionStore  = (*PostgresStore)(nil)
	_ UserDirectory = (*PostgresStore)(nil)
)

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the tables if they are missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

const auctionColumns = `id, apartment_id, owner_id, start_time, end_time,
       starting_price, minimum_bid_increment, rental_start_date, rental_end_date,
       status, max_bidders, coalesce(rental_id,''), created_at, updated_at`

const rentalColumns = `id, apartment_id, tenant_id, start_date, end_date, total_cost, status,
       is_auction, coalesce(auction_id,''), auction_payment_confirmed, auction_payment_deadline,
       auction_fine_issued, auction_fine_amount, payment_confirmed_at, fine_issued_at, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanAuction(row scanner) (models.Auction, error) {
	var a models.Auction
	var status string
	err := row.Scan(&a.ID, &a.ApartmentID, &a.OwnerID, &a.StartTime, &a.EndTime,
		&a.StartingPrice, &a.MinimumBidIncrement, &a.RentalStartDate, &a.RentalEndDate,
		&status, &a.MaxBidders, &a.RentalID, &a.CreatedAt, &a.UpdatedAt)
	a.Status = models.AuctionStatus(status)
	return a, err
}

func scanRental(row scanner) (models.Rental, error) {
	var (
		r           models.Rental
		status      string
		deadline    sql.NullTime
		fine        sql.NullFloat64
		confirmedAt sql.NullTime
		finedAt     sql.NullTime
	)
	err := row.Scan(&r.ID, &r.ApartmentID, &r.TenantID, &r.StartDate, &r.EndDate, &r.TotalCost, &status,
		&r.IsAuction, &r.AuctionID, &r.AuctionPaymentConfirmed, &deadline,
		&r.AuctionFineIssued, &fine, &confirmedAt, &finedAt, &r.CreatedAt)
	if err != nil {
		return r, err
	}
	r.Status = models.RentalStatus(status)
	if deadline.Valid {
		r.AuctionPaymentDeadline = deadline.Time
	}
	if fine.Valid {
		r.AuctionFineAmount = &fine.Float64
	}
	if confirmedAt.Valid {
		r.PaymentConfirmedAt = &confirmedAt.Time
	}
	if finedAt.Valid {
		r.FineIssuedAt = &finedAt.Time
	}
	return r, nil
}

func (s *PostgresStore) Roles(ctx context.Context, userID string) (models.RoleSet, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT role FROM user_roles WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rs := models.NewRoleSet()
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		rs[models.Role(role)] = struct{}{}
	}
	return rs, rows.Err()
}

func (s *PostgresStore) GetApartment(ctx context.Context, apartmentID string) (models.Apartment, error) {
	var a models.Apartment
	err := s.db.QueryRowContext(ctx, `SELECT id, owner_id FROM apartments WHERE id = $1`, apartmentID).
		Scan(&a.ID, &a.OwnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return a, fmt.Errorf("get apartment %s: %w", apartmentID, auctionerrors.ErrApartmentNotFound)
	}
	return a, err
}

func (s *PostgresStore) CreateAuction(ctx context.Context, a models.Auction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Row lock on the apartment serialises concurrent holds on it.
	var ownerID string
	err = tx.QueryRowContext(ctx, `SELECT owner_id FROM apartments WHERE id = $1 FOR UPDATE`, a.ApartmentID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("create auction %s: %w", a.ID, auctionerrors.ErrApartmentNotFound)
	}
	if err != nil {
		return err
	}

	const overlapQ = `
	  SELECT EXISTS (
	    SELECT 1 FROM apartment_holds
	     WHERE apartment_id = $1 AND NOT released
	       AND start_date < $3 AND $2 < end_date
	    UNION ALL
	    SELECT 1 FROM rentals
	     WHERE apartment_id = $1 AND status <> 'CANCELLED'
	       AND start_date < $3 AND $2 < end_date)`
	var taken bool
	if err = tx.QueryRowContext(ctx, overlapQ, a.ApartmentID, a.RentalStartDate, a.RentalEndDate).Scan(&taken); err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("create auction %s: %w", a.ID, auctionerrors.ErrApartmentUnavailable)
	}

	const insAuction = `
	  INSERT INTO auctions (id, apartment_id, owner_id, start_time, end_time,
	                        starting_price, minimum_bid_increment, rental_start_date, rental_end_date,
	                        status, max_bidders, created_at, updated_at)
	       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`
	if _, err = tx.ExecContext(ctx, insAuction,
		a.ID, a.ApartmentID, a.OwnerID, a.StartTime, a.EndTime,
		a.StartingPrice, a.MinimumBidIncrement, a.RentalStartDate, a.RentalEndDate,
		string(a.Status), a.MaxBidders, a.CreatedAt,
	); err != nil {
		return err
	}

	const insHold = `
	  INSERT INTO apartment_holds (auction_id, apartment_id, start_date, end_date)
	       VALUES ($1, $2, $3, $4)`
	if _, err = tx.ExecContext(ctx, insHold, a.ID, a.ApartmentID, a.RentalStartDate, a.RentalEndDate); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *PostgresStore) Load(ctx context.Context, auctionID string) (*models.Auction, error) {
	a, err := scanAuction(s.db.QueryRowContext(ctx, `SELECT `+auctionColumns+` FROM auctions WHERE id = $1`, auctionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return nil, err
	}

	const bidsQ = `SELECT seq, id, auction_id, bidder_id, amount, bid_time,
	                      is_auto_bid, max_auto_bid_amount, dropped
	                 FROM bids WHERE auction_id = $1 ORDER BY seq`
	rows, err := s.db.QueryContext(ctx, bidsQ, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b models.Bid
		if err := rows.Scan(&b.Seq, &b.ID, &b.AuctionID, &b.BidderID, &b.Amount, &b.BidTime,
			&b.IsAutoBid, &b.MaxAutoBidAmount, &b.Dropped); err != nil {
			return nil, err
		}
		a.Bids = append(a.Bids, b)
	}
	return &a, rows.Err()
}

func (s *PostgresStore) ListAuctions(ctx context.Context, status models.AuctionStatus, limit, offset int) ([]models.Auction, error) {
	if limit == 0 {
		limit = 10
	}
	var (
		rows *sql.Rows
		err  error
	)
	base := `SELECT ` + auctionColumns + ` FROM auctions`
	if status != "" {
		rows, err = s.db.QueryContext(ctx, base+" WHERE status = $1 ORDER BY end_time DESC, id LIMIT $2 OFFSET $3",
			string(status), limit, offset)
	} else {
		rows, err = s.db.QueryContext(ctx, base+" ORDER BY end_time DESC, id LIMIT $1 OFFSET $2",
			limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]models.Auction, 0, limit)
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (s *PostgresStore) ListDueAuctions(ctx context.Context, now time.Time, limit int) ([]string, error) {
	const q = `
	  SELECT id FROM auctions
	   WHERE (status = 'PENDING' AND start_time <= $1)
	      OR (status = 'ACTIVE'  AND end_time   <= $1)
	   ORDER BY id
	   LIMIT $2`
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, q, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *PostgresStore) AppendBid(ctx context.Context, bid models.Bid) (models.Bid, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return bid, err
	}
	defer tx.Rollback()

	var (
		status string
		st     bidState
	)
	err = tx.QueryRowContext(ctx, `
	  SELECT status, starting_price, minimum_bid_increment, max_bidders
	    FROM auctions WHERE id = $1 FOR UPDATE`, bid.AuctionID,
	).Scan(&status, &st.startingPrice, &st.increment, &st.maxBidders)
	if errors.Is(err, sql.ErrNoRows) {
		return bid, fmt.Errorf("append bid to auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return bid, err
	}
	if models.AuctionStatus(status) != models.AuctionActive {
		return bid, fmt.Errorf("append bid to auction %s: %w", bid.AuctionID, auctionerrors.ErrAuctionNotActive)
	}

	const agg = `
	  SELECT COUNT(*), COALESCE(MAX(amount), 0), COUNT(DISTINCT bidder_id), COALESCE(BOOL_OR(bidder_id = $2), false)
	    FROM bids
	   WHERE auction_id = $1 AND NOT dropped`
	if err = tx.QueryRowContext(ctx, agg, bid.AuctionID, bid.BidderID).
		Scan(&st.bids, &st.highest, &st.bidders, &st.hasBid); err != nil {
		return bid, err
	}
	if err = st.admit(bid); err != nil {
		return bid, err
	}

	const ins = `
	  INSERT INTO bids (id, auction_id, bidder_id, amount, bid_time, is_auto_bid, max_auto_bid_amount)
	       VALUES ($1, $2, $3, $4, $5, $6, $7)
	    RETURNING seq`
	if err = tx.QueryRowContext(ctx, ins,
		bid.ID, bid.AuctionID, bid.BidderID, bid.Amount, bid.BidTime, bid.IsAutoBid, bid.MaxAutoBidAmount,
	).Scan(&bid.Seq); err != nil {
		return bid, err
	}
	return bid, tx.Commit()
}

func (s *PostgresStore) DropBid(ctx context.Context, auctionID, bidID string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE bids SET dropped = true WHERE auction_id = $1 AND id = $2`, auctionID, bidID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("drop bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
	}
	return nil
}

func (s *PostgresStore) Transition(ctx context.Context, auctionID string, from []models.AuctionStatus, to models.AuctionStatus, p TransitionPayload) (bool, error) {
	if len(from) == 0 {
		return false, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	args := []any{string(to), p.At, auctionID}
	placeholders := make([]string, len(from))
	for i, st := range from {
		args = append(args, string(st))
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}
	cas := `UPDATE auctions SET status = $1, updated_at = $2
	         WHERE id = $3 AND status IN (` + strings.Join(placeholders, ", ") + `)`
	res, err := tx.ExecContext(ctx, cas, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	if r := p.Rental; r != nil {
		const insRental = `
		  INSERT INTO rentals (id, apartment_id, tenant_id, start_date, end_date, total_cost, status,
		                       is_auction, auction_id, auction_payment_deadline, created_at)
		       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
		if _, err = tx.ExecContext(ctx, insRental,
			r.ID, r.ApartmentID, r.TenantID, r.StartDate, r.EndDate, r.TotalCost, string(r.Status),
			r.IsAuction, r.AuctionID, r.AuctionPaymentDeadline, r.CreatedAt,
		); err != nil {
			return false, err
		}
		if _, err = tx.ExecContext(ctx, `UPDATE auctions SET rental_id = $1 WHERE id = $2`, r.ID, auctionID); err != nil {
			return false, err
		}
	}
	if p.ReleaseHold {
		if _, err = tx.ExecContext(ctx, `UPDATE apartment_holds SET released = true WHERE auction_id = $1`, auctionID); err != nil {
			return false, err
		}
	}
	if err = tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *PostgresStore) GetRental(ctx context.Context, rentalID string) (*models.Rental, error) {
	r, err := scanRental(s.db.QueryRowContext(ctx, `SELECT `+rentalColumns+` FROM rentals WHERE id = $1`, rentalID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get rental %s: %w", rentalID, auctionerrors.ErrRentalNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PostgresStore) FindOverdueAuctionRentals(ctx context.Context, now time.Time) ([]models.Rental, error) {
	q := `SELECT ` + rentalColumns + `
	        FROM rentals
	       WHERE is_auction AND NOT auction_payment_confirmed AND NOT auction_fine_issued
	         AND auction_payment_deadline < $1
	       ORDER BY auction_payment_deadline`
	rows, err := s.db.QueryContext(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Rental
	for rows.Next() {
		r, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) IssueFine(ctx context.Context, rentalID string, amount float64, now time.Time) (bool, error) {
	const q = `
	  UPDATE rentals
	     SET auction_fine_issued = true, auction_fine_amount = $2, fine_issued_at = $3
	   WHERE id = $1 AND is_auction
	     AND NOT auction_payment_confirmed AND NOT auction_fine_issued
	     AND auction_payment_deadline < $3`
	return s.execCAS(ctx, q, rentalID, amount, now)
}

func (s *PostgresStore) ConfirmAuctionPayment(ctx context.Context, rentalID string, now time.Time) (bool, error) {
	const q = `
	  UPDATE rentals
	     SET auction_payment_confirmed = true, payment_confirmed_at = $2,
	         status = CASE WHEN status = 'PENDING' THEN 'CONFIRMED' ELSE status END
	   WHERE id = $1 AND is_auction
	     AND NOT auction_payment_confirmed AND NOT auction_fine_issued`
	return s.execCAS(ctx, q, rentalID, now)
}

func (s *PostgresStore) SetRentalStatus(ctx context.Context, rentalID string, from, to models.RentalStatus) (bool, error) {
	return s.execCAS(ctx, `UPDATE rentals SET status = $3 WHERE id = $1 AND status = $2`,
		rentalID, string(from), string(to))
}

func (s *PostgresStore) execCAS(ctx context.Context, q string, args ...any) (bool, error) {
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
