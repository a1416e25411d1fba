package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"slate/shared/constant"
	"slate/shared/model"
)

const (
	TableName  = "chalans"
	EntityName = "chalan"

	FieldID           = "id"
	FieldChalanNumber = "chalan_number"
	FieldCustomerID   = "customer_id"
	FieldProjectID    = "project_id"
	FieldBookingID    = "booking_id"
	FieldChalanDate   = "chalan_date"
	FieldTotalAmount  = "total_amount"
	FieldIsCancelled  = "is_cancelled"
	FieldCancelReason = "cancel_reason"
	FieldNotes        = "notes"
)

const (
	ItemTableName  = "chalan_items"
	ItemEntityName = "chalan_item"

	ItemFieldID       = "id"
	ItemFieldChalanID = "chalan_id"
)

const (
	RevisionTableName  = "chalan_revisions"
	RevisionEntityName = "chalan_revision"

	RevisionFieldID       = "id"
	RevisionFieldChalanID = "chalan_id"
	RevisionFieldNumber   = "revision_number"
)

// Unique constraint names referenced when mapping storage errors.
const (
	ConstraintChalanNumber   = "uq_chalans_number"
	ConstraintBookingLive    = "uq_chalans_booking_live"
	ConstraintRevisionNumber = "uq_chalan_revisions_number"
)

// Chalan is a billing document for work performed on a project, optionally
// tied to a single booking. Once cancelled it is read-only forever, items
// and revisions included.
type Chalan struct {
	ID           string    `db:"id"`
	ChalanNumber string    `db:"chalan_number"`
	CustomerID   string    `db:"customer_id"`
	ProjectID    string    `db:"project_id"`
	BookingID    *string   `db:"booking_id"`
	ChalanDate   time.Time `db:"chalan_date"`
	TotalAmount  float64   `db:"total_amount"`
	IsCancelled  bool      `db:"is_cancelled"`
	CancelReason string    `db:"cancel_reason"`
	Notes        string    `db:"notes"`
	model.Metadata
}

// Booking returns the referenced booking id, or an empty string when the
// chalan is not tied to a booking.
func (c *Chalan) Booking() string {
	if c.BookingID == nil {
		return ""
	}

	return *c.BookingID
}

// ChalanItem is a billing line. Amount is trusted as submitted, not
// recomputed from quantity and rate. Items are replaced wholesale on edit.
type ChalanItem struct {
	ID          string  `db:"id"`
	ChalanID    string  `db:"chalan_id"`
	Description string  `db:"description"`
	Quantity    float64 `db:"quantity"`
	Rate        float64 `db:"rate"`
	Amount      float64 `db:"amount"`
	model.Metadata
}

// ChalanRevision is one entry of the append-only change ledger. Revision
// numbers are 1-based, gapless, and strictly increasing per chalan.
type ChalanRevision struct {
	ID             string    `db:"id"`
	ChalanID       string    `db:"chalan_id"`
	RevisionNumber int       `db:"revision_number"`
	ChangeText     string    `db:"change_text"`
	UserID         *string   `db:"user_id"`
	CreatedAt      time.Time `db:"created_at"`
}

// NumberPrefix derives the month prefix of a chalan number from the chalan's
// own date, e.g. "CH2512-" for December 2025.
func NumberPrefix(date time.Time) string {
	return constant.ChalanNumberPrefix + date.Format("0601") + "-"
}

// NextNumber computes the next document number for the given date from the
// set of numbers already sharing its month prefix: parse every suffix, take
// the maximum, increment, zero-pad to two digits. The sequence overflows
// naturally past 99. Numbering is a pure function of what currently exists;
// concurrent allocation is absorbed by the unique constraint and a retry.
func NextNumber(date time.Time, existing []string) string {
	prefix := NumberPrefix(date)
	highest := 0

	for _, number := range existing {
		suffix, ok := strings.CutPrefix(number, prefix)
		if !ok {
			continue
		}

		sequence, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}

		if sequence > highest {
			highest = sequence
		}
	}

	return fmt.Sprintf("%s%02d", prefix, highest+1)
}

// TotalAmountOf sums line amounts into the stored chalan total.
func TotalAmountOf(items []ChalanItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Amount
	}

	return total
}
